package reconciler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavomchagas/chuta/internal/bolao/betparser"
	"github.com/gustavomchagas/chuta/internal/bolao/rounds"
	"github.com/gustavomchagas/chuta/internal/pkg/config"
	"github.com/gustavomchagas/chuta/internal/pkg/models"
	"github.com/gustavomchagas/chuta/internal/pkg/storage"
)

type fakeStore struct {
	players map[string]*models.Player // by handle or "name:" + name
	bets    map[string]*models.Bet    // by player|match
	creates int

	// raceBet is inserted right before the next CreateBet, as if another
	// message won the race.
	raceBet   *models.Bet
	findErr   error
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{players: map[string]*models.Player{}, bets: map[string]*models.Bet{}}
}

func betKey(playerID, matchID string) string { return playerID + "|" + matchID }

func (f *fakeStore) FindBet(_ context.Context, playerID, matchID string) (*models.Bet, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if b, ok := f.bets[betKey(playerID, matchID)]; ok {
		return b, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) CreateBet(_ context.Context, playerID, matchID string, home, away int) (*models.Bet, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.raceBet != nil {
		f.bets[betKey(f.raceBet.PlayerID, f.raceBet.MatchID)] = f.raceBet
		f.raceBet = nil
	}
	k := betKey(playerID, matchID)
	if _, ok := f.bets[k]; ok {
		return nil, storage.ErrDuplicateBet
	}
	f.creates++
	b := &models.Bet{ID: fmt.Sprintf("b%d", f.creates), PlayerID: playerID, MatchID: matchID, HomeScore: home, AwayScore: away}
	f.bets[k] = b
	return b, nil
}

func (f *fakeStore) FindOrCreatePlayer(_ context.Context, key storage.PlayerKey) (*models.Player, error) {
	k := key.Handle
	if k == "" {
		k = "name:" + key.Name
	}
	if p, ok := f.players[k]; ok {
		return p, nil
	}
	p := &models.Player{ID: fmt.Sprintf("p%d", len(f.players)+1), Name: key.Name, Handle: key.Handle}
	f.players[k] = p
	return p, nil
}

var now = time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)

func openMatches() []rounds.OpenMatch {
	return []rounds.OpenMatch{
		{Number: 1, Match: models.Match{ID: "m1", Round: 3, HomeTeam: "Flamengo", AwayTeam: "Vasco da Gama", StartTime: now.Add(4 * time.Hour)}},
		{Number: 2, Match: models.Match{ID: "m2", Round: 3, HomeTeam: "Palmeiras", AwayTeam: "Santos", StartTime: now.Add(6 * time.Hour)}},
	}
}

func parserMatches(open []rounds.OpenMatch) []betparser.OpenMatch {
	out := make([]betparser.OpenMatch, len(open))
	for i, m := range open {
		out[i] = betparser.OpenMatch{ID: m.ID, Number: m.Number, HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam}
	}
	return out
}

func submission(text string) Submission {
	open := openMatches()
	parsed := betparser.New(nil).Parse(text, parserMatches(open))
	return Submission{
		Handle:      "5511999990001",
		SenderName:  "Ana",
		Candidates:  parsed.Bets,
		Suggestions: parsed.Suggestions,
		Open:        open,
		Now:         now,
	}
}

func TestReconcile_AcceptsNewBets(t *testing.T) {
	store := newFakeStore()
	res, err := New(store).Reconcile(context.Background(), submission("1) 2x1\n2) 0x0"))
	require.NoError(t, err)

	require.NotNil(t, res.Player)
	assert.Equal(t, "Ana", res.Player.Name)
	require.Len(t, res.Accepted, 2)
	assert.Equal(t, "2x1", res.Accepted[0].Bet.Score())
	assert.Equal(t, "0x0", res.Accepted[1].Bet.Score())
	assert.Empty(t, res.AlreadyExists)
	assert.Empty(t, res.Rejected)
	assert.Empty(t, res.Suggestions)
}

func TestReconcile_ExistingBetIsKept(t *testing.T) {
	store := newFakeStore()
	p, _ := store.FindOrCreatePlayer(context.Background(), storage.PlayerKey{Handle: "5511999990001"})
	store.bets[betKey(p.ID, "m1")] = &models.Bet{ID: "old", PlayerID: p.ID, MatchID: "m1", HomeScore: 1, AwayScore: 1}

	res, err := New(store).Reconcile(context.Background(), submission("1) 2x1"))
	require.NoError(t, err)

	assert.Empty(t, res.Accepted)
	require.Len(t, res.AlreadyExists, 1)
	assert.Equal(t, "1x1", res.AlreadyExists[0].Existing.Score())
	assert.Equal(t, 2, res.AlreadyExists[0].Candidate.HomeScore)
	assert.Equal(t, "1x1", store.bets[betKey(p.ID, "m1")].Score())
	assert.Zero(t, store.creates)
	assert.Equal(t, []string{"Faltou palpite para: 2) Palmeiras x Santos"}, res.Suggestions)
}

func TestReconcile_DuplicateRaceIsAlreadyExists(t *testing.T) {
	store := newFakeStore()
	p, _ := store.FindOrCreatePlayer(context.Background(), storage.PlayerKey{Handle: "5511999990001"})
	store.raceBet = &models.Bet{ID: "winner", PlayerID: p.ID, MatchID: "m1", HomeScore: 3, AwayScore: 0}

	res, err := New(store).Reconcile(context.Background(), submission("1) 2x1"))
	require.NoError(t, err)

	assert.Empty(t, res.Accepted)
	require.Len(t, res.AlreadyExists, 1)
	assert.Equal(t, "winner", res.AlreadyExists[0].Existing.ID)
}

func TestReconcile_StartedMatchIsRejected(t *testing.T) {
	store := newFakeStore()
	sub := submission("1) 2x1\n2) 0x0")
	sub.Now = sub.Open[0].StartTime // kickoff instant counts as started

	res, err := New(store).Reconcile(context.Background(), sub)
	require.NoError(t, err)

	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "m1", res.Rejected[0].Candidate.MatchID)
	assert.Equal(t, ReasonStarted, res.Rejected[0].Reason)
	require.Len(t, res.Accepted, 1)
	assert.Equal(t, "m2", res.Accepted[0].Candidate.MatchID)
}

func TestReconcile_UnknownMatchIsRejected(t *testing.T) {
	sub := submission("1) 2x1")
	sub.Open = sub.Open[1:]

	res, err := New(newFakeStore()).Reconcile(context.Background(), sub)
	require.NoError(t, err)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, ReasonNotOpen, res.Rejected[0].Reason)
}

func TestReconcile_ProxyName(t *testing.T) {
	store := newFakeStore()
	name, rest := SplitProxyName("NEI\n1) 2x1", 0)
	sub := submission(rest)
	sub.ProxyName = name

	res, err := New(store).Reconcile(context.Background(), sub)
	require.NoError(t, err)

	require.NotNil(t, res.Player)
	assert.Equal(t, "NEI", res.Player.Name)
	assert.Empty(t, res.Player.Handle)
	assert.Len(t, res.Accepted, 1)
}

func TestReconcile_NoCandidates(t *testing.T) {
	store := newFakeStore()
	res, err := New(store).Reconcile(context.Background(), submission("bom dia"))
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Nil(t, res.Player)
	assert.Empty(t, store.players)
}

func TestReconcile_StorageErrors(t *testing.T) {
	down := errors.New("connection refused")

	store := newFakeStore()
	store.findErr = down
	_, err := New(store).Reconcile(context.Background(), submission("1) 2x1"))
	assert.ErrorIs(t, err, down)

	store = newFakeStore()
	store.createErr = down
	_, err = New(store).Reconcile(context.Background(), submission("1) 2x1"))
	assert.ErrorIs(t, err, down)
}

func TestPlayerKey(t *testing.T) {
	assert.Equal(t, storage.PlayerKey{Handle: "5511912345678", Name: "Jogador 5678"}, PlayerKey(Submission{Handle: "5511912345678"}))
	assert.Equal(t, storage.PlayerKey{Handle: "42", Name: "Jogador 42"}, PlayerKey(Submission{Handle: "42"}))
	assert.Equal(t, storage.PlayerKey{Name: "Zé"}, PlayerKey(Submission{Handle: "1", SenderName: "Ana", ProxyName: "Zé"}))
}

func TestReconcile_WithSQLStore(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(ctx, &config.StorageConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "chuta.db"),
	})
	require.NoError(t, err)
	defer store.Close()

	for _, m := range openMatches() {
		m := m.Match
		require.NoError(t, store.UpsertMatch(ctx, &m))
	}
	p, err := store.FindOrCreatePlayer(ctx, storage.PlayerKey{Handle: "5511999990001", Name: "Ana"})
	require.NoError(t, err)
	_, err = store.CreateBet(ctx, p.ID, "m1", 1, 1)
	require.NoError(t, err)

	res, err := New(store).Reconcile(ctx, submission("1) 2x1"))
	require.NoError(t, err)
	require.Len(t, res.AlreadyExists, 1)
	assert.Equal(t, "1x1", res.AlreadyExists[0].Existing.Score())

	bets, err := store.ListPlayerBets(ctx, p.ID, nil)
	require.NoError(t, err)
	require.Len(t, bets, 1)
	assert.Equal(t, "1x1", bets[0].Score())
}
