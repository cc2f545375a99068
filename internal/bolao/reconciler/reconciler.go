// Package reconciler turns parsed candidates into stored bets.
//
// Bets are append-only: an existing bet for a (player, match) pair is
// reported back and never replaced. The advisory lookup before each insert
// is backed by the storage uniqueness constraint, so a concurrent duplicate
// ends up reported the same way.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gustavomchagas/chuta/internal/bolao/betparser"
	"github.com/gustavomchagas/chuta/internal/bolao/rounds"
	"github.com/gustavomchagas/chuta/internal/pkg/models"
	"github.com/gustavomchagas/chuta/internal/pkg/storage"
)

// Store is the storage the reconciler needs.
type Store interface {
	FindBet(ctx context.Context, playerID, matchID string) (*models.Bet, error)
	CreateBet(ctx context.Context, playerID, matchID string, homeScore, awayScore int) (*models.Bet, error)
	FindOrCreatePlayer(ctx context.Context, key storage.PlayerKey) (*models.Player, error)
}

// Reason explains a rejected candidate. Values are shown to players.
type Reason string

const (
	ReasonStarted Reason = "já começou"
	ReasonNotOpen Reason = "jogo fora da rodada"
)

// Submission is one message worth of candidates.
type Submission struct {
	// Handle is the sender's transport identity.
	Handle string
	// SenderName is the transport display name, used for new players.
	SenderName string
	// ProxyName, when set, names the player the bets are placed for.
	ProxyName string

	Candidates  []betparser.CandidateBet
	Suggestions []string

	// Open are the matches accepting bets at Now.
	Open []rounds.OpenMatch
	Now  time.Time
}

type Accepted struct {
	Candidate betparser.CandidateBet
	Bet       *models.Bet
}

type AlreadyExists struct {
	Candidate betparser.CandidateBet
	// Existing is the bet recorded earlier; its score is what counts.
	Existing *models.Bet
}

type Rejected struct {
	Candidate betparser.CandidateBet
	Reason    Reason
}

// Result partitions the candidates of a submission.
type Result struct {
	Player        *models.Player
	Accepted      []Accepted
	AlreadyExists []AlreadyExists
	Rejected      []Rejected
	Suggestions   []string
}

// Empty reports whether nothing was classified.
func (r Result) Empty() bool {
	return len(r.Accepted) == 0 && len(r.AlreadyExists) == 0 && len(r.Rejected) == 0
}

type Reconciler struct {
	store Store
}

func New(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile classifies every candidate in order and persists the new ones.
// Storage failures abort the submission; the partial result is returned with
// the error.
func (r *Reconciler) Reconcile(ctx context.Context, sub Submission) (Result, error) {
	res := Result{Suggestions: sub.Suggestions}
	if len(sub.Candidates) == 0 {
		return res, nil
	}

	player, err := r.store.FindOrCreatePlayer(ctx, PlayerKey(sub))
	if err != nil {
		return res, fmt.Errorf("failed to resolve player: %w", err)
	}
	res.Player = player

	starts := make(map[string]time.Time, len(sub.Open))
	for _, m := range sub.Open {
		starts[m.ID] = m.StartTime
	}

	for _, c := range sub.Candidates {
		start, open := starts[c.MatchID]
		switch {
		case !open:
			res.Rejected = append(res.Rejected, Rejected{Candidate: c, Reason: ReasonNotOpen})
			continue
		case !start.After(sub.Now):
			res.Rejected = append(res.Rejected, Rejected{Candidate: c, Reason: ReasonStarted})
			continue
		}

		existing, err := r.store.FindBet(ctx, player.ID, c.MatchID)
		switch {
		case err == nil:
			res.AlreadyExists = append(res.AlreadyExists, AlreadyExists{Candidate: c, Existing: existing})
			continue
		case !errors.Is(err, storage.ErrNotFound):
			return res, fmt.Errorf("failed to look up bet for match %s: %w", c.MatchID, err)
		}

		bet, err := r.store.CreateBet(ctx, player.ID, c.MatchID, c.HomeScore, c.AwayScore)
		if errors.Is(err, storage.ErrDuplicateBet) {
			existing, err = r.store.FindBet(ctx, player.ID, c.MatchID)
			if err != nil {
				return res, fmt.Errorf("failed to read concurrent bet for match %s: %w", c.MatchID, err)
			}
			res.AlreadyExists = append(res.AlreadyExists, AlreadyExists{Candidate: c, Existing: existing})
			continue
		}
		if err != nil {
			return res, fmt.Errorf("failed to create bet for match %s: %w", c.MatchID, err)
		}
		res.Accepted = append(res.Accepted, Accepted{Candidate: c, Bet: bet})
	}
	return res, nil
}

// PlayerKey picks the identity bets of sub are recorded under.
func PlayerKey(sub Submission) storage.PlayerKey {
	if sub.ProxyName != "" {
		return storage.PlayerKey{Name: sub.ProxyName}
	}
	name := sub.SenderName
	if name == "" {
		name = fallbackName(sub.Handle)
	}
	return storage.PlayerKey{Handle: sub.Handle, Name: name}
}

func fallbackName(handle string) string {
	suffix := handle
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "Jogador " + suffix
}
