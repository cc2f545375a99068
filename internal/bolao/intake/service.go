// Package intake runs the bet pipeline for inbound chat messages: resolve the
// round window, parse the text, reconcile against stored bets and build the
// reply.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gustavomchagas/chuta/internal/bolao/betparser"
	"github.com/gustavomchagas/chuta/internal/bolao/reconciler"
	"github.com/gustavomchagas/chuta/internal/bolao/replies"
	"github.com/gustavomchagas/chuta/internal/bolao/rounds"
	"github.com/gustavomchagas/chuta/internal/pkg/metrics"
	"github.com/gustavomchagas/chuta/internal/pkg/models"
	"github.com/gustavomchagas/chuta/internal/pkg/storage"
)

// Message is an inbound chat message.
type Message struct {
	// Key identifies the message for deduplication, e.g. "chat:msgid".
	Key        string
	Handle     string
	SenderName string
	Text       string
}

// Outcome describes how a message was handled.
type Outcome struct {
	// Ignored is set for messages that carry no bets: duplicates, chat
	// outside a round and text the parser did not recognize.
	Ignored   bool
	Duplicate bool

	Window rounds.Window
	Parse  betparser.Result
	Result reconciler.Result

	// Reply is the text to send back; empty means stay silent.
	Reply string
}

type Options struct {
	Location        *time.Location
	WindowDays      int
	ProxyNameMaxLen int
	Parser          *betparser.Parser
	Guard           storage.Guard
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
	Now             func() time.Time
}

type Service struct {
	store       storage.Store
	guard       storage.Guard
	resolver    *rounds.Resolver
	parser      *betparser.Parser
	reconciler  *reconciler.Reconciler
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
	proxyMaxLen int

	loads singleflight.Group
}

func NewService(store storage.Store, opts Options) *Service {
	s := &Service{
		store:       store,
		guard:       opts.Guard,
		resolver:    rounds.NewResolver(opts.Location, opts.WindowDays),
		parser:      opts.Parser,
		reconciler:  reconciler.New(store),
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		now:         opts.Now,
		proxyMaxLen: opts.ProxyNameMaxLen,
	}
	if s.guard == nil {
		s.guard = storage.NewMemoryGuard(storage.DefaultGuardTTL)
	}
	if s.parser == nil {
		s.parser = betparser.New(nil)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// HandleMessage runs the pipeline for msg. Errors are storage failures; the
// returned outcome then carries a generic reply for the sender.
func (s *Service) HandleMessage(ctx context.Context, msg Message) (out Outcome, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveIntake(time.Since(started))
		s.metrics.Message(outcomeLabel(out, err))
	}()

	if msg.Key != "" {
		first, err := s.guard.FirstSeen(ctx, msg.Key)
		if err != nil {
			// a guard outage must not stop bets; storage still rejects duplicates
			s.logger.Warn("Message guard unavailable", "key", msg.Key, "error", err)
		} else if !first {
			return Outcome{Ignored: true, Duplicate: true}, nil
		}
	}

	now := s.now()
	window, err := s.Window(ctx, now)
	if err != nil {
		s.release(ctx, msg.Key)
		return Outcome{Reply: replies.InternalError}, err
	}
	out.Window = window
	if window.Empty() {
		out.Ignored = true
		return out, nil
	}

	proxyName, text := reconciler.SplitProxyName(msg.Text, s.proxyMaxLen)
	out.Parse = s.parser.Parse(text, ParserMatches(window))
	if !out.Parse.Success {
		out.Ignored = true
		return out, nil
	}
	for _, b := range out.Parse.Bets {
		s.metrics.Parsed(string(b.Confidence))
	}

	res, err := s.reconciler.Reconcile(ctx, reconciler.Submission{
		Handle:      msg.Handle,
		SenderName:  msg.SenderName,
		ProxyName:   proxyName,
		Candidates:  out.Parse.Bets,
		Suggestions: out.Parse.Suggestions,
		Open:        window.Open,
		Now:         now,
	})
	out.Result = res
	s.recordResult(res)
	if err != nil {
		s.release(ctx, msg.Key)
		out.Reply = replies.InternalError
		return out, fmt.Errorf("failed to reconcile message %s: %w", msg.Key, err)
	}

	name, err := s.displayName(ctx, res.Player)
	if err != nil {
		s.logger.Warn("Failed to resolve display name", "player_id", res.Player.ID, "error", err)
	}
	out.Reply = replies.BetConfirmation(name, res)

	s.logger.Info("Bets processed",
		"key", msg.Key,
		"player_id", res.Player.ID,
		"proxy", proxyName != "",
		"accepted", len(res.Accepted),
		"already_exists", len(res.AlreadyExists),
		"rejected", len(res.Rejected),
		"parse_errors", len(out.Parse.Errors),
	)
	return out, nil
}

// release lets a redelivery of a message that failed on storage be retried.
func (s *Service) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn("Failed to release message key", "key", key, "error", err)
	}
}

// Window loads pending matches and resolves the round window at now. Matches
// of the active round pushed past the window are tagged as postponed.
func (s *Service) Window(ctx context.Context, now time.Time) (rounds.Window, error) {
	pending, err := s.pendingMatches(ctx, now)
	if err != nil {
		return rounds.Window{}, err
	}

	w := s.resolver.Resolve(s.currentRound(pending, now), now)
	s.metrics.OpenMatches(len(w.Open))

	tag := models.PostponedTag(w.Round)
	for _, m := range w.Postponed {
		if m.PostponedFrom != "" {
			continue
		}
		if err := s.store.TagPostponed(ctx, m.ID, tag); err != nil {
			s.logger.Warn("Failed to tag postponed match", "match_id", m.ID, "tag", tag, "error", err)
			continue
		}
		s.logger.Info("Match tagged as postponed", "match_id", m.ID, "match", m.Name(), "tag", tag)
	}
	return w, nil
}

// OpenWindow resolves the window at the current time.
func (s *Service) OpenWindow(ctx context.Context) (rounds.Window, error) {
	return s.Window(ctx, s.now())
}

// Location returns the pool's time zone.
func (s *Service) Location() *time.Location {
	return s.resolver.Location()
}

// currentRound picks the active round among the matches from today on and
// returns all loaded matches of that round. Earlier matches of the round only
// anchor the window start, so a past round never shadows the next one.
func (s *Service) currentRound(pending []models.Match, now time.Time) []models.Match {
	today := s.dayStart(now, 0)
	var upcoming []models.Match
	for _, m := range pending {
		if !m.StartTime.Before(today) {
			upcoming = append(upcoming, m)
		}
	}
	round := s.resolver.Resolve(upcoming, now).Round
	if round == 0 {
		return nil
	}

	var out []models.Match
	for _, m := range pending {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

func (s *Service) dayStart(now time.Time, daysBack int) time.Time {
	local := now.In(s.resolver.Location())
	y, m, d := local.Date()
	return time.Date(y, m, d-daysBack, 0, 0, 0, 0, local.Location())
}

// pendingMatches coalesces concurrent loads for the same day. The lookback
// of one window span keeps a round that started days ago anchored.
func (s *Service) pendingMatches(ctx context.Context, now time.Time) ([]models.Match, error) {
	since := s.dayStart(now, s.resolver.Days())

	v, err, _ := s.loads.Do(since.Format(time.DateOnly), func() (any, error) {
		// shared by every coalesced caller
		return s.store.ListPendingMatches(context.WithoutCancel(ctx), since)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load pending matches: %w", err)
	}
	return v.([]models.Match), nil
}

// PlayerBets returns the sender's most recent bets, newest first, with their
// matches. The player is nil for unknown handles.
func (s *Service) PlayerBets(ctx context.Context, handle string, limit int) (*models.Player, string, []replies.PlayerBet, error) {
	player, err := s.store.FindPlayerByHandle(ctx, handle)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", nil, nil
	}
	if err != nil {
		return nil, "", nil, err
	}

	bets, err := s.store.ListPlayerBets(ctx, player.ID, nil)
	if err != nil {
		return nil, "", nil, err
	}

	var out []replies.PlayerBet
	for i := len(bets) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		m, err := s.store.GetMatch(ctx, bets[i].MatchID)
		if err != nil {
			return nil, "", nil, err
		}
		out = append(out, replies.PlayerBet{Match: *m, Bet: bets[i]})
	}

	name, err := s.displayName(ctx, player)
	if err != nil {
		s.logger.Warn("Failed to resolve display name", "player_id", player.ID, "error", err)
	}
	return player, name, out, nil
}

func (s *Service) displayName(ctx context.Context, p *models.Player) (string, error) {
	if p == nil {
		return "", nil
	}
	n, err := s.store.CountPlayersByName(ctx, p.Name)
	if err != nil {
		return p.Name, err
	}
	return replies.DisplayName(p, n), nil
}

func (s *Service) recordResult(res reconciler.Result) {
	s.metrics.Bets(metrics.BetAccepted, len(res.Accepted))
	s.metrics.Bets(metrics.BetAlreadyExists, len(res.AlreadyExists))
	s.metrics.Bets(metrics.BetRejected, len(res.Rejected))
	for _, r := range res.Rejected {
		s.metrics.Rejection(string(r.Reason))
	}
}

// ParserMatches converts the open matches to the parser's input.
func ParserMatches(w rounds.Window) []betparser.OpenMatch {
	out := make([]betparser.OpenMatch, len(w.Open))
	for i, m := range w.Open {
		out[i] = betparser.OpenMatch{ID: m.ID, Number: m.Number, HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam}
	}
	return out
}

func outcomeLabel(out Outcome, err error) string {
	switch {
	case err != nil:
		return metrics.OutcomeError
	case out.Duplicate:
		return metrics.OutcomeDuplicate
	case out.Ignored && out.Window.Empty():
		return metrics.OutcomeClosed
	case out.Ignored:
		return metrics.OutcomeIgnored
	default:
		return metrics.OutcomeBets
	}
}
