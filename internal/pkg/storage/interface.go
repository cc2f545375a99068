package storage

import (
	"context"
	"errors"
	"time"

	"github.com/gustavomchagas/chuta/internal/pkg/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateBet is returned by CreateBet when the player already has a
	// bet for the match.
	ErrDuplicateBet = errors.New("bet already exists for player and match")
)

// PlayerKey identifies a player either by transport handle or, for bets
// placed on someone's behalf, by name. Handle takes precedence.
type PlayerKey struct {
	Handle string
	Name   string
}

// MatchStore gives access to fixtures.
type MatchStore interface {
	// ListPendingMatches returns matches not finished nor cancelled starting
	// at or after since, ordered by start time.
	ListPendingMatches(ctx context.Context, since time.Time) ([]models.Match, error)

	GetMatch(ctx context.Context, matchID string) (*models.Match, error)

	// UpsertMatch inserts the match or updates every column of an existing one.
	UpsertMatch(ctx context.Context, match *models.Match) error

	// TagPostponed records the round a match was pushed out of.
	TagPostponed(ctx context.Context, matchID, tag string) error
}

// BetStore records guesses. Bets are never updated.
type BetStore interface {
	// FindBet returns ErrNotFound when the player has no bet for the match.
	FindBet(ctx context.Context, playerID, matchID string) (*models.Bet, error)

	// CreateBet returns ErrDuplicateBet when a bet for the pair exists.
	CreateBet(ctx context.Context, playerID, matchID string, homeScore, awayScore int) (*models.Bet, error)

	// ListPlayerBets returns the player's bets for the given matches.
	ListPlayerBets(ctx context.Context, playerID string, matchIDs []string) ([]models.Bet, error)
}

// PlayerStore manages pool participants.
type PlayerStore interface {
	// FindOrCreatePlayer matches handles exactly and names case-insensitively.
	FindOrCreatePlayer(ctx context.Context, key PlayerKey) (*models.Player, error)

	FindPlayerByHandle(ctx context.Context, handle string) (*models.Player, error)

	// CountPlayersByName counts players sharing the name, ignoring case.
	CountPlayersByName(ctx context.Context, name string) (int, error)
}

// Store is the full storage surface used by the bot.
type Store interface {
	MatchStore
	BetStore
	PlayerStore

	// Clean removes all bets and players. Matches are kept.
	Clean(ctx context.Context) error

	Close() error
}
