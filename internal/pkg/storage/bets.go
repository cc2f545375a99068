package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gustavomchagas/chuta/internal/pkg/models"
)

const betColumns = `id, player_id, match_id, home_score, away_score, points, created_at`

func scanBet(row rowScanner) (*models.Bet, error) {
	var (
		b      models.Bet
		points sql.NullInt64
	)
	if err := row.Scan(&b.ID, &b.PlayerID, &b.MatchID, &b.HomeScore, &b.AwayScore, &points, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Points = nullableInt(points)
	return &b, nil
}

// FindBet returns the player's bet for the match or ErrNotFound.
func (s *SQLStore) FindBet(ctx context.Context, playerID, matchID string) (*models.Bet, error) {
	b, err := scanBet(s.queryRow(ctx,
		`SELECT `+betColumns+` FROM bets WHERE player_id = ? AND match_id = ?`, playerID, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bet: %w", err)
	}
	return b, nil
}

// CreateBet inserts a bet. The (player_id, match_id) unique constraint is
// the authority on duplicates: a conflicting insert yields ErrDuplicateBet.
func (s *SQLStore) CreateBet(ctx context.Context, playerID, matchID string, homeScore, awayScore int) (*models.Bet, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, fmt.Errorf("invalid score %dx%d", homeScore, awayScore)
	}

	bet := &models.Bet{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		MatchID:   matchID,
		HomeScore: homeScore,
		AwayScore: awayScore,
		CreatedAt: utc(s.now()),
	}

	var id string
	err := s.queryRow(ctx, `
	INSERT INTO bets (id, player_id, match_id, home_score, away_score, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (player_id, match_id) DO NOTHING
	RETURNING id
	`, bet.ID, playerID, matchID, homeScore, awayScore, bet.CreatedAt).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		return nil, ErrDuplicateBet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store bet: %w", err)
	}
	return bet, nil
}

// ListPlayerBets returns the player's bets for matchIDs, or all of them when
// matchIDs is empty, oldest first.
func (s *SQLStore) ListPlayerBets(ctx context.Context, playerID string, matchIDs []string) ([]models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE player_id = ?`
	args := []any{playerID}
	if len(matchIDs) > 0 {
		query += ` AND match_id IN (?` + strings.Repeat(", ?", len(matchIDs)-1) + `)`
		for _, id := range matchIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query player bets: %w", err)
	}
	defer rows.Close()

	var bets []models.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return bets, nil
}
