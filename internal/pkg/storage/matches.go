package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gustavomchagas/chuta/internal/pkg/models"
)

const matchColumns = `id, round, home_team, away_team, start_time, status, postponed_from, home_score, away_score`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		m          models.Match
		status     string
		home, away sql.NullInt64
	)
	if err := row.Scan(&m.ID, &m.Round, &m.HomeTeam, &m.AwayTeam, &m.StartTime, &status, &m.PostponedFrom, &home, &away); err != nil {
		return nil, err
	}
	m.Status = models.MatchStatus(status)
	m.HomeScore = nullableInt(home)
	m.AwayScore = nullableInt(away)
	return &m, nil
}

// ListPendingMatches returns matches still to be played from since on.
func (s *SQLStore) ListPendingMatches(ctx context.Context, since time.Time) ([]models.Match, error) {
	rows, err := s.query(ctx, `
	SELECT `+matchColumns+`
	FROM matches
	WHERE status NOT IN (?, ?) AND start_time >= ?
	ORDER BY start_time, id
	`, string(models.MatchFinished), string(models.MatchCancelled), utc(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return matches, nil
}

// GetMatch returns ErrNotFound for unknown ids.
func (s *SQLStore) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	m, err := scanMatch(s.queryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return m, nil
}

// UpsertMatch stores the fixture, overwriting a previous version.
func (s *SQLStore) UpsertMatch(ctx context.Context, match *models.Match) error {
	if match.ID == "" {
		return errors.New("match id is required")
	}
	status := match.Status
	if status == "" {
		status = models.MatchScheduled
	}

	_, err := s.exec(ctx, `
	INSERT INTO matches (`+matchColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		round = excluded.round,
		home_team = excluded.home_team,
		away_team = excluded.away_team,
		start_time = excluded.start_time,
		status = excluded.status,
		postponed_from = excluded.postponed_from,
		home_score = excluded.home_score,
		away_score = excluded.away_score
	`,
		match.ID,
		match.Round,
		match.HomeTeam,
		match.AwayTeam,
		utc(match.StartTime),
		string(status),
		match.PostponedFrom,
		nullInt(match.HomeScore),
		nullInt(match.AwayScore),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", match.ID, err)
	}
	return nil
}

// TagPostponed sets postponed_from unless the match already carries a tag.
func (s *SQLStore) TagPostponed(ctx context.Context, matchID, tag string) error {
	res, err := s.exec(ctx, `UPDATE matches SET postponed_from = ? WHERE id = ? AND postponed_from = ''`, tag, matchID)
	if err != nil {
		return fmt.Errorf("failed to tag match %s: %w", matchID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := s.GetMatch(ctx, matchID); err != nil {
			return err
		}
	}
	return nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
