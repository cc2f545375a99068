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

const playerColumns = `id, name, handle, created_at`

func scanPlayer(row rowScanner) (*models.Player, error) {
	var (
		p      models.Player
		handle sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &handle, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Handle = handle.String
	return &p, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindPlayerByHandle returns ErrNotFound for unknown handles.
func (s *SQLStore) FindPlayerByHandle(ctx context.Context, handle string) (*models.Player, error) {
	p, err := scanPlayer(s.queryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE handle = ?`, handle))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find player by handle: %w", err)
	}
	return p, nil
}

func (s *SQLStore) findPlayerByName(ctx context.Context, name string) (*models.Player, error) {
	p, err := scanPlayer(s.queryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE name_key = ? ORDER BY created_at, id LIMIT 1`, nameKey(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find player by name: %w", err)
	}
	return p, nil
}

// FindOrCreatePlayer resolves key to a player, creating it on first sight.
// With a handle the name is only used for a new player.
func (s *SQLStore) FindOrCreatePlayer(ctx context.Context, key PlayerKey) (*models.Player, error) {
	key.Name = strings.TrimSpace(key.Name)
	switch {
	case key.Handle != "":
		p, err := s.FindPlayerByHandle(ctx, key.Handle)
		if !errors.Is(err, ErrNotFound) {
			return p, err
		}
		name := key.Name
		if name == "" {
			name = key.Handle
		}
		p, err = s.insertPlayer(ctx, name, key.Handle)
		if errors.Is(err, errPlayerExists) {
			// created concurrently by another message from the same sender
			return s.FindPlayerByHandle(ctx, key.Handle)
		}
		return p, err

	case key.Name != "":
		p, err := s.findPlayerByName(ctx, key.Name)
		if !errors.Is(err, ErrNotFound) {
			return p, err
		}
		p, err = s.insertPlayer(ctx, key.Name, "")
		if errors.Is(err, errPlayerExists) {
			return s.findPlayerByName(ctx, key.Name)
		}
		return p, err

	default:
		return nil, errors.New("player key needs a handle or a name")
	}
}

var errPlayerExists = errors.New("player exists")

func (s *SQLStore) insertPlayer(ctx context.Context, name, handle string) (*models.Player, error) {
	p := &models.Player{
		ID:        uuid.NewString(),
		Name:      name,
		Handle:    handle,
		CreatedAt: utc(s.now()),
	}
	h := sql.NullString{String: handle, Valid: handle != ""}

	var id string
	err := s.queryRow(ctx, `
	INSERT INTO players (id, name, name_key, handle, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT DO NOTHING
	RETURNING id
	`, p.ID, p.Name, nameKey(p.Name), h, p.CreatedAt).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		return nil, errPlayerExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return p, nil
}

// CountPlayersByName counts players whose name equals name, ignoring case.
func (s *SQLStore) CountPlayersByName(ctx context.Context, name string) (int, error) {
	var n int
	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM players WHERE name_key = ?`, nameKey(name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}
