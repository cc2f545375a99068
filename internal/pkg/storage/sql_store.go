package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/gustavomchagas/chuta/internal/pkg/config"
)

// Ensure SQLStore implements Store
var _ Store = (*SQLStore)(nil)

type dialect struct {
	driver    string
	timestamp string
	// numbered placeholders ($1, $2) instead of ?
	numbered bool
}

var (
	postgresDialect = dialect{driver: "postgres", timestamp: "TIMESTAMPTZ", numbered: true}
	sqliteDialect   = dialect{driver: "sqlite", timestamp: "TIMESTAMP"}
)

// SQLStore keeps matches, players and bets in PostgreSQL or SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

// Open connects to the database described by cfg and creates the schema.
func Open(ctx context.Context, cfg *config.StorageConfig) (*SQLStore, error) {
	var d dialect
	switch cfg.Driver {
	case config.DriverPostgres:
		d = postgresDialect
	case config.DriverSQLite:
		d = sqliteDialect
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%s DSN is required", cfg.Driver)
	}

	db, err := sql.Open(d.driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", cfg.Driver, err)
	}
	if d == sqliteDialect {
		// a single writer avoids SQLITE_BUSY under concurrent updates
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.Driver, err)
	}

	store := &SQLStore{db: db, dialect: d, now: time.Now}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Debug("Storage initialized", "driver", cfg.Driver)
	return store, nil
}

func (s *SQLStore) initSchema(ctx context.Context) error {
	ts := s.dialect.timestamp
	statements := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			round INTEGER NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			start_time ` + ts + ` NOT NULL,
			status TEXT NOT NULL DEFAULT 'SCHEDULED',
			postponed_from TEXT NOT NULL DEFAULT '',
			home_score INTEGER,
			away_score INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_start_time ON matches(start_time)`,
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			name_key TEXT NOT NULL,
			handle TEXT UNIQUE,
			created_at ` + ts + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_players_name_key ON players(name_key)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_players_proxy_name ON players(name_key) WHERE handle IS NULL`,
		`CREATE TABLE IF NOT EXISTS bets (
			id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL REFERENCES players(id),
			match_id TEXT NOT NULL REFERENCES matches(id),
			home_score INTEGER NOT NULL CHECK (home_score >= 0),
			away_score INTEGER NOT NULL CHECK (away_score >= 0),
			points INTEGER,
			created_at ` + ts + ` NOT NULL,
			UNIQUE (player_id, match_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_match_id ON bets(match_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites ? placeholders for drivers using numbered ones.
func (s *SQLStore) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// Clean removes all bets and players.
func (s *SQLStore) Clean(ctx context.Context) error {
	for _, table := range []string{"bets", "players"} {
		if _, err := s.exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// isUniqueViolation recognizes unique constraint failures of both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// utc normalizes times before they reach the database so SQLite text
// timestamps compare correctly.
func utc(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
