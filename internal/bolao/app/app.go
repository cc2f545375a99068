// Package app wires configuration into the pool's runtime components.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gustavomchagas/chuta/internal/bolao/betparser"
	"github.com/gustavomchagas/chuta/internal/bolao/intake"
	"github.com/gustavomchagas/chuta/internal/pkg/config"
	"github.com/gustavomchagas/chuta/internal/pkg/metrics"
	"github.com/gustavomchagas/chuta/internal/pkg/storage"
	"github.com/gustavomchagas/chuta/internal/pkg/teams"
)

type App struct {
	Store   *storage.SQLStore
	Guard   storage.Guard
	Metrics *metrics.Metrics
	Teams   *teams.Resolver
	Parser  *betparser.Parser
	Intake  *intake.Service
}

// New opens storage and builds the intake. Close releases what it opened.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	resolver, err := NewTeamResolver(cfg.Teams)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	guard, err := NewGuard(cfg.Redis, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	a := &App{
		Store:   store,
		Guard:   guard,
		Metrics: metrics.New(),
		Teams:   resolver,
		Parser:  betparser.New(resolver),
	}
	a.Intake = intake.NewService(store, intake.Options{
		Location:        loc,
		WindowDays:      cfg.Pool.WindowDays,
		ProxyNameMaxLen: cfg.Pool.ProxyNameMaxLen,
		Parser:          a.Parser,
		Guard:           guard,
		Metrics:         a.Metrics,
		Logger:          logger,
	})
	return a, nil
}

// NewTeamResolver loads the alias file when one is configured.
func NewTeamResolver(cfg config.TeamsConfig) (*teams.Resolver, error) {
	if cfg.AliasesFile == "" {
		return teams.Default(), nil
	}
	table, err := teams.LoadTable(cfg.AliasesFile)
	if err != nil {
		return nil, err
	}
	return teams.NewResolver(table), nil
}

// NewGuard uses Redis when an address is configured and memory otherwise.
func NewGuard(cfg config.RedisConfig, logger *slog.Logger) (storage.Guard, error) {
	if cfg.Addr == "" {
		logger.Info("Using in-memory message guard")
		return storage.NewMemoryGuard(cfg.TTL), nil
	}
	g, err := storage.NewRedisGuard(cfg.Addr, cfg.Password, cfg.DB, cfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	logger.Info("Using redis message guard", "addr", cfg.Addr)
	return g, nil
}

func (a *App) Close() error {
	return errors.Join(a.Guard.Close(), a.Store.Close())
}
