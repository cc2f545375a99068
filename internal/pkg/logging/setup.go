package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gustavomchagas/chuta/internal/pkg/config"
)

// SetupLogger configures the global logger from cfg and returns it tagged
// with serviceName.
func SetupLogger(cfg *config.LoggingConfig, serviceName string) *slog.Logger {
	logger := NewLogger(cfg, serviceName, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// NewLogger builds a logger writing to w and to any extra handlers.
func NewLogger(cfg *config.LoggingConfig, serviceName string, w io.Writer, extra ...slog.Handler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var primary slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		primary = slog.NewJSONHandler(w, opts)
	} else {
		primary = slog.NewTextHandler(w, opts)
	}

	var handler slog.Handler = primary
	if len(extra) > 0 {
		handler = &MultiHandler{handlers: append([]slog.Handler{primary}, extra...)}
	}
	return slog.New(handler).With("service", serviceName)
}

// ParseLevel maps a level name to a slog level; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans records out to several handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var lastErr error
	for _, h := range m.handlers {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record.Clone()); err != nil {
				lastErr = err
			}
		}
	}
	return lastErr
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: handlers}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: handlers}
}
