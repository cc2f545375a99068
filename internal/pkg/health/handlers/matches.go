package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gustavomchagas/chuta/internal/bolao/rounds"
)

// WindowSource resolves the current round window.
type WindowSource interface {
	OpenWindow(ctx context.Context) (rounds.Window, error)
}

type openMatch struct {
	Number    int       `json:"number"`
	ID        string    `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	StartTime time.Time `json:"start_time"`
}

type postponedMatch struct {
	ID            string    `json:"id"`
	HomeTeam      string    `json:"home_team"`
	AwayTeam      string    `json:"away_team"`
	StartTime     time.Time `json:"start_time"`
	PostponedFrom string    `json:"postponed_from,omitempty"`
}

// WindowResponse is the body of /matches/open.
type WindowResponse struct {
	Round     int              `json:"round"`
	Start     *time.Time       `json:"start,omitempty"`
	End       *time.Time       `json:"end,omitempty"`
	Matches   []openMatch      `json:"matches"`
	Postponed []postponedMatch `json:"postponed"`
	Meta      map[string]any   `json:"meta"`
}

// OpenMatches handles /matches/open.
func OpenMatches(src WindowSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		win, err := src.OpenWindow(r.Context())
		if err != nil {
			slog.Error("Failed to resolve round window", "error", err)
			http.Error(w, fmt.Sprintf(`{"error": %q}`, err.Error()), http.StatusInternalServerError)
			return
		}

		resp := WindowResponse{
			Round:     win.Round,
			Matches:   make([]openMatch, 0, len(win.Open)),
			Postponed: make([]postponedMatch, 0, len(win.Postponed)),
		}
		if win.Round > 0 {
			resp.Start, resp.End = &win.Start, &win.End
		}
		for _, m := range win.Open {
			resp.Matches = append(resp.Matches, openMatch{
				Number: m.Number, ID: m.ID, HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam, StartTime: m.StartTime,
			})
		}
		for _, m := range win.Postponed {
			resp.Postponed = append(resp.Postponed, postponedMatch{
				ID: m.ID, HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam, StartTime: m.StartTime, PostponedFrom: m.PostponedFrom,
			})
		}

		duration := time.Since(startTime)
		w.Header().Set("X-Query-Duration", duration.String())
		w.Header().Set("X-Matches-Count", fmt.Sprintf("%d", len(resp.Matches)))
		resp.Meta = map[string]any{
			"count":    len(resp.Matches),
			"duration": duration.String(),
		}

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("Failed to encode open matches", "error", err)
		}
	}
}
