package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavomchagas/chuta/internal/bolao/rounds"
	"github.com/gustavomchagas/chuta/internal/pkg/config"
	"github.com/gustavomchagas/chuta/internal/pkg/health/handlers"
	"github.com/gustavomchagas/chuta/internal/pkg/metrics"
	"github.com/gustavomchagas/chuta/internal/pkg/models"
)

type windowFunc func(ctx context.Context) (rounds.Window, error)

func (f windowFunc) OpenWindow(ctx context.Context) (rounds.Window, error) { return f(ctx) }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_PingAndHealth(t *testing.T) {
	h := NewRouter(Deps{})

	rec := get(t, h, "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong\n", rec.Body.String())

	rec = get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestRouter_HealthFailure(t *testing.T) {
	h := NewRouter(Deps{Checker: func(context.Context) error { return errors.New("database is closed") }})

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "database is closed")
}

func TestRouter_OptionalRoutes(t *testing.T) {
	h := NewRouter(Deps{})
	assert.Equal(t, http.StatusNotFound, get(t, h, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/matches/open").Code)
}

func TestRouter_Metrics(t *testing.T) {
	m := metrics.New()
	m.Message(metrics.OutcomeBets)
	h := NewRouter(Deps{Metrics: m.Handler()})

	rec := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `chuta_messages_total{outcome="bets"} 1`)
}

func TestRouter_OpenMatches(t *testing.T) {
	start := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)
	kickoff := start.Add(19 * time.Hour)
	win := rounds.Window{
		Round: 3,
		Start: start,
		End:   start.AddDate(0, 0, 3).Add(-time.Nanosecond),
		Open: []rounds.OpenMatch{{
			Match:  models.Match{ID: "m1", Round: 3, HomeTeam: "Flamengo", AwayTeam: "Vasco da Gama", StartTime: kickoff},
			Number: 1,
		}},
		Postponed: []models.Match{{ID: "m9", Round: 3, HomeTeam: "Bahia", AwayTeam: "Vitória", StartTime: kickoff.AddDate(0, 0, 5), PostponedFrom: "R3"}},
	}
	h := NewRouter(Deps{Window: windowFunc(func(context.Context) (rounds.Window, error) { return win, nil })})

	rec := get(t, h, "/matches/open")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Matches-Count"))

	var body handlers.WindowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Round)
	require.Len(t, body.Matches, 1)
	assert.Equal(t, 1, body.Matches[0].Number)
	assert.Equal(t, "Flamengo", body.Matches[0].HomeTeam)
	assert.True(t, kickoff.Equal(body.Matches[0].StartTime))
	require.Len(t, body.Postponed, 1)
	assert.Equal(t, "R3", body.Postponed[0].PostponedFrom)
	require.NotNil(t, body.Start)
	assert.True(t, start.Equal(*body.Start))
}

func TestRouter_OpenMatchesEmptyAndError(t *testing.T) {
	h := NewRouter(Deps{Window: windowFunc(func(context.Context) (rounds.Window, error) { return rounds.Window{}, nil })})
	rec := get(t, h, "/matches/open")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matches":[]`)
	assert.NotContains(t, rec.Body.String(), `"start"`)

	h = NewRouter(Deps{Window: windowFunc(func(context.Context) (rounds.Window, error) { return rounds.Window{}, errors.New("boom") })})
	assert.Equal(t, http.StatusInternalServerError, get(t, h, "/matches/open").Code)
}

func TestRun_RequiresTimeout(t *testing.T) {
	err := Run(context.Background(), config.HealthConfig{Addr: ":0"}, "test", NewRouter(Deps{}))
	assert.Error(t, err)
}

func TestAddrFor(t *testing.T) {
	addr, err := AddrFor(8080)
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	_, err = AddrFor(0)
	assert.Error(t, err)
}
