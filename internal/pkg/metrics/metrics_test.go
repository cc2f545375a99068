package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counts(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.Message(OutcomeBets)
	m.Message(OutcomeBets)
	m.Message(OutcomeIgnored)
	m.Bets(BetAccepted, 3)
	m.Bets(BetRejected, 0)
	m.Rejection("já começou")
	m.Parsed("high")
	m.OpenMatches(7)
	m.ObserveIntake(15 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.messages.WithLabelValues(OutcomeBets)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messages.WithLabelValues(OutcomeIgnored)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.bets.WithLabelValues(BetAccepted)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.bets.WithLabelValues(BetRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("já começou")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.openGauge))
	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Message(OutcomeDuplicate)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `chuta_messages_total{outcome="duplicate"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.Message(OutcomeBets)
	m.Bets(BetAccepted, 1)
	m.Rejection("x")
	m.Parsed("high")
	m.ObserveIntake(time.Second)
	m.OpenMatches(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
