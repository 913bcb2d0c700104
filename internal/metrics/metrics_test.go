package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveIngest(true)
	m.ObserveIngest(false)
	m.ObserveAttempt()
	m.ObserveReply(OutcomeSucceeded, "", time.Second, false)
	m.ObserveReply(OutcomeFailed, "NoImageReturned", time.Second, false)
	m.ObserveReply(OutcomeSucceeded, "", time.Second, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Attempts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StaleReplies))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues(OutcomeSucceeded, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues(OutcomeFailed, "NoImageReturned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ingests.WithLabelValues("rejected")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveIngest(true)
	m.ObserveAttempt()
	m.ObserveReply(OutcomeFailed, "TransportError", time.Second, false)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveAttempt()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "bgremove_attempts_total 1")
}
