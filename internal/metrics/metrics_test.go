package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveFetch_CountsByOutcome(t *testing.T) {
	r := NewRecorder()
	r.ObserveFetch(OutcomeOK, 20*time.Millisecond)
	r.ObserveFetch(OutcomeOK, 30*time.Millisecond)
	r.ObserveFetch(OutcomeStatus, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeStatus)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeDecode)))
}

func TestRecorder_ObserveStale(t *testing.T) {
	r := NewRecorder()
	r.ObserveStale()
	r.ObserveStale()
	assert.Equal(t, 2.0, testutil.ToFloat64(r.stale))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveFetch(OutcomeOK, time.Second)
		r.ObserveStale()
	})
}

func TestRecorder_Handler_ExposesCollectors(t *testing.T) {
	r := NewRecorder()
	r.ObserveFetch(OutcomeTransport, time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `podium_fetch_total{outcome="transport"} 1`)
	assert.Contains(t, string(body), "podium_fetch_duration_seconds_bucket")
}
