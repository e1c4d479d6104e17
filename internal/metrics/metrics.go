// Package metrics instruments leaderboard fetches with Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeStatus    = "http_status"
	OutcomeTransport = "transport"
	OutcomeDecode    = "decode"
	OutcomeCanceled  = "canceled"
)

// Recorder holds the fetch collectors on a private registry.
type Recorder struct {
	registry *prometheus.Registry
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
	stale    prometheus.Counter
}

// NewRecorder registers the podium collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "podium",
			Name:      "fetch_total",
			Help:      "Leaderboard fetches by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "podium",
			Name:      "fetch_duration_seconds",
			Help:      "Leaderboard fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "podium",
			Name:      "stale_responses_total",
			Help:      "Responses dropped because a newer request was issued.",
		}),
	}
	r.registry.MustRegister(r.fetches, r.duration, r.stale)
	return r
}

// ObserveFetch records one completed fetch.
func (r *Recorder) ObserveFetch(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(outcome).Inc()
	r.duration.Observe(d.Seconds())
}

// ObserveStale records a dropped out-of-order response.
func (r *Recorder) ObserveStale() {
	if r == nil {
		return
	}
	r.stale.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, fmt.Sprintf("metrics: listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("metrics: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics: shutdown: %w", err)
	}
	return nil
}
