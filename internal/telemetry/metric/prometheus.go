// Package metric provides Prometheus metrics for the zkadmin tooling.
//
// It implements the adminapi Metrics hook on a private registry so calls
// made through the SDK are counted and timed, and serves the registry on a
// /metrics endpoint for long-running commands such as content watching.
package metric

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts and times administrative API calls. It satisfies the
// adminapi.Metrics interface.
type Recorder struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder builds a Recorder on its own registry, keeping zkadmin
// metrics separate from anything else in the process.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		registry: reg,
		requestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "zerokit_admin_requests_total",
			Help: "Administrative API calls by method and response code.",
		}, []string{"method", "code"}),
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zerokit_admin_request_duration_seconds",
			Help:    "Administrative API call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// ObserveRequest records one executed call. A status code of 0 marks a
// transport failure and is labeled "error".
func (r *Recorder) ObserveRequest(method string, statusCode int, elapsed time.Duration) {
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	r.requestsTotal.WithLabelValues(method, code).Inc()
	r.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler returns the /metrics endpoint for the recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done, then shuts the
// listener down gracefully.
func (r *Recorder) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("metrics endpoint listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
