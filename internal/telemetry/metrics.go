package telemetry

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	httpDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// QuotesTotal counts price evaluations by outcome (ok / degraded).
	QuotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_quotes_total",
		Help: "Total price quote evaluations",
	}, []string{"outcome"})

	// QuoteDuration observes end-to-end quote latency.
	QuoteDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_quote_duration_seconds",
		Help:    "Price quote evaluation duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// RulesExecuted counts per-rule outcomes across all evaluations.
	RulesExecuted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_rules_executed_total",
		Help: "Rules considered during evaluation, by outcome",
	}, []string{"outcome"}) // matched, skipped, failed

	// SnapshotRules tracks how many rules the current snapshot holds.
	SnapshotRules = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snapshot_rules",
		Help: "Number of rules currently in the in-memory snapshot",
	})

	// StreamClients tracks connected rule-change stream clients.
	StreamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stream_clients",
		Help: "Number of currently connected rule-stream clients",
	})
)

func Init() {
	prometheus.MustRegister(httpReqs, httpDur, QuotesTotal, QuoteDuration, RulesExecuted, SnapshotRules, StreamClients)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(ww, r)

		httpReqs.WithLabelValues(route, r.Method, http.StatusText(ww.status)).Inc()
		httpDur.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
