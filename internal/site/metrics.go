package site

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inno8-site/internal/auth"
	"inno8-site/internal/ui"
)

var (
	// MetricRequests counts served requests by route pattern, method and status
	MetricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inno8_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// MetricRequestDuration tracks request latency by route pattern
	MetricRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inno8_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"route"})

	// MetricActiveRequests tracks in-flight requests
	MetricActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inno8_http_active_requests",
		Help: "Current in-flight HTTP requests",
	})

	// MetricRateLimited counts requests rejected by the submission limiter
	MetricRateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inno8_rate_limited_total",
		Help: "Requests rejected by per-IP rate limits",
	}, []string{"route"})
)

// metricsMiddleware records request metrics under the matched route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		MetricActiveRequests.Inc()
		defer MetricActiveRequests.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		MetricRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		MetricRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// MetricsServer wraps the HTTP server for prometheus metrics
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a new metrics server. When creds is non-nil the
// endpoint requires HTTP basic auth.
func NewMetricsServer(addr string, creds *auth.MetricsCredentials) *MetricsServer {
	var handler http.Handler = promhttp.Handler()
	if creds != nil {
		handler = auth.BasicAuth("metrics", *creds)(handler)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler exposes the metrics mux (used in tests).
func (m *MetricsServer) Handler() http.Handler {
	return m.server.Handler
}

// Start begins serving metrics (non-blocking)
func (m *MetricsServer) Start() {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.LogStatus("error", "Metrics server error: "+err.Error())
		}
	}()
}

// Shutdown gracefully stops the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.server.Shutdown(shutdownCtx)
}
