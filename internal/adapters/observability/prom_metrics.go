package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// PromMetrics implementa animals.Metrics y mide los requests del BFF.
type PromMetrics struct {
	saves     *prometheus.CounterVec
	posts     *prometheus.CounterVec
	fallbacks prometheus.Counter
	requests  *prometheus.HistogramVec
}

// NewPromMetrics registra los colectores en reg (prometheus.DefaultRegisterer si es nil).
func NewPromMetrics(reg prometheus.Registerer) *PromMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &PromMetrics{
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "animals_save_total",
			Help: "Primary writes (create, update, delete and list actions) by outcome.",
		}, []string{"path", "outcome"}),
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "animals_post_action_total",
			Help: "Best-effort weight/movement sync after a save, by status.",
		}, []string{"action", "status"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animals_list_fallback_total",
			Help: "List requests answered with sample records because the herd API was not ready.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "animals_http_request_duration_seconds",
			Help:    "BFF request latency by route and status.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.saves, m.posts, m.fallbacks, m.requests)
	return m
}

func (m *PromMetrics) SaveCompleted(path, outcome string) {
	m.saves.WithLabelValues(path, outcome).Inc()
}

func (m *PromMetrics) PostAction(action, status string) {
	m.posts.WithLabelValues(action, status).Inc()
}

func (m *PromMetrics) ListFallback() {
	m.fallbacks.Inc()
}

// Middleware usa el patrón de ruta de chi como label para no explotar la cardinalidad con ids.
func (m *PromMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
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
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
