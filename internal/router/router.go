package router

import (
	"net/http"
	"time"

	_ "farm-animals/docs"
	"farm-animals/internal/adapters/export"
	"farm-animals/internal/adapters/notify"
	"farm-animals/internal/adapters/observability"
	"farm-animals/internal/domain/animals"
	"farm-animals/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	Backend animals.Backend
	Catalog animals.CatalogSource

	// Opcionales: sin Metrics no se expone /metrics; sin Exporter se usa xlsx.
	Metrics  *observability.PromMetrics
	Gatherer prometheus.Gatherer
	Exporter animals.Exporter
	Logger   *zap.Logger

	NavigateDelay  time.Duration
	AllowedOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.EchoRequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Use(middleware.SessionContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		g := opts.Gatherer
		if g == nil {
			g = prometheus.DefaultGatherer
		}
		r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	exp := opts.Exporter
	if exp == nil {
		exp = export.XLSX{}
	}

	deps := animals.Deps{
		Backend:       opts.Backend,
		Catalog:       opts.Catalog,
		Notifier:      notify.NewLog(log),
		Logger:        log,
		NavigateDelay: opts.NavigateDelay,
	}
	if opts.Metrics != nil {
		deps.Metrics = opts.Metrics
	}
	animals.RegisterRoutes(r, deps, exp)

	return withCORS(r, opts.AllowedOrigins)
}

func withCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			middleware.HeaderFarmID,
			middleware.HeaderUserID,
			middleware.HeaderUserEmail,
			middleware.HeaderDebugUser,
		},
		ExposedHeaders: []string{
			"X-Request-Id",
			"Content-Disposition",
		},
		AllowCredentials: false,
		MaxAge:           300,
	})
	return c.Handler(h)
}
