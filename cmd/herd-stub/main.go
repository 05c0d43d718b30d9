package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mem "farm-animals/internal/adapters/storage/memory"
	pg "farm-animals/internal/adapters/storage/postgres"
	"farm-animals/internal/herdstub"
	"farm-animals/internal/middleware"
	"farm-animals/internal/platform/config"
	"farm-animals/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Stub de desarrollo del API de rodeo. Escucha en :8081 y sirve /api/v1/...
func main() {
	fs := pflag.NewFlagSet("herd-stub", pflag.ExitOnError)
	config.Flags(fs)
	fs.String("stub.db_dsn", "", "postgres DSN (vacío = memoria)")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		panic(err)
	}
	port := "8081"
	if fs.Changed("http.port") {
		port = cfg.HTTP.Port
	}

	log := logger.Must(logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "herd-stub",
	}))
	defer func() { _ = log.Sync() }()

	var repo herdstub.Repository
	if cfg.Stub.DBDSN != "" {
		db, err := pg.Open(cfg.Stub.DBDSN)
		if err != nil {
			log.Fatal("postgres", zap.Error(err))
		}
		defer db.Close()
		if err := pg.Migrate(context.Background(), db); err != nil {
			log.Fatal("postgres", zap.Error(err))
		}
		repo = pg.NewAnimalsRepo(db)
		log.Info("using postgres repository")
	} else {
		repo = mem.NewAnimalRepo()
		log.Info("using in-memory repository")
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/api", func(api chi.Router) {
		herdstub.RegisterRoutes(api, herdstub.NewService(repo, herdstub.DefaultReferences()), herdstub.Options{
			Envelope: cfg.Stub.Envelope,
			Logger:   log,
		})
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting herd stub", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
