// @title       farm-animals BFF
// @version     1.0
// @description Listado, detalle y alta/edición de animales sobre el API de rodeo.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farm-animals/internal/adapters/catalog"
	"farm-animals/internal/adapters/herdapi"
	"farm-animals/internal/adapters/observability"
	"farm-animals/internal/platform/config"
	"farm-animals/internal/platform/httpclient"
	"farm-animals/internal/platform/logger"
	"farm-animals/internal/router"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fs := pflag.NewFlagSet("api", pflag.ExitOnError)
	config.Flags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		panic(err)
	}

	log := logger.Must(logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	}))
	defer func() { _ = log.Sync() }()

	client, err := herdapi.NewClient(httpclient.Config{
		BaseURL:    cfg.Herd.BaseURL,
		Timeout:    cfg.Herd.Timeout,
		RetryCount: cfg.Herd.RetryCount,
	}, log)
	if err != nil {
		log.Fatal("herd client", zap.Error(err))
	}

	var store catalog.Store
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		defer rdb.Close()
		store = catalog.NewRedisStore(rdb)
		log.Info("catalog cache on redis", zap.String("addr", cfg.Cache.RedisAddr))
	} else {
		mem, err := catalog.NewMemoryStore()
		if err != nil {
			log.Fatal("catalog cache", zap.Error(err))
		}
		defer mem.Close()
		store = mem
	}

	r := router.NewRouter(router.Options{
		Backend:        client,
		Catalog:        catalog.NewLoader(client, store, cfg.Cache.TTL, log),
		Metrics:        observability.NewPromMetrics(prometheus.DefaultRegisterer),
		Logger:         log,
		NavigateDelay:  cfg.UI.NavigateDelay,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Herd.Timeout + 10*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("herd", cfg.Herd.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
