package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"farm-animals/internal/domain/animals"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL = 5 * time.Minute
	keyPrefix  = "farm-animals:catalog:"
)

// Source son las lecturas de datos de referencia del backend (herdapi.Client).
type Source interface {
	Breeds(ctx context.Context) ([]animals.Reference, error)
	Categories(ctx context.Context) ([]animals.Reference, error)
	Paddocks(ctx context.Context, farmID string) ([]animals.Reference, error)
	Batches(ctx context.Context, farmID string) ([]animals.Reference, error)
	MovementTypes(ctx context.Context) ([]animals.Reference, error)
}

// Loader implementa animals.CatalogSource: cache por granja y, ante un miss,
// las cinco lecturas en paralelo. Misses concurrentes de la misma granja
// comparten una sola carga.
type Loader struct {
	src    Source
	store  Store
	ttl    time.Duration
	log    *zap.Logger
	flight singleflight.Group
}

func NewLoader(src Source, store Store, ttl time.Duration, log *zap.Logger) *Loader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{src: src, store: store, ttl: ttl, log: log.Named("catalog")}
}

func (l *Loader) Catalog(ctx context.Context, farmID string) (animals.Catalog, error) {
	farmID = strings.TrimSpace(farmID)
	key := keyPrefix + farmID

	if cat, ok := l.cached(ctx, key); ok {
		return cat, nil
	}

	v, err, _ := l.flight.Do(key, func() (any, error) {
		// otro llamador pudo haber llenado el cache mientras esperábamos
		if cat, ok := l.cached(ctx, key); ok {
			return cat, nil
		}
		cat, err := l.fetch(ctx, farmID)
		if err != nil {
			return nil, err
		}
		l.save(ctx, key, farmID, cat)
		return cat, nil
	})
	if err != nil {
		return animals.Catalog{}, err
	}
	return v.(animals.Catalog), nil
}

func (l *Loader) save(ctx context.Context, key, farmID string, cat animals.Catalog) {
	if l.store == nil {
		return
	}
	raw, err := json.Marshal(cat)
	if err == nil {
		err = l.store.Set(ctx, key, raw, l.ttl)
	}
	if err != nil {
		l.log.Warn("catalog cache write failed", zap.String("farm_id", farmID), zap.Error(err))
	}
}

func (l *Loader) cached(ctx context.Context, key string) (animals.Catalog, bool) {
	if l.store == nil {
		return animals.Catalog{}, false
	}
	raw, err := l.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			l.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return animals.Catalog{}, false
	}
	var cat animals.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		l.log.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return animals.Catalog{}, false
	}
	return cat, true
}

// fetch falla entero si alguna lectura falla; un catálogo a medias no se cachea.
func (l *Loader) fetch(ctx context.Context, farmID string) (animals.Catalog, error) {
	var cat animals.Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		cat.Breeds, err = l.src.Breeds(gctx)
		return wrap("breeds", err)
	})
	g.Go(func() (err error) {
		cat.Categories, err = l.src.Categories(gctx)
		return wrap("categories", err)
	})
	g.Go(func() (err error) {
		cat.MovementTypes, err = l.src.MovementTypes(gctx)
		return wrap("movement types", err)
	})
	if farmID != "" {
		g.Go(func() (err error) {
			cat.Paddocks, err = l.src.Paddocks(gctx, farmID)
			return wrap("paddocks", err)
		})
		g.Go(func() (err error) {
			cat.Batches, err = l.src.Batches(gctx, farmID)
			return wrap("batches", err)
		})
	}

	if err := g.Wait(); err != nil {
		l.log.Error("catalog fetch failed", zap.String("farm_id", farmID), zap.Error(err))
		return animals.Catalog{}, err
	}
	return cat, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}
