package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss indica que la clave no está (o expiró).
var ErrCacheMiss = errors.New("cache miss")

// Store es el KV donde se cachea el catálogo serializado.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore: una instancia compartida entre réplicas del BFF.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// MemoryStore para dev y para el CLI: ristretto en proceso, con TTL por entrada.
type MemoryStore struct {
	cache *ristretto.Cache
}

func NewMemoryStore() (*MemoryStore, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     64 << 20, // 64MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("memory store: %w", err)
	}
	return &MemoryStore{cache: cache}, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	raw, ok := v.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), raw...), nil
}

// Set espera a que ristretto aplique la escritura; un Get inmediato ya la ve.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw := append([]byte(nil), value...)
	if !s.cache.SetWithTTL(key, raw, int64(len(raw)), ttl) {
		return errors.New("memory store: set dropped")
	}
	s.cache.Wait()
	return nil
}

func (s *MemoryStore) Close() { s.cache.Close() }
