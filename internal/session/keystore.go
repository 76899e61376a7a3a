package session

import (
	"context"
	"sync"

	"github.com/dairygo6311/Babu-jijaji/internal/infra/cache"
)

const licenseKeyName = "license_key"

// RedisKeyStore keeps the cached license key in redis, the server-side
// stand-in for the old dashboard's localStorage slot.
type RedisKeyStore struct {
	cache *cache.Client
}

func NewRedisKeyStore(c *cache.Client) *RedisKeyStore {
	return &RedisKeyStore{cache: c}
}

func (s *RedisKeyStore) Get(ctx context.Context) (string, error) {
	return s.cache.GetString(ctx, licenseKeyName)
}

func (s *RedisKeyStore) Set(ctx context.Context, key string) error {
	return s.cache.SetString(ctx, licenseKeyName, key)
}

func (s *RedisKeyStore) Clear(ctx context.Context) error {
	return s.cache.Del(ctx, licenseKeyName)
}

// MemKeyStore is a process-local KeyStore for tests and single-node
// runs without redis.
type MemKeyStore struct {
	mu  sync.Mutex
	key string
}

func NewMemKeyStore() *MemKeyStore { return &MemKeyStore{} }

func (s *MemKeyStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, nil
}

func (s *MemKeyStore) Set(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	return nil
}

func (s *MemKeyStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	return nil
}
