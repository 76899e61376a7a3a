package settings

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dairygo6311/Babu-jijaji/internal/infra/cache"
)

const cacheKey = "app_settings"
const cacheTTL = 24 * time.Hour

// Service serves the settings singleton. Postgres is authoritative; a
// redis copy gives fast boot when the database is slow, and an
// in-process copy answers reads between refreshes.
type Service struct {
	repo  *Repo
	cache *cache.Client
	log   *slog.Logger

	mu      sync.RWMutex
	current Settings
	loaded  bool
}

func NewService(repo *Repo, c *cache.Client, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: c, log: log}
}

// Load primes the in-process copy: redis first for speed, then the
// store as the source of truth, then defaults when neither has data.
func (s *Service) Load(ctx context.Context) error {
	if s.cache != nil {
		var cached Settings
		if ok, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
			s.log.Error("settings cache read failed", "err", err)
		} else if ok {
			s.set(cached)
		}
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		if s.has() {
			s.log.Error("settings load failed, using cached copy", "err", err)
			return nil
		}
		return err
	}
	if stored == nil {
		if !s.has() {
			s.set(Defaults())
		}
		return nil
	}
	s.set(*stored)
	s.writeCache(ctx, *stored)
	return nil
}

// Current never fails: it falls back to defaults when Load has not run.
func (s *Service) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return Defaults()
	}
	return s.current
}

// Update persists the settings and refreshes both caches.
func (s *Service) Update(ctx context.Context, in Settings) error {
	if err := s.repo.Save(ctx, in); err != nil {
		return err
	}
	in.UpdatedAt = time.Now()
	s.set(in)
	s.writeCache(ctx, in)
	return nil
}

func (s *Service) set(v Settings) {
	s.mu.Lock()
	s.current = v
	s.loaded = true
	s.mu.Unlock()
}

func (s *Service) has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Service) writeCache(ctx context.Context, v Settings) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, cacheKey, v, cacheTTL); err != nil {
		s.log.Error("settings cache write failed", "err", err)
	}
}
