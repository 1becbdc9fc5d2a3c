package repository

import (
	"context"
	"errors"
	"time"

	"StockScreener/internal/domain/models"
	domrepo "StockScreener/internal/domain/repository"
	pkgcache "StockScreener/pkg/cache"
	applogger "StockScreener/pkg/logger"
)

var snapshotCacheKey = pkgcache.GenerateKey("snapshots", "latest")

// CachedSnapshotStore caches the latest snapshot set in front of another
// SnapshotStore. Cache failures degrade to the inner store; they never fail
// a read.
type CachedSnapshotStore struct {
	inner domrepo.SnapshotStore
	cache pkgcache.Service
	ttl   time.Duration
	l     *applogger.Logger
}

func NewCachedSnapshotStore(inner domrepo.SnapshotStore, cache pkgcache.Service, ttl time.Duration) *CachedSnapshotStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSnapshotStore{inner: inner, cache: cache, ttl: ttl}
}

// SetLogger injects a structured logger.
func (s *CachedSnapshotStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CachedSnapshotStore) Latest(ctx context.Context) ([]models.Snapshot, error) {
	var cached []models.Snapshot
	err := s.cache.Get(ctx, snapshotCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, pkgcache.ErrCacheMiss) && s.l != nil {
		s.l.Warn("snapshot cache read error", applogger.Error(err))
	}

	fresh, err := s.inner.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, snapshotCacheKey, fresh, s.ttl); err != nil && s.l != nil {
		s.l.Warn("snapshot cache write error", applogger.Error(err))
	}
	return fresh, nil
}

// Invalidate drops the cached snapshot set so the next read refetches. The
// enrichment pipeline calls this after loading a new trading day.
func (s *CachedSnapshotStore) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, snapshotCacheKey)
}
