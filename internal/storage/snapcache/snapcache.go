// Package snapcache keeps memoized reports in process memory in front of a
// storage.SnapshotStore. Snapshots never change once stored, so a cached
// copy is always current; only hits are cached.
package snapcache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/storage"
)

var _ storage.SnapshotStore = (*Store)(nil)

// Store is a read-through cache over another SnapshotStore.
type Store struct {
	next  storage.SnapshotStore
	cache *cache.Cache
}

// New wraps next. Entries expire after ttl and are swept every 2*ttl.
func New(next storage.SnapshotStore, ttl time.Duration) *Store {
	return &Store{next: next, cache: cache.New(ttl, 2*ttl)}
}

// Snapshot serves from memory when possible.
func (s *Store) Snapshot(ctx context.Context, userID, period string) (models.Report, error) {
	key := cacheKey(userID, period)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(models.Report), nil
	}
	report, err := s.next.Snapshot(ctx, userID, period)
	if err != nil {
		return models.Report{}, err
	}
	s.cache.SetDefault(key, report)
	return report, nil
}

// PutSnapshotIfAbsent writes through. The cache is only filled when this
// call stored the snapshot, since a losing writer's report is not the one
// on disk.
func (s *Store) PutSnapshotIfAbsent(ctx context.Context, userID, period string, report models.Report) (bool, error) {
	stored, err := s.next.PutSnapshotIfAbsent(ctx, userID, period, report)
	if err != nil {
		return false, err
	}
	if stored {
		s.cache.SetDefault(cacheKey(userID, period), report)
	}
	return stored, nil
}

// Len returns the number of cached snapshots.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

func cacheKey(userID, period string) string {
	return "snapshot_" + userID + "_" + period
}
