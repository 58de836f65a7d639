package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jselig/mentionet/pkg/tweet"
)

// MemoryStore is an in-memory TweetStore for tests and offline analysis.
type MemoryStore struct {
	mu     sync.RWMutex
	tweets map[string]tweet.Tweet
}

// NewMemoryStore creates an empty in-memory store, optionally seeded.
func NewMemoryStore(seed ...tweet.Tweet) *MemoryStore {
	s := &MemoryStore{tweets: make(map[string]tweet.Tweet, len(seed))}
	for _, t := range seed {
		if t.ID != "" {
			s.tweets[t.ID] = t
		}
	}
	return s
}

// FindAll returns all stored tweets ordered by id.
func (s *MemoryStore) FindAll(ctx context.Context) ([]tweet.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tweet.Tweet, 0, len(s.tweets))
	for _, t := range s.tweets {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b tweet.Tweet) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Upsert stores tweets keyed by id.
func (s *MemoryStore) Upsert(ctx context.Context, tweets []tweet.Tweet) (UpsertStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats UpsertStats
	for _, t := range tweets {
		if t.ID == "" {
			continue
		}
		if _, ok := s.tweets[t.ID]; ok {
			stats.Updated++
		} else {
			stats.Inserted++
		}
		s.tweets[t.ID] = t
	}
	return stats, nil
}

// Count returns the number of stored tweets.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.tweets)), nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements TweetStore.
var _ TweetStore = (*MemoryStore)(nil)
