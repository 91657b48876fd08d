package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/tag_store.go -pkg mocks -skip-ensure -fmt goimports . TagStore
//go:generate moq -out mocks/cache.go -pkg mocks -skip-ensure -fmt goimports . Cache

// trending defaults
const (
	TrendingCacheKey     = "trending:tags"
	DefaultTrendingTTL   = 15 * time.Minute
	trendingWindow       = 7 * 24 * time.Hour
	trendingRowsLimit    = 300
	trendingTagsReturned = 10
)

// TagStore returns tag lists of items published since a time
type TagStore interface {
	RecentTags(ctx context.Context, since time.Time, limit int) ([][]string, error)
}

// Cache is a TTL cache, fresh is false for expired or missing entries
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, fresh bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TrendingService reports the most frequent tags of recent items through a cache
type TrendingService struct {
	store TagStore
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewTrendingService makes a trending service, zero ttl means DefaultTrendingTTL
func NewTrendingService(store TagStore, c Cache, ttl time.Duration) *TrendingService {
	if ttl <= 0 {
		ttl = DefaultTrendingTTL
	}
	return &TrendingService{store: store, cache: c, ttl: ttl, now: time.Now}
}

// Trending returns up to 10 tags ordered by frequency, ties alphabetical.
// On refresh failure a stale cached value is served, or an empty list if there is none.
func (s *TrendingService) Trending(ctx context.Context) []string {
	cached, fresh, err := s.cache.Get(ctx, TrendingCacheKey)
	if err != nil {
		lgr.Printf("[WARN] failed to read trending cache: %v", err)
	}
	var stale []string
	if cached != nil {
		if err := json.Unmarshal(cached, &stale); err != nil {
			lgr.Printf("[WARN] failed to decode trending cache: %v", err)
			stale, fresh = nil, false
		}
		if fresh {
			return stale
		}
	}

	tags, err := s.compute(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to compute trending tags: %v", err)
		if stale == nil {
			return []string{}
		}
		return stale
	}

	data, err := json.Marshal(tags)
	if err != nil {
		lgr.Printf("[WARN] failed to encode trending tags: %v", err)
		return tags
	}
	if err := s.cache.Set(ctx, TrendingCacheKey, data, s.ttl); err != nil {
		lgr.Printf("[WARN] failed to store trending tags: %v", err)
	}
	return tags
}

func (s *TrendingService) compute(ctx context.Context) ([]string, error) {
	rows, err := s.store.RecentTags(ctx, s.now().Add(-trendingWindow), trendingRowsLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent tags: %w", err)
	}
	return topTags(rows, trendingTagsReturned), nil
}

// topTags counts lowercased tags and returns the n most frequent, ties alphabetical
func topTags(rows [][]string, n int) []string {
	counts := map[string]int{}
	for _, tags := range rows {
		for _, t := range tags {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				counts[t]++
			}
		}
	}
	res := make([]string, 0, len(counts))
	for t := range counts {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool {
		if counts[res[i]] != counts[res[j]] {
			return counts[res[i]] > counts[res[j]]
		}
		return res[i] < res[j]
	})
	if len(res) > n {
		res = res[:n]
	}
	return res
}
