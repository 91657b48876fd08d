package compose

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pryzm/pkg/cache"
	"github.com/umputun/pryzm/pkg/compose/mocks"
)

func TestTrendingService_Trending(t *testing.T) {
	store := &mocks.TagStoreMock{RecentTagsFunc: func(context.Context, time.Time, int) ([][]string, error) {
		return [][]string{
			{"grant", "Funding", "dod"},
			{"grant", "funding"},
			{"contract", "DoD", "grant"},
			{"news"},
		}, nil
	}}
	s := NewTrendingService(store, cache.NewMemoryCache(), time.Minute)
	s.now = func() time.Time { return testNow }

	tags := s.Trending(context.Background())
	assert.Equal(t, []string{"grant", "dod", "funding", "contract", "news"}, tags)

	require.Len(t, store.RecentTagsCalls(), 1)
	assert.Equal(t, testNow.Add(-7*24*time.Hour), store.RecentTagsCalls()[0].Since)
	assert.Equal(t, 300, store.RecentTagsCalls()[0].Limit)

	// second call is served from cache
	assert.Equal(t, tags, s.Trending(context.Background()))
	assert.Len(t, store.RecentTagsCalls(), 1)
}

func TestTrendingService_StaleOnFailure(t *testing.T) {
	c := &mocks.CacheMock{
		GetFunc: func(context.Context, string) ([]byte, bool, error) {
			return []byte(`["old","tags"]`), false, nil
		},
		SetFunc: func(context.Context, string, []byte, time.Duration) error { return nil },
	}
	store := &mocks.TagStoreMock{RecentTagsFunc: func(context.Context, time.Time, int) ([][]string, error) {
		return nil, errors.New("db down")
	}}
	s := NewTrendingService(store, c, 0)
	assert.Equal(t, []string{"old", "tags"}, s.Trending(context.Background()))
	assert.Empty(t, c.SetCalls())
}

func TestTrendingService_RefreshStale(t *testing.T) {
	c := &mocks.CacheMock{
		GetFunc: func(context.Context, string) ([]byte, bool, error) {
			return []byte(`["old"]`), false, nil
		},
		SetFunc: func(context.Context, string, []byte, time.Duration) error { return nil },
	}
	store := &mocks.TagStoreMock{RecentTagsFunc: func(context.Context, time.Time, int) ([][]string, error) {
		return [][]string{{"new"}}, nil
	}}
	s := NewTrendingService(store, c, 0)
	assert.Equal(t, []string{"new"}, s.Trending(context.Background()))
	require.Len(t, c.SetCalls(), 1)
	assert.Equal(t, TrendingCacheKey, c.SetCalls()[0].Key)
	assert.JSONEq(t, `["new"]`, string(c.SetCalls()[0].Value))
	assert.Equal(t, DefaultTrendingTTL, c.SetCalls()[0].Ttl)
}

func TestTrendingService_NoCacheNoStore(t *testing.T) {
	c := &mocks.CacheMock{
		GetFunc: func(context.Context, string) ([]byte, bool, error) { return nil, false, errors.New("redis down") },
		SetFunc: func(context.Context, string, []byte, time.Duration) error { return errors.New("redis down") },
	}
	store := &mocks.TagStoreMock{RecentTagsFunc: func(context.Context, time.Time, int) ([][]string, error) {
		return nil, errors.New("db down")
	}}
	s := NewTrendingService(store, c, 0)
	tags := s.Trending(context.Background())
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestTopTags(t *testing.T) {
	var rows [][]string
	for _, tag := range []string{"k", "j", "i", "h", "g", "f", "e", "d", "c", "b", "a"} {
		rows = append(rows, []string{tag})
	}
	rows = append(rows, []string{"z", "z", " ", ""})
	assert.Equal(t, []string{"z", "a", "b", "c", "d", "e", "f", "g", "h", "i"}, topTags(rows, 10))
}
