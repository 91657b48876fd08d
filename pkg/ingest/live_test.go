package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pryzm/pkg/domain"
	"github.com/umputun/pryzm/pkg/ingest/mocks"
)

func searcher(name string, items ...domain.FeedItem) *mocks.SearcherMock {
	return &mocks.SearcherMock{
		NameFunc:   func() string { return name },
		SearchFunc: func(context.Context, string, int) []domain.FeedItem { return items },
	}
}

func TestLiveFetcher_FetchLive(t *testing.T) {
	var mu sync.Mutex
	var stored []domain.FeedItem
	store := &mocks.StoreMock{UpsertItemsFunc: func(_ context.Context, items []domain.FeedItem) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		stored = append(stored, items...)
		return len(items), nil
	}}

	grants := searcher("grants", item("g1", "grant one", "https://grants/g1"), item("g2", "no link", "#"))
	contracts := searcher("contracts", item("c1", "contract one", "https://sam/c1"), item("g1", "dup", "https://grants/g1"))
	news := searcher("news-search", item("n1", "news one", "https://news/redirect/1"))

	l := NewLiveFetcher(store, nil).
		Register(grants, PolicyPersist).
		Register(contracts, PolicyPersist).
		Register(news, PolicyScoringOnly)

	res := l.FetchLive(context.Background(), []string{"hypersonics", " ", "space", "ai", "quantum", "drones", "cyber"}, 20)
	l.Wait()

	require.Len(t, res.Persistable, 2)
	assert.Equal(t, "g1", res.Persistable[0].ID)
	assert.Equal(t, "grant one", res.Persistable[0].Title)
	assert.Equal(t, "c1", res.Persistable[1].ID)
	require.Len(t, res.ScoringOnly, 1)
	assert.Equal(t, "n1", res.ScoringOnly[0].ID)

	calls := grants.SearchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "hypersonics space ai quantum drones", calls[0].Query)
	assert.Equal(t, 20, calls[0].Limit)
	assert.Equal(t, "hypersonics space ai quantum drones", news.SearchCalls()[0].Query)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, stored, 2, "only persistable items stored")
	assert.Equal(t, "g1", stored[0].ID)
	assert.Equal(t, "c1", stored[1].ID)
}

func TestLiveFetcher_NoTopics(t *testing.T) {
	s := searcher("grants", item("g1", "grant", "https://grants/g1"))
	l := NewLiveFetcher(&mocks.StoreMock{}, nil).Register(s, PolicyPersist)
	res := l.FetchLive(context.Background(), []string{"", "  "}, 10)
	l.Wait()
	assert.Empty(t, res.Persistable)
	assert.Empty(t, res.ScoringOnly)
	assert.Empty(t, s.SearchCalls())
}

func TestLiveFetcher_StoreFailureIgnored(t *testing.T) {
	store := &mocks.StoreMock{UpsertItemsFunc: func(context.Context, []domain.FeedItem) (int, error) {
		return 0, errors.New("locked")
	}}
	l := NewLiveFetcher(store, nil).Register(searcher("grants", item("g1", "grant", "https://grants/g1")), PolicyPersist)
	res := l.FetchLive(context.Background(), []string{"topic"}, 10)
	l.Wait()
	require.Len(t, res.Persistable, 1)
	assert.Len(t, store.UpsertItemsCalls(), 1)
}

func TestLiveFetcher_ScoringOnlyNotStored(t *testing.T) {
	store := &mocks.StoreMock{UpsertItemsFunc: func(context.Context, []domain.FeedItem) (int, error) {
		t.Fatal("scoring-only items must not be stored")
		return 0, nil
	}}
	l := NewLiveFetcher(store, nil).Register(searcher("news-search", item("n1", "news", "https://news/1")), PolicyScoringOnly)
	res := l.FetchLive(context.Background(), []string{"topic"}, 10)
	l.Wait()
	assert.Len(t, res.ScoringOnly, 1)
	assert.Empty(t, res.Persistable)
}

func TestLiveQuery(t *testing.T) {
	tbl := []struct {
		topics []string
		want   string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{" a ", "", "b"}, "a b"},
		{[]string{"1", "2", "3", "4", "5", "6"}, "1 2 3 4 5"},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, liveQuery(tt.topics))
	}
}
