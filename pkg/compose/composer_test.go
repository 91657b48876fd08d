package compose

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pryzm/pkg/compose/mocks"
	"github.com/umputun/pryzm/pkg/domain"
	"github.com/umputun/pryzm/pkg/scoring"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) *time.Time {
	t := testNow.Add(-d)
	return &t
}

func feedItem(id string, src domain.Source, title string, published *time.Time) domain.FeedItem {
	return domain.FeedItem{ID: id, Source: src, Title: title, URL: "https://example.com/" + id,
		PublishedAt: published, Tags: []string{}}
}

// itemStore returns the given batches on consecutive QueryRecent calls, the last one repeats
func itemStore(batches ...[]domain.FeedItem) *mocks.ItemStoreMock {
	var mu sync.Mutex
	call := 0
	return &mocks.ItemStoreMock{QueryRecentFunc: func(context.Context, int) ([]domain.FeedItem, error) {
		mu.Lock()
		defer mu.Unlock()
		idx := min(call, len(batches)-1)
		call++
		return batches[idx], nil
	}}
}

func okSyncer() *mocks.SyncerMock {
	return &mocks.SyncerMock{SyncFunc: func(context.Context) error { return nil }}
}

func newTestComposer(p Params) *Composer {
	p.Scorer = scoring.New(scoring.WithNow(func() time.Time { return testNow }))
	p.Intn = func(int) int { return 0 }
	return New(p)
}

func ids(items []domain.FeedItem) []string {
	res := make([]string, 0, len(items))
	for _, item := range items {
		res = append(res, item.ID)
	}
	return res
}

func TestComposer_BuildFeed(t *testing.T) {
	stored := []domain.FeedItem{
		feedItem("n1", domain.SourceNews, "New Hypersonics Test Program Announced", ago(2*time.Hour)),
		feedItem("g1", domain.SourceGrants, "Grant Opportunity", ago(10*24*time.Hour)),
		feedItem("n2", domain.SourceNews, "Unrelated story", nil),
	}
	live := &mocks.LiveFetcherMock{FetchLiveFunc: func(context.Context, []string, int) domain.LiveResult {
		return domain.LiveResult{
			Persistable: []domain.FeedItem{
				feedItem("c1", domain.SourceContracts, "Hypersonics prototype contract", ago(time.Hour)),
				feedItem("g1", domain.SourceGrants, "duplicate of stored", ago(time.Hour)),
			},
			ScoringOnly: []domain.FeedItem{feedItem("s1", domain.SourceNews, "Hypersonics news search hit", ago(30*time.Minute))},
		}
	}}
	users := &mocks.UserStoreMock{
		LoadContextFunc: func(context.Context, string) (*domain.UserScoringContext, error) {
			uc := domain.DefaultScoringContext()
			uc.Preferences = []string{"Hypersonics", "AI/ML"}
			return &uc, nil
		},
		LogSearchFunc: func(context.Context, string, string) error { return nil },
	}
	bookmarks := &mocks.BookmarkStoreMock{BookmarkedIDsFunc: func(context.Context, string) ([]string, error) {
		return []string{"c1", "n2"}, nil
	}}
	syncer := okSyncer()

	c := newTestComposer(Params{Items: itemStore(stored), Syncer: syncer, Live: live, Users: users, Bookmarks: bookmarks,
		PerSourceLimit: 7})
	resp, err := c.BuildFeed(context.Background(), "  hypersonics ", "user1")
	require.NoError(t, err)
	c.Wait()

	assert.Empty(t, syncer.SyncCalls(), "strong results need no sync")

	// latest is the stored pool with persistable live items, newest first, undated last
	assert.Equal(t, []string{"c1", "n1", "g1", "n2"}, ids(resp.Latest))
	assert.Equal(t, "Grant Opportunity", resp.Latest[2].Title, "stored item wins over live duplicate")
	assert.True(t, resp.Latest[0].Bookmarked)
	assert.True(t, resp.Latest[3].Bookmarked)
	assert.False(t, resp.Latest[1].Bookmarked)

	// for you holds stored, persistable and scoring-only items
	assert.ElementsMatch(t, []string{"c1", "n1", "g1", "n2", "s1"}, ids(resp.ForYou))
	for _, item := range resp.ForYou {
		assert.Equal(t, item.ID == "c1" || item.ID == "n2", item.Bookmarked, item.ID)
	}

	require.Len(t, live.FetchLiveCalls(), 1)
	assert.Equal(t, []string{"Hypersonics", "AI/ML"}, live.FetchLiveCalls()[0].Topics, "preferences are live topics")
	assert.Equal(t, 7, live.FetchLiveCalls()[0].PerSourceLimit)

	require.Len(t, users.LogSearchCalls(), 1)
	assert.Equal(t, "hypersonics", users.LogSearchCalls()[0].Query)
	assert.Equal(t, "user1", users.LogSearchCalls()[0].UserID)
}

func TestComposer_BuildFeedInvalidQuery(t *testing.T) {
	items := itemStore(nil)
	c := newTestComposer(Params{Items: items, Syncer: okSyncer()})
	for _, q := range []string{"", "   ", strings.Repeat("x", MaxQueryLen+1)} {
		_, err := c.BuildFeed(context.Background(), q, "")
		require.ErrorIs(t, err, ErrInvalidQuery)
	}
	assert.Empty(t, items.QueryRecentCalls())

	_, err := c.BuildFeed(context.Background(), strings.Repeat("я", MaxQueryLen), "")
	require.NoError(t, err, "limit counts runes")
}

func TestComposer_BuildFeedColdStart(t *testing.T) {
	synced := []domain.FeedItem{feedItem("n1", domain.SourceNews, "Space launch", ago(time.Hour))}
	items := itemStore(nil, synced)
	syncer := okSyncer()
	c := newTestComposer(Params{Items: items, Syncer: syncer})

	resp, err := c.BuildFeed(context.Background(), "space", "")
	require.NoError(t, err)
	assert.Len(t, syncer.SyncCalls(), 1)
	assert.Len(t, items.QueryRecentCalls(), 2)
	assert.Equal(t, []string{"n1"}, ids(resp.Latest))
	assert.Equal(t, []string{"n1"}, ids(resp.ForYou))
	assert.InDelta(t, 70.0, resp.ForYou[0].Score, 0.01)
}

func TestComposer_BuildFeedColdStartSyncFails(t *testing.T) {
	syncer := &mocks.SyncerMock{SyncFunc: func(context.Context) error { return errors.New("database is locked") }}
	c := newTestComposer(Params{Items: itemStore(nil), Syncer: syncer})
	_, err := c.BuildFeed(context.Background(), "space", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap sync")
	assert.Contains(t, err.Error(), "database is locked")
}

func TestComposer_BuildFeedLoadsStoredAndLiveConcurrently(t *testing.T) {
	liveStarted := make(chan struct{})
	items := &mocks.ItemStoreMock{QueryRecentFunc: func(context.Context, int) ([]domain.FeedItem, error) {
		select {
		case <-liveStarted:
			return []domain.FeedItem{feedItem("n1", domain.SourceNews, "Space launch update", ago(time.Hour))}, nil
		case <-time.After(time.Second):
			return nil, errors.New("live fetch did not start while stored items were loading")
		}
	}}
	var once sync.Once
	live := &mocks.LiveFetcherMock{FetchLiveFunc: func(context.Context, []string, int) domain.LiveResult {
		once.Do(func() { close(liveStarted) })
		return domain.LiveResult{}
	}}
	c := newTestComposer(Params{Items: items, Syncer: okSyncer(), Live: live})

	resp, err := c.BuildFeed(context.Background(), "space", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, ids(resp.Latest))
	assert.Len(t, live.FetchLiveCalls(), 1)
}

func TestComposer_BuildFeedStoreError(t *testing.T) {
	items := &mocks.ItemStoreMock{QueryRecentFunc: func(context.Context, int) ([]domain.FeedItem, error) {
		return nil, errors.New("no such table")
	}}
	c := newTestComposer(Params{Items: items, Syncer: okSyncer()})
	_, err := c.BuildFeed(context.Background(), "space", "")
	require.Error(t, err)
}

func TestComposer_BuildFeedWeakResync(t *testing.T) {
	weak := []domain.FeedItem{feedItem("old", domain.SourceNews, "Old unrelated story", nil)}
	better := append([]domain.FeedItem{feedItem("new", domain.SourceGrants, "Quantum sensing grant", ago(time.Hour))}, weak...)

	items := itemStore(weak, better)
	syncer := okSyncer()
	c := newTestComposer(Params{Items: items, Syncer: syncer})

	resp, err := c.BuildFeed(context.Background(), "quantum", "")
	require.NoError(t, err)
	assert.Len(t, syncer.SyncCalls(), 1)
	assert.ElementsMatch(t, []string{"new", "old"}, ids(resp.ForYou))
	assert.Equal(t, []string{"new", "old"}, ids(resp.Latest), "latest follows the kept pass")
}

func TestComposer_BuildFeedWeakResyncNeverRegresses(t *testing.T) {
	first := []domain.FeedItem{feedItem("a", domain.SourceNews, "Weekly digest", ago(8*24*time.Hour))}
	second := []domain.FeedItem{feedItem("b", domain.SourceNews, "Another digest", nil)}

	t.Run("lower score after sync", func(t *testing.T) {
		syncer := okSyncer()
		c := newTestComposer(Params{Items: itemStore(first, second), Syncer: syncer})
		resp, err := c.BuildFeed(context.Background(), "quantum", "")
		require.NoError(t, err)
		assert.Len(t, syncer.SyncCalls(), 1)
		assert.Equal(t, []string{"a"}, ids(resp.ForYou))
		assert.Equal(t, []string{"a"}, ids(resp.Latest))
	})

	t.Run("refresh sync fails", func(t *testing.T) {
		syncer := &mocks.SyncerMock{SyncFunc: func(context.Context) error { return errors.New("boom") }}
		c := newTestComposer(Params{Items: itemStore(first), Syncer: syncer})
		resp, err := c.BuildFeed(context.Background(), "quantum", "")
		require.NoError(t, err, "refresh failure is not reported")
		assert.Equal(t, []string{"a"}, ids(resp.ForYou))
	})
}

func TestComposer_BuildFeedUserFailuresDegrade(t *testing.T) {
	stored := []domain.FeedItem{feedItem("n1", domain.SourceNews, "Lockheed Martin hypersonics award", ago(time.Hour))}
	users := &mocks.UserStoreMock{
		LoadContextFunc: func(context.Context, string) (*domain.UserScoringContext, error) {
			return nil, errors.New("settings table missing")
		},
		LogSearchFunc: func(context.Context, string, string) error { return errors.New("read only") },
	}
	bookmarks := &mocks.BookmarkStoreMock{BookmarkedIDsFunc: func(context.Context, string) ([]string, error) {
		return nil, errors.New("bookmarks failed")
	}}
	live := &mocks.LiveFetcherMock{FetchLiveFunc: func(context.Context, []string, int) domain.LiveResult {
		return domain.LiveResult{}
	}}
	c := newTestComposer(Params{Items: itemStore(stored), Syncer: okSyncer(), Users: users, Bookmarks: bookmarks, Live: live})

	resp, err := c.BuildFeed(context.Background(), "hypersonics", "user1")
	require.NoError(t, err)
	c.Wait()
	require.Len(t, resp.ForYou, 1)
	assert.False(t, resp.ForYou[0].Bookmarked)
	assert.Equal(t, []string{"hypersonics"}, live.FetchLiveCalls()[0].Topics, "query is the topic without preferences")
}

func TestComposer_BuildFeedMutedTerm(t *testing.T) {
	muted := feedItem("m1", domain.SourceContracts, "Hypersonics award", ago(time.Hour))
	muted.Summary = domain.StrPtr("Lockheed Martin awarded a hypersonics contract")
	stored := []domain.FeedItem{muted, feedItem("n1", domain.SourceNews, "Hypersonics research", ago(time.Hour))}
	users := &mocks.UserStoreMock{
		LoadContextFunc: func(context.Context, string) (*domain.UserScoringContext, error) {
			uc := domain.DefaultScoringContext()
			uc.MutedTerms = []string{"lockheed"}
			return &uc, nil
		},
		LogSearchFunc: func(context.Context, string, string) error { return nil },
	}
	c := newTestComposer(Params{Items: itemStore(stored), Syncer: okSyncer(), Users: users})
	resp, err := c.BuildFeed(context.Background(), "hypersonics", "user1")
	require.NoError(t, err)
	c.Wait()
	assert.Equal(t, []string{"n1"}, ids(resp.ForYou))
	assert.ElementsMatch(t, []string{"m1", "n1"}, ids(resp.Latest), "latest is not filtered")
}

func TestComposer_BuildFeedNoUser(t *testing.T) {
	users := &mocks.UserStoreMock{
		LoadContextFunc: func(context.Context, string) (*domain.UserScoringContext, error) {
			t.Fatal("no context load without user")
			return nil, nil
		},
		LogSearchFunc: func(context.Context, string, string) error { return nil },
	}
	stored := []domain.FeedItem{feedItem("n1", domain.SourceNews, "Space launch", ago(time.Hour))}
	c := newTestComposer(Params{Items: itemStore(stored), Syncer: okSyncer(), Users: users})
	resp, err := c.BuildFeed(context.Background(), "space", "")
	require.NoError(t, err)
	c.Wait()
	assert.Len(t, resp.ForYou, 1)
	assert.Len(t, users.LogSearchCalls(), 1, "anonymous searches are logged too")
}
