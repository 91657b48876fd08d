// Package compose builds the per-request feed: stored items merged with live results,
// scored for the user and split into the ranked "for you" view and the chronological "latest" view.
package compose

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/pryzm/pkg/domain"
	"github.com/umputun/pryzm/pkg/metrics"
	"github.com/umputun/pryzm/pkg/scoring"
)

//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/syncer.go -pkg mocks -skip-ensure -fmt goimports . Syncer
//go:generate moq -out mocks/live_fetcher.go -pkg mocks -skip-ensure -fmt goimports . LiveFetcher
//go:generate moq -out mocks/user_store.go -pkg mocks -skip-ensure -fmt goimports . UserStore
//go:generate moq -out mocks/bookmark_store.go -pkg mocks -skip-ensure -fmt goimports . BookmarkStore

// MaxQueryLen is the longest accepted query, in runes
const MaxQueryLen = 256

// defaults used when Params leave them zero
const (
	DefaultStoreLimit     = 500
	DefaultWeakThreshold  = 5.0
	DefaultPerSourceLimit = 20
)

// ErrInvalidQuery is returned for an empty or too long query
var ErrInvalidQuery = errors.New("invalid query")

// ItemStore reads stored items
type ItemStore interface {
	QueryRecent(ctx context.Context, limit int) ([]domain.FeedItem, error)
}

// Syncer runs a full bulk sync
type Syncer interface {
	Sync(ctx context.Context) error
}

// LiveFetcher runs targeted searches for request topics
type LiveFetcher interface {
	FetchLive(ctx context.Context, topics []string, perSourceLimit int) domain.LiveResult
}

// UserStore provides personalization and records searches
type UserStore interface {
	LoadContext(ctx context.Context, userID string) (*domain.UserScoringContext, error)
	LogSearch(ctx context.Context, userID, query string) error
}

// BookmarkStore lists bookmarked item ids of a user
type BookmarkStore interface {
	BookmarkedIDs(ctx context.Context, userID string) ([]string, error)
}

// Params configures Composer. Live, Users and Bookmarks are optional.
type Params struct {
	Items     ItemStore
	Syncer    Syncer
	Live      LiveFetcher
	Users     UserStore
	Bookmarks BookmarkStore
	Scorer    *scoring.Scorer
	Metrics   *metrics.Metrics

	StoreLimit     int
	WeakThreshold  float64
	PerSourceLimit int
	Intn           func(n int) int // random source for interleaving, rand.IntN if nil
}

// Composer builds feeds
type Composer struct {
	Params
	wg sync.WaitGroup
}

// New makes a composer with defaults for zero params
func New(p Params) *Composer {
	if p.StoreLimit <= 0 {
		p.StoreLimit = DefaultStoreLimit
	}
	if p.WeakThreshold <= 0 {
		p.WeakThreshold = DefaultWeakThreshold
	}
	if p.PerSourceLimit <= 0 {
		p.PerSourceLimit = DefaultPerSourceLimit
	}
	if p.Scorer == nil {
		p.Scorer = scoring.New()
	}
	if p.Intn == nil {
		p.Intn = rand.IntN
	}
	return &Composer{Params: p}
}

// pool is one candidate set: stored items (with persistable live items merged in) plus scoring-only extras
type pool struct {
	stored []domain.FeedItem
	ranked []domain.FeedItem
}

func (p pool) top() (float64, bool) {
	if len(p.ranked) == 0 {
		return 0, false
	}
	return p.ranked[0].Score, true
}

// BuildFeed returns the ranked and chronological views for a query.
// Only invalid input and a failed bootstrap sync on an empty store are returned as errors,
// every other failure degrades the result.
func (c *Composer) BuildFeed(ctx context.Context, query, userID string) (resp domain.FeedResponse, err error) {
	query = strings.TrimSpace(query)
	if query == "" || utf8.RuneCountInString(query) > MaxQueryLen {
		return domain.FeedResponse{}, ErrInvalidQuery
	}

	st := time.Now()
	defer func() {
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusFailure
		}
		c.Metrics.FeedBuilt(status, time.Since(st))
	}()

	c.logSearch(ctx, userID, query)

	// stored items load while user context and live results are fetched
	var (
		stored    []domain.FeedItem
		uc        *domain.UserScoringContext
		bookmarks map[string]bool
		live      domain.LiveResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		stored, loadErr = c.loadStored(gctx)
		return loadErr
	})
	g.Go(func() error {
		uc, bookmarks = c.loadUser(gctx, userID)
		live = c.fetchLive(gctx, query, uc)
		return nil
	})
	if err = g.Wait(); err != nil {
		return domain.FeedResponse{}, err
	}

	best := c.rank(stored, live, query, uc)
	if top, ok := best.top(); !ok || top <= c.WeakThreshold {
		best = c.resync(ctx, best, live, query, uc)
	}

	latest := append([]domain.FeedItem(nil), best.stored...)
	domain.SortByPublishedDesc(latest)

	resp = domain.FeedResponse{
		ForYou: markBookmarked(Interleave(best.ranked, c.Intn), bookmarks),
		Latest: markBookmarked(latest, bookmarks),
	}
	lgr.Printf("[DEBUG] feed for %q: %d for you, %d latest", query, len(resp.ForYou), len(resp.Latest))
	return resp, nil
}

// Wait blocks until background search logging is finished
func (c *Composer) Wait() {
	c.wg.Wait()
}

// loadStored returns recent stored items, an empty store is filled by a bootstrap sync first
func (c *Composer) loadStored(ctx context.Context) ([]domain.FeedItem, error) {
	stored, err := c.Items.QueryRecent(ctx, c.StoreLimit)
	if err != nil {
		return nil, fmt.Errorf("load stored items: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}
	lgr.Printf("[INFO] no stored items, running bootstrap sync")
	if err = c.Syncer.Sync(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap sync: %w", err)
	}
	if stored, err = c.Items.QueryRecent(ctx, c.StoreLimit); err != nil {
		return nil, fmt.Errorf("reload stored items: %w", err)
	}
	return stored, nil
}

// fetchLive runs targeted fetch for the user's preferences, or the query when there are none
func (c *Composer) fetchLive(ctx context.Context, query string, uc *domain.UserScoringContext) domain.LiveResult {
	if c.Live == nil {
		return domain.LiveResult{}
	}
	topics := []string{query}
	if uc != nil && len(uc.Preferences) > 0 {
		topics = uc.Preferences
	}
	return c.Live.FetchLive(ctx, topics, c.PerSourceLimit)
}

// rank merges live items into the stored pool and scores the union once
func (c *Composer) rank(stored []domain.FeedItem, live domain.LiveResult, query string, uc *domain.UserScoringContext) pool {
	merged := domain.DedupByID(append(append([]domain.FeedItem(nil), stored...), live.Persistable...))
	candidates := domain.DedupByID(append(append([]domain.FeedItem(nil), merged...), live.ScoringOnly...))
	return pool{stored: merged, ranked: c.Scorer.Score(candidates, query, uc)}
}

// resync runs one extra sync for weak results and keeps the new pass only if its top score is higher
func (c *Composer) resync(ctx context.Context, prev pool, live domain.LiveResult, query string,
	uc *domain.UserScoringContext) pool {
	prevTop, hasPrev := prev.top()
	lgr.Printf("[DEBUG] weak results for %q (top %.1f), running refresh sync", query, prevTop)
	if err := c.Syncer.Sync(ctx); err != nil {
		lgr.Printf("[WARN] refresh sync failed: %v", err)
		return prev
	}
	stored, err := c.Items.QueryRecent(ctx, c.StoreLimit)
	if err != nil {
		lgr.Printf("[WARN] failed to reload items after refresh sync: %v", err)
		return prev
	}
	next := c.rank(stored, live, query, uc)
	if top, ok := next.top(); ok && (!hasPrev || top > prevTop) {
		return next
	}
	return prev
}

// loadUser returns scoring context and bookmarked ids, both fail open to nil
func (c *Composer) loadUser(ctx context.Context, userID string) (*domain.UserScoringContext, map[string]bool) {
	if userID == "" {
		return nil, nil
	}
	var uc *domain.UserScoringContext
	var bookmarks map[string]bool
	var g errgroup.Group
	if c.Users != nil {
		g.Go(func() error {
			res, err := c.Users.LoadContext(ctx, userID)
			if err != nil {
				lgr.Printf("[WARN] failed to load context for user %s, no personalization: %v", userID, err)
				return nil
			}
			uc = res
			return nil
		})
	}
	if c.Bookmarks != nil {
		g.Go(func() error {
			ids, err := c.Bookmarks.BookmarkedIDs(ctx, userID)
			if err != nil {
				lgr.Printf("[WARN] failed to load bookmarks for user %s: %v", userID, err)
				return nil
			}
			bookmarks = make(map[string]bool, len(ids))
			for _, id := range ids {
				bookmarks[id] = true
			}
			return nil
		})
	}
	_ = g.Wait()
	return uc, bookmarks
}

// logSearch records the query in background, failures are logged only
func (c *Composer) logSearch(ctx context.Context, userID, query string) {
	if c.Users == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Users.LogSearch(context.WithoutCancel(ctx), userID, query); err != nil {
			lgr.Printf("[WARN] failed to log search %q: %v", query, err)
		}
	}()
}

func markBookmarked(items []domain.FeedItem, bookmarks map[string]bool) []domain.FeedItem {
	if items == nil {
		items = []domain.FeedItem{}
	}
	for i := range items {
		items[i].Bookmarked = bookmarks[items[i].ID]
	}
	return items
}
