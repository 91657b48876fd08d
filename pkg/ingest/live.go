package ingest

import (
	"context"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/pryzm/pkg/domain"
	"github.com/umputun/pryzm/pkg/metrics"
)

//go:generate moq -out mocks/searcher.go -pkg mocks -skip-ensure -fmt goimports . Searcher

// MaxLiveTopics is how many topics are joined into one live query
const MaxLiveTopics = 5

// Searcher is a targeted adapter, Search never fails and returns nothing on error
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, limit int) []domain.FeedItem
}

// Policy tells what may be done with items of a searcher
type Policy string

const (
	// PolicyPersist items have canonical links and may be stored
	PolicyPersist Policy = "persist"
	// PolicyScoringOnly items only join the ranking pool of the current request
	PolicyScoringOnly Policy = "scoring-only"
)

type liveSource struct {
	searcher Searcher
	policy   Policy
}

// LiveFetcher runs targeted searches for request topics
type LiveFetcher struct {
	store   Store
	sources []liveSource
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

// NewLiveFetcher makes a live fetcher writing persistable items to store, metrics may be nil
func NewLiveFetcher(store Store, m *metrics.Metrics) *LiveFetcher {
	return &LiveFetcher{store: store, metrics: m}
}

// Register adds a searcher with its policy, not safe to call concurrently with FetchLive
func (l *LiveFetcher) Register(s Searcher, p Policy) *LiveFetcher {
	l.sources = append(l.sources, liveSource{searcher: s, policy: p})
	return l
}

// FetchLive queries all registered searchers with the first topics joined into one query.
// Persistable items are written to the store in background, call Wait to block until done.
func (l *LiveFetcher) FetchLive(ctx context.Context, topics []string, perSourceLimit int) domain.LiveResult {
	query := liveQuery(topics)
	if query == "" || len(l.sources) == 0 {
		return domain.LiveResult{}
	}

	results := make([][]domain.FeedItem, len(l.sources))
	var g errgroup.Group
	for i, src := range l.sources {
		g.Go(func() error {
			results[i] = src.searcher.Search(ctx, query, perSourceLimit)
			lgr.Printf("[DEBUG] live %s returned %d items for %q", src.searcher.Name(), len(results[i]), query)
			return nil
		})
	}
	_ = g.Wait()

	var persist, scoring [][]domain.FeedItem
	for i, src := range l.sources {
		switch src.policy {
		case PolicyPersist:
			persist = append(persist, results[i])
		default:
			scoring = append(scoring, results[i])
		}
	}

	res := domain.LiveResult{Persistable: mergeItems(persist...), ScoringOnly: mergeItems(scoring...)}
	l.metrics.LiveItems(string(PolicyPersist), len(res.Persistable))
	l.metrics.LiveItems(string(PolicyScoringOnly), len(res.ScoringOnly))

	if len(res.Persistable) > 0 {
		toStore := append([]domain.FeedItem(nil), res.Persistable...)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			if _, err := l.store.UpsertItems(context.WithoutCancel(ctx), toStore); err != nil {
				lgr.Printf("[WARN] failed to store %d live items: %v", len(toStore), err)
			}
		}()
	}
	return res
}

// Wait blocks until background writes started by FetchLive are finished
func (l *LiveFetcher) Wait() {
	l.wg.Wait()
}

// liveQuery joins the first non-empty topics with spaces
func liveQuery(topics []string) string {
	parts := make([]string, 0, MaxLiveTopics)
	for _, t := range topics {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		parts = append(parts, t)
		if len(parts) == MaxLiveTopics {
			break
		}
	}
	return strings.Join(parts, " ")
}
