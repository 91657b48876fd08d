// Package ingest pulls items from source adapters into the store.
// Syncer runs a full bulk pass over every feed source, LiveFetcher runs targeted
// searches for a request and splits results by what may be persisted.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/pryzm/pkg/domain"
	"github.com/umputun/pryzm/pkg/metrics"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Source is a bulk adapter, Fetch never fails and returns nothing on error
type Source interface {
	Name() string
	Fetch(ctx context.Context) []domain.FeedItem
}

// Store persists items keyed by id
type Store interface {
	UpsertItems(ctx context.Context, items []domain.FeedItem) (int, error)
}

// Syncer fans out to all bulk sources and upserts the merged result
type Syncer struct {
	store   Store
	sources []Source
	metrics *metrics.Metrics
}

// NewSyncer makes a syncer for the given sources, metrics may be nil
func NewSyncer(store Store, m *metrics.Metrics, sources ...Source) *Syncer {
	return &Syncer{store: store, sources: sources, metrics: m}
}

// Sync runs one bulk pass. It is detached from caller cancellation so a started pass always completes.
// Items without a real link or title are dropped, duplicates keep the item from the earlier source.
func (s *Syncer) Sync(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	st := time.Now()

	results := make([][]domain.FeedItem, len(s.sources))
	var g errgroup.Group
	for i, src := range s.sources {
		g.Go(func() error {
			results[i] = src.Fetch(ctx)
			s.metrics.AdapterItems(src.Name(), len(results[i]))
			lgr.Printf("[DEBUG] source %s returned %d items", src.Name(), len(results[i]))
			return nil
		})
	}
	_ = g.Wait() // fetchers fail open, nothing to report

	items := mergeItems(results...)
	if len(items) == 0 {
		lgr.Printf("[INFO] sync finished, no items from %d sources", len(s.sources))
		s.metrics.SyncDone(metrics.StatusEmpty, time.Since(st), 0)
		return nil
	}

	n, err := s.store.UpsertItems(ctx, items)
	if err != nil {
		s.metrics.SyncDone(metrics.StatusFailure, time.Since(st), 0)
		return fmt.Errorf("upsert %d items: %w", len(items), err)
	}
	s.metrics.SyncDone(metrics.StatusSuccess, time.Since(st), n)
	lgr.Printf("[INFO] sync finished, %d items upserted from %d sources in %v", n, len(s.sources), time.Since(st))
	return nil
}

// mergeItems flattens groups in order, keeping publishable items only, first id wins
func mergeItems(groups ...[]domain.FeedItem) []domain.FeedItem {
	var res []domain.FeedItem
	for _, g := range groups {
		for _, item := range g {
			if item.Publishable() {
				res = append(res, item)
			}
		}
	}
	return domain.DedupByID(res)
}
