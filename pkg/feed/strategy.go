package feed

import (
	"context"
	"errors"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/time/rate"

	"github.com/umputun/pryzm/pkg/domain"
)

// strategy is one query shape against a provider
type strategy struct {
	name string
	call func(ctx context.Context) ([]domain.FeedItem, error)
}

// Pacing controls the request rate of one provider
type Pacing struct {
	CallDelay    time.Duration // minimal spacing between calls
	BackoffDelay time.Duration // extra delay before the single retry after 429
}

// strategyRunner runs strategies of one provider sequentially, paced by a limiter
type strategyRunner struct {
	provider string
	limiter  *rate.Limiter
	backoff  time.Duration
}

func newStrategyRunner(provider string, p Pacing) *strategyRunner {
	limit := rate.Inf
	if p.CallDelay > 0 {
		limit = rate.Every(p.CallDelay)
	}
	return &strategyRunner{provider: provider, limiter: rate.NewLimiter(limit, 1), backoff: p.BackoffDelay}
}

// runAll executes all strategies, skipping failed ones, and dedups the combined output
func (r *strategyRunner) runAll(ctx context.Context, strategies []strategy) []domain.FeedItem {
	var all []domain.FeedItem
	for _, s := range strategies {
		items, err := r.run(ctx, s)
		if err != nil {
			lgr.Printf("[WARN] %s strategy %q failed: %v", r.provider, s.name, err)
			continue
		}
		lgr.Printf("[DEBUG] %s strategy %q returned %d items", r.provider, s.name, len(items))
		all = append(all, items...)
	}
	return domain.DedupByID(all)
}

// run executes one strategy; a 429 response gets one retry after the backoff delay
func (r *strategyRunner) run(ctx context.Context, s strategy) ([]domain.FeedItem, error) {
	var items []domain.FeedItem
	var callErr error
	rpt := repeater.NewFixed(2, r.backoff)
	err := rpt.Do(ctx, func() error {
		if err := r.limiter.Wait(ctx); err != nil {
			callErr = err
			return nil
		}
		res, err := s.call(ctx)
		if errors.Is(err, errTooManyRequests) {
			lgr.Printf("[WARN] %s strategy %q rate limited, backing off %v", r.provider, s.name, r.backoff)
			return err
		}
		items, callErr = res, err
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, callErr
}
