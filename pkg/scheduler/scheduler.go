// Package scheduler triggers periodic bulk syncs, either every fixed interval or
// at the times of a cron expression.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/gorhill/cronexpr"
)

//go:generate moq -out mocks/syncer.go -pkg mocks -skip-ensure -fmt goimports . Syncer

// Syncer runs one bulk sync pass
type Syncer interface {
	Sync(ctx context.Context) error
}

// Params configures Scheduler. Cron takes precedence over Interval when set.
type Params struct {
	Syncer      Syncer
	Interval    time.Duration
	Cron        string
	SyncOnStart bool
}

// Scheduler runs syncs in background until stopped
type Scheduler struct {
	syncer      Syncer
	interval    time.Duration
	cron        *cronexpr.Expression
	syncOnStart bool
	now         func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler makes a scheduler, an invalid cron expression is an error
func NewScheduler(p Params) (*Scheduler, error) {
	s := &Scheduler{syncer: p.Syncer, interval: p.Interval, syncOnStart: p.SyncOnStart, now: time.Now}
	if p.Cron != "" {
		expr, err := cronexpr.Parse(p.Cron)
		if err != nil {
			return nil, fmt.Errorf("parse cron %q: %w", p.Cron, err)
		}
		s.cron = expr
	}
	if s.cron == nil && s.interval <= 0 {
		return nil, fmt.Errorf("either interval or cron is required")
	}
	return s, nil
}

// Start begins the sync worker
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.syncWorker(ctx)

	if s.cron != nil {
		lgr.Printf("[INFO] scheduler started, next sync at %s", s.cron.Next(s.now()).Format(time.RFC3339))
		return
	}
	lgr.Printf("[INFO] scheduler started with sync interval %v", s.interval)
}

// Stop cancels the worker and waits for it. A sync in progress is not interrupted.
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Sync runs an out-of-schedule sync in the caller's goroutine
func (s *Scheduler) Sync(ctx context.Context) error {
	st := time.Now()
	if err := s.syncer.Sync(ctx); err != nil {
		return fmt.Errorf("manual sync: %w", err)
	}
	lgr.Printf("[INFO] manual sync completed in %v", time.Since(st))
	return nil
}

func (s *Scheduler) syncWorker(ctx context.Context) {
	defer s.wg.Done()

	if s.syncOnStart {
		s.runSync(ctx)
	}

	for {
		timer := time.NewTimer(s.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runSync(ctx)
		}
	}
}

// nextDelay is the time until the next cron tick, or the fixed interval
func (s *Scheduler) nextDelay() time.Duration {
	if s.cron == nil {
		return s.interval
	}
	now := s.now()
	next := s.cron.Next(now)
	if next.IsZero() { // expression never fires again
		return 24 * time.Hour
	}
	return next.Sub(now)
}

func (s *Scheduler) runSync(ctx context.Context) {
	st := time.Now()
	if err := s.syncer.Sync(ctx); err != nil {
		lgr.Printf("[ERROR] scheduled sync failed: %v", err)
		return
	}
	lgr.Printf("[DEBUG] scheduled sync completed in %v", time.Since(st))
}
