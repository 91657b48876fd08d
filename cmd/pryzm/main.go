package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/pryzm/pkg/cache"
	"github.com/umputun/pryzm/pkg/compose"
	"github.com/umputun/pryzm/pkg/config"
	"github.com/umputun/pryzm/pkg/feed"
	"github.com/umputun/pryzm/pkg/ingest"
	"github.com/umputun/pryzm/pkg/metrics"
	"github.com/umputun/pryzm/pkg/repository"
	"github.com/umputun/pryzm/pkg/scheduler"
	"github.com/umputun/pryzm/pkg/scoring"
	"github.com/umputun/pryzm/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"pryzm.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting pryzm version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		cancel()
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	cancel()
	log.Print("[INFO] shutdown complete")
}

// run wires storage, providers, feed composition and scheduler, then serves HTTP until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if secrets := cfg.Secrets(); len(secrets) > 0 {
		setupLog(opts.Debug, opts.NoColor, secrets...)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New()
	if err := m.Register(reg); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	mgr := feed.NewManager(cfg.Sources)
	syncer := ingest.NewSyncer(repos.Item, m, bulkSources(mgr)...)

	tagCache, err := makeCache(ctx, cfg.Cache.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer func() {
		if err := tagCache.Close(); err != nil {
			log.Printf("[WARN] failed to close cache: %v", err)
		}
	}()

	params := compose.Params{
		Items:          repos.Item,
		Syncer:         syncer,
		Users:          repos.User,
		Bookmarks:      repos.Bookmark,
		Scorer:         scoring.New(scoring.WithTopN(cfg.Scoring.TopN)),
		Metrics:        m,
		StoreLimit:     cfg.Scoring.StoreLimit,
		WeakThreshold:  cfg.Scoring.WeakThreshold,
		PerSourceLimit: cfg.Live.PerSourceLimit,
	}
	var live *ingest.LiveFetcher
	if !cfg.Live.Disabled {
		live = liveFetcher(mgr, repos.Item, m)
		params.Live = live // keep interface nil when live fetch is disabled
	}
	composer := compose.New(params)

	sched, err := scheduler.NewScheduler(scheduler.Params{
		Syncer:      syncer,
		Interval:    cfg.Schedule.Interval,
		Cron:        cfg.Schedule.Cron,
		SyncOnStart: cfg.Schedule.SyncOnStart,
	})
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:      cfg,
		Feeds:       composer,
		Syncer:      sched,
		Trending:    compose.NewTrendingService(repos.Item, tagCache, cfg.Cache.TrendingTTL),
		Items:       repos.Item,
		Users:       repos.User,
		Bookmarks:   repos.Bookmark,
		Engagements: repos.Engagement,
		Sources:     mgr,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Version:     revision,
		Debug:       opts.Debug,
	})

	err = srv.Run(ctx)

	// let background writes land before the database is closed
	composer.Wait()
	if live != nil {
		live.Wait()
	}
	if err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// bulkSources collects adapters taking part in the scheduled sync
func bulkSources(mgr *feed.Manager) []ingest.Source {
	res := make([]ingest.Source, 0, len(mgr.RSS)+2)
	for _, a := range mgr.RSS {
		res = append(res, a)
	}
	if mgr.Grants != nil {
		res = append(res, mgr.Grants)
	}
	if mgr.Contracts != nil {
		res = append(res, mgr.Contracts)
	}
	return res
}

// liveFetcher registers enabled search providers, opportunity results are stored and news results are ranking-only
func liveFetcher(mgr *feed.Manager, store ingest.Store, m *metrics.Metrics) *ingest.LiveFetcher {
	lf := ingest.NewLiveFetcher(store, m)
	if mgr.Grants != nil {
		lf.Register(mgr.Grants, ingest.PolicyPersist)
	}
	if mgr.Contracts != nil {
		lf.Register(mgr.Contracts, ingest.PolicyPersist)
	}
	if mgr.NewsSearch != nil {
		lf.Register(mgr.NewsSearch, ingest.PolicyScoringOnly)
	}
	return lf
}

type closableCache interface {
	compose.Cache
	Close() error
}

// makeCache returns redis-backed cache if url is set, in-memory otherwise
func makeCache(ctx context.Context, redisURL string) (closableCache, error) {
	if redisURL == "" {
		log.Print("[DEBUG] using in-memory cache")
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(ctx, redisURL, "pryzm:")
	if err != nil {
		return nil, err
	}
	log.Print("[INFO] using redis cache")
	return rc, nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
