// Package server exposes the feed core over HTTP: feed building, sync trigger, trending tags,
// engagement tracking, bookmarks, user settings, RSS/OPML output and prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/pryzm/pkg/domain"
	"github.com/umputun/pryzm/pkg/feed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feed_builder.go -pkg mocks -skip-ensure -fmt goimports . FeedBuilder
//go:generate moq -out mocks/syncer.go -pkg mocks -skip-ensure -fmt goimports . Syncer
//go:generate moq -out mocks/trending.go -pkg mocks -skip-ensure -fmt goimports . TrendingProvider
//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/user_store.go -pkg mocks -skip-ensure -fmt goimports . UserStore
//go:generate moq -out mocks/bookmark_store.go -pkg mocks -skip-ensure -fmt goimports . BookmarkStore
//go:generate moq -out mocks/engagement_store.go -pkg mocks -skip-ensure -fmt goimports . EngagementStore
//go:generate moq -out mocks/sources.go -pkg mocks -skip-ensure -fmt goimports . SourceLister

// Server represents HTTP server instance
type Server struct {
	Params
	generator *feed.Generator

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	bgWrites   sync.WaitGroup
}

// Params holds server dependencies, Sources and Metrics are optional
type Params struct {
	Config      ConfigProvider
	Feeds       FeedBuilder
	Syncer      Syncer
	Trending    TrendingProvider
	Items       ItemStore
	Users       UserStore
	Bookmarks   BookmarkStore
	Engagements EngagementStore
	Sources     SourceLister
	Metrics     http.Handler
	Version     string
	Debug       bool
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
	GetSyncSecret() string
}

// FeedBuilder builds per-request feeds
type FeedBuilder interface {
	BuildFeed(ctx context.Context, query, userID string) (domain.FeedResponse, error)
}

// Syncer runs a full bulk sync
type Syncer interface {
	Sync(ctx context.Context) error
}

// TrendingProvider returns trending tags
type TrendingProvider interface {
	Trending(ctx context.Context) []string
}

// ItemStore gives access to stored items
type ItemStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.FeedItem, error)
	Count(ctx context.Context) (int, error)
}

// UserStore manages preferences and settings
type UserStore interface {
	Preferences(ctx context.Context, userID string) ([]string, error)
	AddPreference(ctx context.Context, userID, topic string) error
	RemovePreference(ctx context.Context, userID, topic string) error
	Settings(ctx context.Context, userID string) (domain.UserSettings, error)
	SaveSettings(ctx context.Context, userID string, s domain.UserSettings) error
}

// BookmarkStore manages bookmarks keyed by item id
type BookmarkStore interface {
	AddBookmark(ctx context.Context, userID, itemID string) error
	RemoveBookmark(ctx context.Context, userID, itemID string) error
	BookmarkedIDs(ctx context.Context, userID string) ([]string, error)
}

// EngagementStore records engagement events
type EngagementStore interface {
	RecordEngagement(ctx context.Context, e domain.Engagement) (string, error)
}

// SourceLister lists configured syndication feeds for OPML export
type SourceLister interface {
	OPMLFeeds() []feed.OPMLFeed
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		Params:    p,
		generator: feed.NewGenerator(p.Config.GetBaseURL()),
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.Config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	s.bgWrites.Wait()
	return nil
}

// Wait blocks until background writes started by handlers are finished
func (s *Server) Wait() {
	s.bgWrites.Wait()
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("pryzm", "umputun", s.Version))
	s.router.Use(rest.Ping)

	if s.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /feed", s.feedHandler)
		r.HandleFunc("GET /sync", s.syncHandler)
		r.HandleFunc("GET /trending", s.trendingHandler)
		r.HandleFunc("POST /engage", s.engageHandler)

		r.HandleFunc("GET /bookmarks", s.listBookmarksHandler)
		r.HandleFunc("POST /bookmarks", s.addBookmarkHandler)
		r.HandleFunc("DELETE /bookmarks/{item_id}", s.removeBookmarkHandler)

		r.HandleFunc("GET /users/{id}/settings", s.getSettingsHandler)
		r.HandleFunc("PUT /users/{id}/settings", s.saveSettingsHandler)
		r.HandleFunc("GET /users/{id}/preferences", s.listPreferencesHandler)
		r.HandleFunc("POST /users/{id}/preferences", s.addPreferenceHandler)
		r.HandleFunc("DELETE /users/{id}/preferences/{topic}", s.removePreferenceHandler)
	})

	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)
	if s.Metrics != nil {
		s.router.Handle("GET /metrics", s.Metrics)
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError logs the error with request details and sends {"error": msg}
func renderError(w http.ResponseWriter, r *http.Request, code int, err error, msg string) {
	rest.SendErrorJSON(w, r, lgr.Default(), code, err, msg)
}
