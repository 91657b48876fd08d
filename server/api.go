package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/pryzm/pkg/compose"
	"github.com/umputun/pryzm/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := rest.JSON{
		"status":  "ok",
		"version": s.Version,
		"time":    time.Now().UTC(),
	}
	if s.Items != nil {
		count, err := s.Items.Count(r.Context())
		if err != nil {
			renderError(w, r, http.StatusServiceUnavailable, err, "store unavailable")
			return
		}
		status["items"] = count
	}
	renderJSON(w, r, http.StatusOK, status)
}

type feedRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

// feedHandler builds the ranked and chronological views for a query
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, http.StatusBadRequest, err, "invalid request")
		return
	}

	resp, err := s.Feeds.BuildFeed(r.Context(), req.Query, req.UserID)
	if errors.Is(err, compose.ErrInvalidQuery) {
		renderError(w, r, http.StatusBadRequest, err, "invalid query")
		return
	}
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to build feed")
		return
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// syncHandler runs a full sync, protected by bearer secret
func (s *Server) syncHandler(w http.ResponseWriter, r *http.Request) {
	secret := s.Config.GetSyncSecret()
	if secret == "" {
		renderError(w, r, http.StatusInternalServerError, errors.New("sync secret not set"), "sync secret not configured")
		return
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		renderError(w, r, http.StatusUnauthorized, errors.New("bad sync token"), "unauthorized")
		return
	}

	if err := s.Syncer.Sync(r.Context()); err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to sync feeds")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"ok": true})
}

// trendingHandler returns the most frequent recent tags
func (s *Server) trendingHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, rest.JSON{"tags": s.Trending.Trending(r.Context())})
}

type engageRequest struct {
	ItemID    string                  `json:"item_id"`
	Action    domain.EngagementAction `json:"action"`
	SessionID string                  `json:"session_id"`
	UserID    string                  `json:"user_id"`
	Metadata  map[string]any          `json:"metadata"`
}

// engageHandler validates an engagement event and stores it in background
func (s *Server) engageHandler(w http.ResponseWriter, r *http.Request) {
	var req engageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, http.StatusBadRequest, err, "invalid request")
		return
	}
	if req.ItemID == "" || !req.Action.Valid() {
		renderError(w, r, http.StatusBadRequest, errors.New("item_id and valid action required"), "invalid request")
		return
	}

	e := domain.Engagement{ItemID: req.ItemID, Action: req.Action, SessionID: req.SessionID, UserID: req.UserID,
		Metadata: req.Metadata}
	ctx := context.WithoutCancel(r.Context())
	s.bgWrites.Add(1)
	go func() {
		defer s.bgWrites.Done()
		if _, err := s.Engagements.RecordEngagement(ctx, e); err != nil {
			lgr.Printf("[WARN] failed to record %s engagement for %s: %v", e.Action, e.ItemID, err)
		}
	}()
	renderJSON(w, r, http.StatusOK, rest.JSON{"ok": true})
}

type bookmarkRequest struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
}

// listBookmarksHandler returns bookmarked ids of a user, newest first, with stored items
func (s *Server) listBookmarksHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		renderError(w, r, http.StatusBadRequest, errors.New("no user_id"), "user_id is required")
		return
	}
	ids, err := s.Bookmarks.BookmarkedIDs(r.Context(), userID)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to fetch bookmarks")
		return
	}
	items, err := s.Items.GetByIDs(r.Context(), ids)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to fetch bookmarked items")
		return
	}
	byID := make(map[string]domain.FeedItem, len(items))
	for _, item := range items {
		item.Bookmarked = true
		byID[item.ID] = item
	}
	ordered := make([]domain.FeedItem, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"bookmarks": ids, "items": ordered})
}

// addBookmarkHandler bookmarks an item by its id
func (s *Server) addBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	var req bookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, http.StatusBadRequest, err, "invalid request")
		return
	}
	if req.UserID == "" || req.ItemID == "" {
		renderError(w, r, http.StatusBadRequest, errors.New("missing ids"), "user_id and item_id are required")
		return
	}
	if err := s.Bookmarks.AddBookmark(r.Context(), req.UserID, req.ItemID); err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to add bookmark")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"ok": true})
}

// removeBookmarkHandler removes a bookmark, user id comes from query
func (s *Server) removeBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		renderError(w, r, http.StatusBadRequest, errors.New("no user_id"), "user_id is required")
		return
	}
	if err := s.Bookmarks.RemoveBookmark(r.Context(), userID, r.PathValue("item_id")); err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to remove bookmark")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"ok": true})
}

// getSettingsHandler returns stored settings of a user
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Users.Settings(r.Context(), r.PathValue("id"))
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to load settings")
		return
	}
	renderJSON(w, r, http.StatusOK, settings)
}

// saveSettingsHandler replaces settings of a user
func (s *Server) saveSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings domain.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		renderError(w, r, http.StatusBadRequest, err, "invalid settings")
		return
	}
	if rw := settings.RelevanceWeight; rw != nil && (*rw < 0 || *rw > 100) {
		renderError(w, r, http.StatusBadRequest, errors.New("relevance_weight out of range"), "relevance_weight must be 0..100")
		return
	}
	if err := s.Users.SaveSettings(r.Context(), r.PathValue("id"), settings); err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to save settings")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"ok": true})
}

// listPreferencesHandler returns saved topics of a user
func (s *Server) listPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.Users.Preferences(r.Context(), r.PathValue("id"))
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to load preferences")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"preferences": prefs})
}

// addPreferenceHandler saves a topic for a user
func (s *Server) addPreferenceHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, http.StatusBadRequest, err, "invalid request")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		renderError(w, r, http.StatusBadRequest, errors.New("empty topic"), "topic is required")
		return
	}
	if err := s.Users.AddPreference(r.Context(), r.PathValue("id"), req.Topic); err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to add preference")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"ok": true})
}

// removePreferenceHandler deletes a saved topic of a user
func (s *Server) removePreferenceHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Users.RemovePreference(r.Context(), r.PathValue("id"), r.PathValue("topic")); err != nil {
		renderError(w, r, http.StatusInternalServerError, err, "failed to remove preference")
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"ok": true})
}
