package server

import (
	"errors"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pryzm/pkg/compose"
)

// rssHandler serves the ranked view of a query as RSS 2.0, /rss?q=...&user_id=...
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	resp, err := s.Feeds.BuildFeed(r.Context(), query, r.URL.Query().Get("user_id"))
	if errors.Is(err, compose.ErrInvalidQuery) {
		http.Error(w, "Invalid query", http.StatusBadRequest)
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to build feed for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.generator.GenerateRSS(resp.ForYou, query)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler exports configured syndication sources as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, _ *http.Request) {
	if s.Sources == nil {
		http.Error(w, "No sources configured", http.StatusNotFound)
		return
	}
	opml, err := s.generator.GenerateOPML(s.Sources.OPMLFeeds())
	if err != nil {
		lgr.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(opml)); err != nil {
		lgr.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
