package feed

import (
	"context"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pryzm/pkg/domain"
)

// RSSAdapter fetches one configured syndication feed
type RSSAdapter struct {
	parser      *Parser
	id          string
	url         string
	source      domain.Source
	defaultTags []string
}

// RSSParams defines one syndication feed
type RSSParams struct {
	ID          string
	URL         string
	Source      domain.Source
	DefaultTags []string
}

// NewRSSAdapter makes adapter for a single feed
func NewRSSAdapter(parser *Parser, p RSSParams) *RSSAdapter {
	return &RSSAdapter{parser: parser, id: p.ID, url: p.URL, source: p.Source, defaultTags: p.DefaultTags}
}

// Name returns feed id
func (a *RSSAdapter) Name() string { return a.id }

// Fetch retrieves all feed entries, fails open
func (a *RSSAdapter) Fetch(ctx context.Context) []domain.FeedItem {
	feed, err := a.parser.Parse(ctx, a.url)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch feed %s: %v", a.id, err)
		return []domain.FeedItem{}
	}
	items := mapEntries(feed, entryMapping{idPrefix: a.id, source: a.source, defaultTags: a.defaultTags})
	lgr.Printf("[DEBUG] feed %s returned %d items", a.id, len(items))
	return items
}
