package feed

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pryzm/pkg/domain"
)

// NewsSearchAdapter queries a news aggregator RSS search.
// Its links are aggregator redirects, so results are for ranking only and never stored.
type NewsSearchAdapter struct {
	parser   *Parser
	endpoint string
}

// NewNewsSearchAdapter makes news search adapter
func NewNewsSearchAdapter(parser *Parser, endpoint string) *NewsSearchAdapter {
	return &NewsSearchAdapter{parser: parser, endpoint: endpoint}
}

// Name returns adapter name
func (a *NewsSearchAdapter) Name() string { return "news-search" }

// Search returns up to limit news items for the query, fails open
func (a *NewsSearchAdapter) Search(ctx context.Context, query string, limit int) []domain.FeedItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.FeedItem{}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")

	sep := "?"
	if strings.Contains(a.endpoint, "?") {
		sep = "&"
	}
	feed, err := a.parser.Parse(ctx, a.endpoint+sep+params.Encode())
	if err != nil {
		lgr.Printf("[WARN] news search for %q failed: %v", query, err)
		return []domain.FeedItem{}
	}
	return mapEntries(feed, entryMapping{idPrefix: "news-search", source: domain.SourceNews,
		defaultTags: []string{"news"}, limit: limit})
}
