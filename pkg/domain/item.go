package domain

import (
	"sort"
	"time"
)

// Source identifies the provider family an item came from
type Source string

const (
	SourceNews      Source = "news"
	SourceGrants    Source = "grant-opportunity"
	SourceContracts Source = "contract-opportunity"
	SourceOther     Source = "other"
)

// Valid reports whether the source is one of the known families
func (s Source) Valid() bool {
	switch s {
	case SourceNews, SourceGrants, SourceContracts, SourceOther:
		return true
	}
	return false
}

// ParseSource converts a string to a Source, unknown values map to SourceOther
func ParseSource(s string) Source {
	if src := Source(s); src.Valid() {
		return src
	}
	return SourceOther
}

// UntitledItem and NoLink are the fallbacks adapters use when a provider omits a title or link
const (
	UntitledItem = "Untitled"
	NoLink       = "#"
)

// FeedItem is the normalized unit every adapter produces.
// Score is derived per request and is never persisted.
type FeedItem struct {
	ID          string     `json:"id"`
	Source      Source     `json:"source"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"published_at"`
	Summary     *string    `json:"summary"`
	Tags        []string   `json:"tags"`
	Score       float64    `json:"score"`
	Bookmarked  bool       `json:"is_bookmarked,omitempty"`
}

// Publishable reports whether the item can be stored or scored, i.e. it has a title and a real link
func (f FeedItem) Publishable() bool {
	return f.ID != "" && f.Title != "" && f.URL != "" && f.URL != NoLink
}

// PublishedUnix returns publish time in unix seconds, unknown dates are treated as epoch 0
func (f FeedItem) PublishedUnix() int64 {
	if f.PublishedAt == nil {
		return 0
	}
	return f.PublishedAt.Unix()
}

// SummaryText returns summary or empty string
func (f FeedItem) SummaryText() string {
	if f.Summary == nil {
		return ""
	}
	return *f.Summary
}

// DedupByID keeps the first item for every id, preserving order
func DedupByID(items []FeedItem) []FeedItem {
	seen := make(map[string]struct{}, len(items))
	res := make([]FeedItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		res = append(res, item)
	}
	return res
}

// SortByPublishedDesc sorts items newest first, items without a date go last
func SortByPublishedDesc(items []FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedUnix() > items[j].PublishedUnix()
	})
}

// StrPtr returns pointer to s, nil for empty string
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// LiveResult splits live fetch output by what the caller may do with it
type LiveResult struct {
	Persistable []FeedItem // may be stored and shown in the chronological view
	ScoringOnly []FeedItem // ranking pool only, links are not canonical
}

// FeedResponse is the result of building a feed for one request
type FeedResponse struct {
	ForYou []FeedItem `json:"for_you"`
	Latest []FeedItem `json:"latest"`
}
