package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pryzm/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://example.com/")

	pubTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	items := []domain.FeedItem{
		{ID: "g1", Source: domain.SourceNews, Title: "Hypersonic test", URL: "https://example.com/a1",
			PublishedAt: &pubTime, Summary: domain.StrPtr("Glide body flight"), Tags: []string{"space", "defense"}, Score: 87.5},
		{ID: "g2", Source: domain.SourceGrants, Title: "Grant & funding", URL: "https://example.com/a2", Score: 42},
	}

	rss, err := generator.GenerateRSS(items, "hypersonics")
	require.NoError(t, err)

	assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, rss, `<title>Pryzm - hypersonics</title>`)
	assert.Contains(t, rss, `<link>https://example.com/</link>`)
	assert.Contains(t, rss, `href="https://example.com/rss?q=hypersonics"`)
	assert.Contains(t, rss, `<title>[87.5] Hypersonic test</title>`)
	assert.Contains(t, rss, `<guid isPermaLink="false">g1</guid>`)
	assert.Contains(t, rss, `<pubDate>Mon, 01 Jan 2024 12:00:00 +0000</pubDate>`)
	assert.Contains(t, rss, `<category>space</category>`)
	assert.Contains(t, rss, "Glide body flight")
	assert.Contains(t, rss, `<title>[42.0] Grant &amp; funding</title>`)
	assert.Equal(t, 1, strings.Count(rss, "<pubDate>"), "item without date has no pubDate")
}

func TestGenerator_GenerateOPML(t *testing.T) {
	generator := NewGenerator("https://example.com")
	opml, err := generator.GenerateOPML([]OPMLFeed{
		{Title: "defense-news", URL: "https://defense.example.com/rss"},
		{Title: "grants", URL: "https://grants.example.com/rss"},
	})
	require.NoError(t, err)

	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>Pryzm Sources</title>`)
	assert.Contains(t, opml, `xmlUrl="https://defense.example.com/rss"`)
	assert.Contains(t, opml, `text="grants"`)
}
