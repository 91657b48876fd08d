package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/pryzm/pkg/domain"
)

// errTooManyRequests is returned when a provider answers 429
var errTooManyRequests = errors.New("too many requests")

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser
func NewParser(client *http.Client, userAgent string) *Parser {
	return &Parser{client: client, userAgent: userAgent}
}

// NewHTTPClient makes the http client shared by all adapters
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Parse fetches and parses a feed from the given URL
func (p *Parser) Parse(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setRequestHeaders(req, p.userAgent, acceptFeed)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// entryMapping describes how feed entries turn into items
type entryMapping struct {
	idPrefix    string
	source      domain.Source
	defaultTags []string
	limit       int // 0 means all entries
}

// mapEntries converts parsed entries to feed items
func mapEntries(feed *gofeed.Feed, m entryMapping) []domain.FeedItem {
	res := make([]domain.FeedItem, 0, len(feed.Items))
	for i, entry := range feed.Items {
		if m.limit > 0 && len(res) >= m.limit {
			break
		}
		link := entry.Link
		if link == "" {
			link = domain.NoLink
		}

		id := entry.GUID
		if id == "" {
			id = fmt.Sprintf("%s-%s-%d", m.idPrefix, link, i)
		}

		item := domain.FeedItem{
			ID:     id,
			Source: m.source,
			Title:  titleOrDefault(entry.Title),
			URL:    link,
			Tags:   normalizeTags(m.defaultTags, entry.Categories),
		}

		switch {
		case entry.PublishedParsed != nil:
			t := entry.PublishedParsed.UTC()
			item.PublishedAt = &t
		case entry.UpdatedParsed != nil:
			t := entry.UpdatedParsed.UTC()
			item.PublishedAt = &t
		}

		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}
		item.Summary = summaryOf(summary)

		res = append(res, item)
	}
	return res
}

// checkStatus maps non-2xx responses to errors, draining the body
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode == http.StatusTooManyRequests {
		return errTooManyRequests
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// stripURL drops the request url from transport errors, it may carry credentials
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s request: %w", ue.Op, ue.Err)
	}
	return err
}
