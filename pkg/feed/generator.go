package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/pryzm/pkg/domain"
)

// Generator renders ranked items as RSS and configured feeds as OPML
type Generator struct {
	baseURL string
}

// OPMLFeed is one subscription in OPML export
type OPMLFeed struct {
	Title string
	URL   string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateRSS creates an RSS 2.0 feed from ranked items for the given query
func (g *Generator) GenerateRSS(items []domain.FeedItem, query string) (string, error) {
	selfLink := g.baseURL + "/rss?q=" + url.QueryEscape(query)

	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "Pryzm - " + query,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Ranked news, grants and contract opportunities for %q", query),
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().UTC().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem converts a ranked item to an RSS item
func (g *Generator) convertToRSSItem(item domain.FeedItem) *RSSItem {
	desc := fmt.Sprintf("Score: %.1f | Source: %s", item.Score, item.Source)
	if len(item.Tags) > 0 {
		desc += "\nTags: " + strings.Join(item.Tags, ", ")
	}
	if summary := item.SummaryText(); summary != "" {
		desc += "\n\n" + summary
	}

	res := &RSSItem{
		Title:       fmt.Sprintf("[%.1f] %s", item.Score, item.Title),
		Link:        item.URL,
		GUID:        &RSSGUID{Value: item.ID, IsPermaLink: "false"},
		Description: desc,
		Categories:  item.Tags,
	}
	if item.PublishedAt != nil {
		res.PubDate = item.PublishedAt.UTC().Format(time.RFC1123Z)
	}
	return res
}

// GenerateOPML creates an OPML file with feed subscriptions
func (g *Generator) GenerateOPML(feeds []OPMLFeed) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(feeds))
	for _, f := range feeds {
		outlines = append(outlines, outline{Text: f.Title, Title: f.Title, Type: "rss", XMLUrl: f.URL})
	}

	doc := opml{
		Version: "2.0",
		Head:    head{Title: "Pryzm Sources", DateCreated: time.Now().UTC().Format(time.RFC1123Z)},
		Body:    body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
