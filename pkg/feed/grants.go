package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pryzm/pkg/domain"
)

const grantsDetailURL = "https://www.grants.gov/search-results-detail/"

// GrantsAdapter searches federal grant opportunities
type GrantsAdapter struct {
	api      *jsonClient
	endpoint string
	limit    int
	runner   *strategyRunner
}

// GrantsParams defines grants adapter settings
type GrantsParams struct {
	Client    *http.Client
	UserAgent string
	Endpoint  string
	Limit     int // rows for the general strategy
	Pacing    Pacing
}

// NewGrantsAdapter makes grants adapter
func NewGrantsAdapter(p GrantsParams) *GrantsAdapter {
	return &GrantsAdapter{
		api:      &jsonClient{client: p.Client, userAgent: p.UserAgent},
		endpoint: p.Endpoint,
		limit:    p.Limit,
		runner:   newStrategyRunner("grants", p.Pacing),
	}
}

type grantsRequest struct {
	Rows       int    `json:"rows"`
	Keyword    string `json:"keyword,omitempty"`
	OppStatus  string `json:"oppStatuses"`
	SortBy     string `json:"sortBy"`
	StartIndex int    `json:"startRecordNum"`
}

type grantsOpportunity struct {
	ID         flexString `json:"id"`
	Number     string     `json:"number"`
	Title      string     `json:"title"`
	AgencyCode string     `json:"agencyCode"`
	Agency     string     `json:"agency"`
	OpenDate   string     `json:"openDate"`
	CloseDate  string     `json:"closeDate"`
	DocType    string     `json:"docType"`
	CFDAList   []string   `json:"cfdaList"`
	Synopsis   *struct {
		Description string `json:"synopsisDesc"`
	} `json:"synopsis"`
}

type grantsResponse struct {
	OppHits []grantsOpportunity `json:"oppHits"`
	Data    *struct {
		OppHits []grantsOpportunity `json:"oppHits"`
	} `json:"data"`
}

func (r grantsResponse) hits() []grantsOpportunity {
	if len(r.OppHits) > 0 {
		return r.OppHits
	}
	if r.Data != nil {
		return r.Data.OppHits
	}
	return nil
}

// Name returns adapter name
func (a *GrantsAdapter) Name() string { return "grants" }

// Fetch runs bulk strategies: general recent, defense and small business innovation
func (a *GrantsAdapter) Fetch(ctx context.Context) []domain.FeedItem {
	items := a.runner.runAll(ctx, []strategy{
		{name: "general", call: a.searchCall(grantsRequest{Rows: a.limit})},
		{name: "defense", call: a.searchCall(grantsRequest{Rows: 50, Keyword: "defense DOD department"})},
		{name: "sbir", call: a.searchCall(grantsRequest{Rows: 50, Keyword: "SBIR STTR"})},
	})
	lgr.Printf("[INFO] grants fetched %d items", len(items))
	return items
}

// Search runs a single keyword query, fails open
func (a *GrantsAdapter) Search(ctx context.Context, query string, limit int) []domain.FeedItem {
	items, err := a.runner.run(ctx, strategy{name: "keyword",
		call: a.searchCall(grantsRequest{Rows: limit, Keyword: strings.TrimSpace(query)})})
	if err != nil {
		lgr.Printf("[WARN] grants search for %q failed: %v", query, err)
		return []domain.FeedItem{}
	}
	return domain.DedupByID(items)
}

func (a *GrantsAdapter) searchCall(req grantsRequest) func(ctx context.Context) ([]domain.FeedItem, error) {
	req.OppStatus = "posted|forecasted"
	req.SortBy = "openDate|desc"
	return func(ctx context.Context) ([]domain.FeedItem, error) {
		var resp grantsResponse
		if err := a.api.do(ctx, http.MethodPost, a.endpoint, req, &resp); err != nil {
			return nil, fmt.Errorf("grants search: %w", err)
		}
		hits := resp.hits()
		res := make([]domain.FeedItem, 0, len(hits))
		for i, opp := range hits {
			res = append(res, opp.toItem(i))
		}
		return res, nil
	}
}

func (o grantsOpportunity) toItem(index int) domain.FeedItem {
	id := string(o.ID)
	link := domain.NoLink
	if id != "" {
		link = grantsDetailURL + id
	} else {
		id = fmt.Sprintf("grants-%s-%d", o.Number, index)
	}

	agency := o.Agency
	if agency == "" {
		agency = o.AgencyCode
	}

	summary := ""
	if o.Synopsis != nil {
		summary = o.Synopsis.Description
	}
	if strings.TrimSpace(summary) == "" {
		summary = fmt.Sprintf("%s funding opportunity.", strings.TrimSpace(agency))
		if len(o.CFDAList) > 0 {
			summary += " CFDA: " + strings.Join(o.CFDAList, ", ")
		}
	}

	tags := []string{"grant", "funding", agency}
	for _, c := range o.CFDAList {
		tags = append(tags, "cfda-"+c)
	}

	return domain.FeedItem{
		ID:          id,
		Source:      domain.SourceGrants,
		Title:       titleOrDefault(o.Title),
		URL:         link,
		PublishedAt: ToISODate(o.OpenDate),
		Summary:     summaryOf(summary),
		Tags:        normalizeTags(tags),
	}
}
