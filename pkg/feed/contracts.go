package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pryzm/pkg/domain"
)

const contractsDetailURL = "https://sam.gov/opp/%s/view"

// ContractsAdapter searches federal contract opportunities, requires an API key
type ContractsAdapter struct {
	api      *jsonClient
	endpoint string
	apiKey   string
	limit    int
	runner   *strategyRunner
	now      func() time.Time
}

// ContractsParams defines contracts adapter settings
type ContractsParams struct {
	Client    *http.Client
	UserAgent string
	Endpoint  string
	APIKey    string
	Limit     int // limit for the general strategy
	Pacing    Pacing
}

// NewContractsAdapter makes contracts adapter
func NewContractsAdapter(p ContractsParams) *ContractsAdapter {
	return &ContractsAdapter{
		api:      &jsonClient{client: p.Client, userAgent: p.UserAgent},
		endpoint: p.Endpoint,
		apiKey:   p.APIKey,
		limit:    p.Limit,
		runner:   newStrategyRunner("contracts", p.Pacing),
		now:      time.Now,
	}
}

type contractsQuery struct {
	days    int
	limit   int
	keyword string
}

type contractOpportunity struct {
	NoticeID           string `json:"noticeId"`
	Title              string `json:"title"`
	SolicitationNumber string `json:"solicitationNumber"`
	Department         string `json:"department"`
	FullParentPath     string `json:"fullParentPathName"`
	PostedDate         string `json:"postedDate"`
	Type               string `json:"type"`
	ClassificationCode string `json:"classificationCode"`
	Description        string `json:"description"`
	UILink             string `json:"uiLink"`
}

type contractsResponse struct {
	TotalRecords      int                   `json:"totalRecords"`
	OpportunitiesData []contractOpportunity `json:"opportunitiesData"`
}

// Name returns adapter name
func (a *ContractsAdapter) Name() string { return "contracts" }

// Fetch runs bulk strategies: general, defense and small business innovation
func (a *ContractsAdapter) Fetch(ctx context.Context) []domain.FeedItem {
	if a.apiKey == "" {
		lgr.Printf("[WARN] contracts api key is not set, skipping contracts fetch")
		return []domain.FeedItem{}
	}
	items := a.runner.runAll(ctx, []strategy{
		{name: "general", call: a.searchCall(contractsQuery{days: 30, limit: a.limit})},
		{name: "defense", call: a.searchCall(contractsQuery{days: 45, limit: 50, keyword: "Department Defense"})},
		{name: "sbir", call: a.searchCall(contractsQuery{days: 60, limit: 25, keyword: "SBIR STTR"})},
	})
	lgr.Printf("[INFO] contracts fetched %d items", len(items))
	return items
}

// Search runs a single keyword query over the last 30 days, fails open
func (a *ContractsAdapter) Search(ctx context.Context, query string, limit int) []domain.FeedItem {
	if a.apiKey == "" {
		lgr.Printf("[DEBUG] contracts api key is not set, skipping contracts search")
		return []domain.FeedItem{}
	}
	items, err := a.runner.run(ctx, strategy{name: "keyword",
		call: a.searchCall(contractsQuery{days: 30, limit: limit, keyword: strings.TrimSpace(query)})})
	if err != nil {
		lgr.Printf("[WARN] contracts search for %q failed: %v", query, err)
		return []domain.FeedItem{}
	}
	return domain.DedupByID(items)
}

func (a *ContractsAdapter) searchCall(q contractsQuery) func(ctx context.Context) ([]domain.FeedItem, error) {
	return func(ctx context.Context) ([]domain.FeedItem, error) {
		now := a.now()
		params := url.Values{}
		params.Set("api_key", a.apiKey)
		params.Set("limit", strconv.Itoa(q.limit))
		params.Set("postedFrom", usDate(now.AddDate(0, 0, -q.days)))
		params.Set("postedTo", usDate(now))
		if q.keyword != "" {
			params.Set("qterms", q.keyword)
		}

		var resp contractsResponse
		if err := a.api.do(ctx, http.MethodGet, a.endpoint+"?"+params.Encode(), nil, &resp); err != nil {
			return nil, fmt.Errorf("contracts search: %w", err)
		}
		res := make([]domain.FeedItem, 0, len(resp.OpportunitiesData))
		for i, opp := range resp.OpportunitiesData {
			res = append(res, opp.toItem(i))
		}
		return res, nil
	}
}

func (o contractOpportunity) toItem(index int) domain.FeedItem {
	id := o.NoticeID
	link := domain.NoLink
	if id != "" {
		link = fmt.Sprintf(contractsDetailURL, id)
	} else {
		id = fmt.Sprintf("sam-%s-%d", o.SolicitationNumber, index)
	}

	department := o.Department
	if department == "" && o.FullParentPath != "" {
		department = strings.TrimSpace(strings.Split(o.FullParentPath, ".")[0])
	}

	summary := o.Description
	// the provider may return a link to the description instead of text
	if strings.HasPrefix(summary, "http://") || strings.HasPrefix(summary, "https://") {
		summary = ""
	}
	if strings.TrimSpace(summary) == "" {
		summary = "Contract opportunity from " + department
	}

	return domain.FeedItem{
		ID:          id,
		Source:      domain.SourceContracts,
		Title:       titleOrDefault(o.Title),
		URL:         link,
		PublishedAt: ToISODate(o.PostedDate),
		Summary:     summaryOf(summary),
		Tags:        normalizeTags([]string{"contract", "procurement", department, o.ClassificationCode}),
	}
}
