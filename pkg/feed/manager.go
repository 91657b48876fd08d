package feed

import (
	"github.com/umputun/pryzm/pkg/config"
	"github.com/umputun/pryzm/pkg/domain"
)

// Manager owns provider adapters built from configuration.
// Disabled providers are left nil.
type Manager struct {
	RSS        []*RSSAdapter
	Grants     *GrantsAdapter
	Contracts  *ContractsAdapter
	NewsSearch *NewsSearchAdapter

	feeds []config.RSSSource
}

// NewManager creates adapters for all configured providers, sharing one http client
func NewManager(cfg config.SourcesConfig) *Manager {
	client := NewHTTPClient(cfg.Timeout)
	parser := NewParser(client, cfg.UserAgent)
	pacing := Pacing{CallDelay: cfg.CallDelay, BackoffDelay: cfg.BackoffDelay}

	m := &Manager{feeds: cfg.RSS}
	for _, src := range cfg.RSS {
		m.RSS = append(m.RSS, NewRSSAdapter(parser, RSSParams{
			ID: src.ID, URL: src.URL, Source: domain.ParseSource(src.Source), DefaultTags: src.DefaultTags,
		}))
	}
	if !cfg.Grants.Disabled {
		m.Grants = NewGrantsAdapter(GrantsParams{Client: client, UserAgent: cfg.UserAgent,
			Endpoint: cfg.Grants.Endpoint, Limit: cfg.Grants.Limit, Pacing: pacing})
	}
	if !cfg.Contracts.Disabled {
		m.Contracts = NewContractsAdapter(ContractsParams{Client: client, UserAgent: cfg.UserAgent,
			Endpoint: cfg.Contracts.Endpoint, APIKey: cfg.Contracts.APIKey, Limit: cfg.Contracts.Limit, Pacing: pacing})
	}
	if !cfg.NewsSearch.Disabled {
		m.NewsSearch = NewNewsSearchAdapter(parser, cfg.NewsSearch.Endpoint)
	}
	return m
}

// OPMLFeeds returns configured syndication feeds for subscription export
func (m *Manager) OPMLFeeds() []OPMLFeed {
	res := make([]OPMLFeed, 0, len(m.feeds))
	for _, f := range m.feeds {
		res = append(res, OPMLFeed{Title: f.ID, URL: f.URL})
	}
	return res
}
