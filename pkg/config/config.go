package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/gorhill/cronexpr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/pryzm/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen     string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL    string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used in generated RSS"`
		SyncSecret string        `yaml:"sync_secret" json:"sync_secret" jsonschema:"description=Bearer secret for the sync trigger endpoint"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:pryzm.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Bulk sync schedule"`

	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=External providers"`

	Live LiveConfig `yaml:"live" json:"live" jsonschema:"description=Live targeted fetch"`

	Scoring ScoringConfig `yaml:"scoring" json:"scoring" jsonschema:"description=Ranking settings"`

	Cache CacheConfig `yaml:"cache" json:"cache" jsonschema:"description=Cache settings"`
}

// ScheduleConfig defines when bulk sync runs
type ScheduleConfig struct {
	Interval    time.Duration `yaml:"interval" json:"interval" jsonschema:"default=30m,description=Sync interval, ignored when cron is set"`
	Cron        string        `yaml:"cron" json:"cron" jsonschema:"description=Cron expression for sync runs"`
	SyncOnStart bool          `yaml:"sync_on_start" json:"sync_on_start" jsonschema:"default=false,description=Run a sync immediately on start"`
}

// RSSSource is one syndication feed
type RSSSource struct {
	ID          string   `yaml:"id" json:"id" jsonschema:"required,description=Stable feed id used in fallback item ids"`
	Source      string   `yaml:"source" json:"source" jsonschema:"enum=news,enum=grant-opportunity,enum=contract-opportunity,enum=other,description=Source family"`
	URL         string   `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	DefaultTags []string `yaml:"default_tags" json:"default_tags" jsonschema:"description=Tags attached to every item of the feed"`
}

// GrantsConfig configures the grant opportunity search provider
type GrantsConfig struct {
	Disabled bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Disable grants search"`
	Endpoint string `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.grants.gov/v1/api/search2,description=Search endpoint"`
	Limit    int    `yaml:"limit" json:"limit" jsonschema:"default=50,description=Rows for the general strategy"`
}

// ContractsConfig configures the contract opportunity search provider
type ContractsConfig struct {
	Disabled bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Disable contracts search"`
	Endpoint string `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.sam.gov/prod/opportunities/v2/search,description=Search endpoint"`
	APIKey   string `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Limit    int    `yaml:"limit" json:"limit" jsonschema:"default=75,description=Limit for the general strategy"`
}

// NewsSearchConfig configures the news aggregator used by live fetch
type NewsSearchConfig struct {
	Disabled bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Disable news search"`
	Endpoint string `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://news.google.com/rss/search,description=RSS search endpoint"`
}

// SourcesConfig holds all provider settings
type SourcesConfig struct {
	Timeout      time.Duration    `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Per request timeout"`
	UserAgent    string           `yaml:"user_agent" json:"user_agent" jsonschema:"default=Pryzm/1.0,description=User agent for provider requests"`
	CallDelay    time.Duration    `yaml:"call_delay" json:"call_delay" jsonschema:"default=300ms,description=Delay between sequential calls to one provider"`
	BackoffDelay time.Duration    `yaml:"backoff_delay" json:"backoff_delay" jsonschema:"default=2s,description=Extra delay after a too many requests response"`
	RSS          []RSSSource      `yaml:"rss" json:"rss" jsonschema:"description=Syndication feeds"`
	Grants       GrantsConfig     `yaml:"grants" json:"grants"`
	Contracts    ContractsConfig  `yaml:"contracts" json:"contracts"`
	NewsSearch   NewsSearchConfig `yaml:"news_search" json:"news_search"`
}

// LiveConfig configures per-request targeted fetching
type LiveConfig struct {
	Disabled       bool `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Disable live fetch"`
	PerSourceLimit int  `yaml:"per_source_limit" json:"per_source_limit" jsonschema:"default=20,description=Items requested from each provider"`
}

// ScoringConfig configures ranking
type ScoringConfig struct {
	TopN          int     `yaml:"top_n" json:"top_n" jsonschema:"default=50,description=Size of the ranked result window"`
	WeakThreshold float64 `yaml:"weak_threshold" json:"weak_threshold" jsonschema:"default=5,description=Top score at or below which a re-sync is attempted"`
	StoreLimit    int     `yaml:"store_limit" json:"store_limit" jsonschema:"default=500,description=Stored items loaded per request"`
}

// CacheConfig configures the cache collaborator
type CacheConfig struct {
	RedisURL    string        `yaml:"redis_url" json:"redis_url" jsonschema:"description=Redis URL, in-memory cache when empty"`
	TrendingTTL time.Duration `yaml:"trending_ttl" json:"trending_ttl" jsonschema:"default=15m,description=Trending tags cache TTL"`
}

// DefaultRSSSources is the curated feed list used when none configured
var DefaultRSSSources = []RSSSource{
	{ID: "defense-news-home", Source: string(domain.SourceNews), URL: "https://www.defensenews.com/arc/outboundfeeds/rss/?outputType=xml",
		DefaultTags: []string{"defense", "industry", "policy"}},
	{ID: "defense-news-space", Source: string(domain.SourceNews), URL: "https://www.defensenews.com/arc/outboundfeeds/rss/category/space/?outputType=xml",
		DefaultTags: []string{"space", "satellites", "domain-awareness"}},
	{ID: "defense-news-unmanned", Source: string(domain.SourceNews), URL: "https://www.defensenews.com/arc/outboundfeeds/rss/category/unmanned/?outputType=xml",
		DefaultTags: []string{"drones", "autonomy", "unmanned"}},
	{ID: "defense-news-industry", Source: string(domain.SourceNews), URL: "https://www.defensenews.com/arc/outboundfeeds/rss/category/industry/?outputType=xml",
		DefaultTags: []string{"industry", "contracts", "acquisition"}},
	{ID: "dod-releases", Source: string(domain.SourceNews), URL: "https://www.defense.gov/DesktopModules/ArticleCS/RSS.ashx?ContentType=1",
		DefaultTags: []string{"dod", "press-release", "policy"}},
	{ID: "grants-new-opportunities", Source: string(domain.SourceGrants), URL: "https://www.grants.gov/rss/GG_NewOppByCategory.xml",
		DefaultTags: []string{"grant", "funding", "federal"}},
	{ID: "grants-new-opportunities-agency", Source: string(domain.SourceGrants), URL: "https://www.grants.gov/rss/GG_NewOppByAgency.xml",
		DefaultTags: []string{"grant", "agency", "federal"}},
	{ID: "grants-modified-opportunities-agency", Source: string(domain.SourceGrants), URL: "https://www.grants.gov/rss/GG_OppModByAgency.xml",
		DefaultTags: []string{"grant", "modification", "federal"}},
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// setDefaults fills every unset field, defaults are resolved here and nowhere else
func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:pryzm.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if c.Schedule.Interval == 0 {
		c.Schedule.Interval = 30 * time.Minute
	}

	// sources
	if c.Sources.Timeout == 0 {
		c.Sources.Timeout = 20 * time.Second
	}
	if c.Sources.UserAgent == "" {
		c.Sources.UserAgent = "Pryzm/1.0"
	}
	if c.Sources.CallDelay == 0 {
		c.Sources.CallDelay = 300 * time.Millisecond
	}
	if c.Sources.BackoffDelay == 0 {
		c.Sources.BackoffDelay = 2 * time.Second
	}
	if len(c.Sources.RSS) == 0 {
		c.Sources.RSS = append([]RSSSource(nil), DefaultRSSSources...)
	}
	for i := range c.Sources.RSS {
		if c.Sources.RSS[i].Source == "" {
			c.Sources.RSS[i].Source = string(domain.SourceNews)
		}
		if c.Sources.RSS[i].ID == "" {
			c.Sources.RSS[i].ID = c.Sources.RSS[i].URL // id defaults to URL
		}
	}
	if c.Sources.Grants.Endpoint == "" {
		c.Sources.Grants.Endpoint = "https://api.grants.gov/v1/api/search2"
	}
	if c.Sources.Grants.Limit == 0 {
		c.Sources.Grants.Limit = 50
	}
	if c.Sources.Contracts.Endpoint == "" {
		c.Sources.Contracts.Endpoint = "https://api.sam.gov/prod/opportunities/v2/search"
	}
	if c.Sources.Contracts.Limit == 0 {
		c.Sources.Contracts.Limit = 75
	}
	if c.Sources.NewsSearch.Endpoint == "" {
		c.Sources.NewsSearch.Endpoint = "https://news.google.com/rss/search"
	}

	// live fetch
	if c.Live.PerSourceLimit == 0 {
		c.Live.PerSourceLimit = 20
	}

	// scoring
	if c.Scoring.TopN == 0 {
		c.Scoring.TopN = 50
	}
	if c.Scoring.WeakThreshold == 0 {
		c.Scoring.WeakThreshold = 5
	}
	if c.Scoring.StoreLimit == 0 {
		c.Scoring.StoreLimit = 500
	}

	// cache
	if c.Cache.TrendingTTL == 0 {
		c.Cache.TrendingTTL = 15 * time.Minute
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Schedule.Cron != "" {
		if _, err := cronexpr.Parse(cfg.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron is invalid: %w", err)
		}
	} else if cfg.Schedule.Interval < time.Minute {
		return fmt.Errorf("schedule.interval must be at least 1 minute")
	}

	for i, src := range cfg.Sources.RSS {
		if src.URL == "" {
			return fmt.Errorf("sources.rss[%d].url is required", i)
		}
		if !domain.Source(src.Source).Valid() {
			return fmt.Errorf("sources.rss[%d].source %q is unknown", i, src.Source)
		}
	}

	if cfg.Live.PerSourceLimit < 1 {
		return fmt.Errorf("live.per_source_limit must be at least 1")
	}
	if cfg.Scoring.TopN < 1 {
		return fmt.Errorf("scoring.top_n must be at least 1")
	}
	if cfg.Scoring.StoreLimit < cfg.Scoring.TopN {
		return fmt.Errorf("scoring.store_limit must not be less than scoring.top_n")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns public base URL used in generated feeds
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetSyncSecret returns the bearer secret of the sync endpoint, empty if not configured
func (c *Config) GetSyncSecret() string {
	return c.Server.SyncSecret
}

// Secrets returns configured credentials for log masking
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.Sources.Contracts.APIKey, c.Server.SyncSecret} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
