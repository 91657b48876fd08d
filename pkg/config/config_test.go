package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_SAM_KEY", "sam-secret")
		configContent := `
server:
  listen: ":9090"
  timeout: 45s
  sync_secret: sync-me

schedule:
  cron: "*/15 * * * *"

sources:
  call_delay: 100ms
  rss:
    - id: feed1
      url: https://example.com/feed1.xml
      default_tags: [defense, space]
    - id: grants
      source: grant-opportunity
      url: https://example.com/grants.xml
  contracts:
    api_key: ${TEST_SAM_KEY}

scoring:
  top_n: 20
  weak_threshold: 7.5
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "sync-me", cfg.Server.SyncSecret)
		assert.Equal(t, "*/15 * * * *", cfg.Schedule.Cron)
		assert.Equal(t, 100*time.Millisecond, cfg.Sources.CallDelay)
		assert.Equal(t, "sam-secret", cfg.Sources.Contracts.APIKey)

		require.Len(t, cfg.Sources.RSS, 2)
		assert.Equal(t, "feed1", cfg.Sources.RSS[0].ID)
		assert.Equal(t, "news", cfg.Sources.RSS[0].Source)
		assert.Equal(t, []string{"defense", "space"}, cfg.Sources.RSS[0].DefaultTags)
		assert.Equal(t, "grant-opportunity", cfg.Sources.RSS[1].Source)

		assert.Equal(t, 20, cfg.Scoring.TopN)
		assert.InDelta(t, 7.5, cfg.Scoring.WeakThreshold, 0.001)
		assert.Equal(t, []string{"sam-secret", "sync-me"}, cfg.Secrets())
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 30*time.Minute, cfg.Schedule.Interval)
		assert.Equal(t, 20*time.Second, cfg.Sources.Timeout)
		assert.Equal(t, 300*time.Millisecond, cfg.Sources.CallDelay)
		assert.Equal(t, 2*time.Second, cfg.Sources.BackoffDelay)
		assert.Equal(t, "https://api.grants.gov/v1/api/search2", cfg.Sources.Grants.Endpoint)
		assert.Equal(t, 50, cfg.Sources.Grants.Limit)
		assert.Equal(t, "https://api.sam.gov/prod/opportunities/v2/search", cfg.Sources.Contracts.Endpoint)
		assert.Equal(t, 75, cfg.Sources.Contracts.Limit)
		assert.Equal(t, "https://news.google.com/rss/search", cfg.Sources.NewsSearch.Endpoint)
		assert.Equal(t, 20, cfg.Live.PerSourceLimit)
		assert.Equal(t, 50, cfg.Scoring.TopN)
		assert.InDelta(t, 5.0, cfg.Scoring.WeakThreshold, 0.001)
		assert.Equal(t, 500, cfg.Scoring.StoreLimit)
		assert.Equal(t, 15*time.Minute, cfg.Cache.TrendingTTL)
		assert.Len(t, cfg.Sources.RSS, len(DefaultRSSSources))
		assert.Empty(t, cfg.Secrets())
	})

	t.Run("rss id defaults to url", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "sources:\n  rss:\n    - url: https://example.com/feed.xml\n"))
		require.NoError(t, err)
		require.Len(t, cfg.Sources.RSS, 1)
		assert.Equal(t, "https://example.com/feed.xml", cfg.Sources.RSS[0].ID)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid cron", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "schedule:\n  cron: \"not a cron\"\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "schedule.cron")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.setDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "defaults are valid", modify: func(*Config) {}},
		{name: "short server timeout", modify: func(c *Config) { c.Server.Timeout = 100 * time.Millisecond },
			errMsg: "server timeout"},
		{name: "short interval", modify: func(c *Config) { c.Schedule.Interval = 10 * time.Second },
			errMsg: "schedule.interval"},
		{name: "short interval ignored with cron", modify: func(c *Config) {
			c.Schedule.Interval = 10 * time.Second
			c.Schedule.Cron = "0 * * * *"
		}},
		{name: "rss without url", modify: func(c *Config) { c.Sources.RSS = []RSSSource{{ID: "x", Source: "news"}} },
			errMsg: "sources.rss[0].url"},
		{name: "rss with unknown source", modify: func(c *Config) {
			c.Sources.RSS = []RSSSource{{ID: "x", Source: "blog", URL: "http://example.com"}}
		}, errMsg: "unknown"},
		{name: "store limit below top n", modify: func(c *Config) { c.Scoring.StoreLimit = 10 },
			errMsg: "scoring.store_limit"},
		{name: "negative live limit", modify: func(c *Config) { c.Live.PerSourceLimit = -1 },
			errMsg: "live.per_source_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestConfig_Accessors(t *testing.T) {
	cfg := &Config{}
	cfg.Server.BaseURL = "https://pryzm.example.com"
	cfg.Server.SyncSecret = "s3cret"
	cfg.Sources.Contracts.APIKey = "key123"

	assert.Equal(t, "https://pryzm.example.com", cfg.GetBaseURL())
	assert.Equal(t, "s3cret", cfg.GetSyncSecret())
	assert.Equal(t, []string{"key123", "s3cret"}, cfg.Secrets())

	assert.Empty(t, (&Config{}).Secrets())
}
