package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		cfg := &Config{}
		cfg.setDefaults()
		require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))
	})

	t.Run("missing required field", func(t *testing.T) {
		cfg := &Config{}
		cfg.setDefaults()
		cfg.Server.Listen = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.listen is required")
	})
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "no timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, errMsg: "server.timeout"},
		{name: "grants without endpoint", modify: func(c *Config) { c.Sources.Grants.Endpoint = "" },
			errMsg: "sources.grants.endpoint"},
		{name: "disabled grants without endpoint", modify: func(c *Config) {
			c.Sources.Grants.Endpoint = ""
			c.Sources.Grants.Disabled = true
		}},
		{name: "contracts without endpoint", modify: func(c *Config) { c.Sources.Contracts.Endpoint = "" },
			errMsg: "sources.contracts.endpoint"},
		{name: "news search without endpoint", modify: func(c *Config) { c.Sources.NewsSearch.Endpoint = "" },
			errMsg: "sources.news_search.endpoint"},
		{name: "rss without id", modify: func(c *Config) { c.Sources.RSS = []RSSSource{{URL: "http://example.com"}} },
			errMsg: "sources.rss[0].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.setDefaults()
			tt.modify(cfg)
			err := validateRequiredFields(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := schema.MarshalJSON()
	require.NoError(t, err)

	schemaStr := string(data)
	assert.Contains(t, schemaStr, "Config")
	assert.Contains(t, schemaStr, "server")
	assert.Contains(t, schemaStr, "sources")
	assert.Contains(t, schemaStr, "RSSSource")
}
