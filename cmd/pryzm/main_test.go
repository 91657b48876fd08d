package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pryzm/pkg/config"
	"github.com/umputun/pryzm/pkg/feed"
	"github.com/umputun/pryzm/pkg/metrics"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "broken yaml", content: "invalid: yaml: content: ["},
		{name: "interval too short", content: "schedule:\n  interval: 10s\n"},
		{name: "bad cron", content: "schedule:\n  cron: \"not a cron\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(cfgFile, []byte(tt.content), 0o600))

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			err := run(ctx, Opts{Config: cfgFile})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to load config")
		})
	}
}

func TestRun_ServerStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	port := freePort(t)
	cfgFile := filepath.Join(tmpDir, "config.yml")
	cfgData := fmt.Sprintf(`
server:
  listen: "127.0.0.1:%d"
  sync_secret: test-secret
database:
  dsn: "file:%s?mode=rwc&_txlock=immediate"
sources:
  rss:
    - id: local
      url: http://127.0.0.1:1/feed.xml
  grants:
    disabled: true
  contracts:
    disabled: true
  news_search:
    disabled: true
live:
  disabled: true
`, port, filepath.Join(tmpDir, "test.db"))
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfgData), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: cfgFile}) }()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond, "server did not start")

	resp, err := http.Get(baseURL + "/api/v1/status")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"items":0`)

	resp, err = http.Get(baseURL + "/opml")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http://127.0.0.1:1/feed.xml")

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/sync", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer test-secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "manual sync goes through the scheduler, unreachable feed yields nothing")
	assert.JSONEq(t, `{"ok":true}`, string(body))

	resp, err = http.Get(baseURL + "/metrics")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestBulkSources(t *testing.T) {
	cfg := config.SourcesConfig{
		RSS: []config.RSSSource{
			{ID: "a", Source: "news", URL: "http://example.com/a.xml"},
			{ID: "b", Source: "news", URL: "http://example.com/b.xml"},
		},
		NewsSearch: config.NewsSearchConfig{Disabled: true},
	}

	t.Run("all enabled", func(t *testing.T) {
		srcs := bulkSources(feed.NewManager(cfg))
		require.Len(t, srcs, 4)
		names := make([]string, 0, len(srcs))
		for _, s := range srcs {
			names = append(names, s.Name())
		}
		assert.Equal(t, []string{"a", "b", "grants", "contracts"}, names)
	})

	t.Run("providers disabled", func(t *testing.T) {
		c := cfg
		c.Grants.Disabled = true
		c.Contracts.Disabled = true
		srcs := bulkSources(feed.NewManager(c))
		require.Len(t, srcs, 2)
	})
}

func TestLiveFetcher_NoProviders(t *testing.T) {
	cfg := config.SourcesConfig{
		Grants:     config.GrantsConfig{Disabled: true},
		Contracts:  config.ContractsConfig{Disabled: true},
		NewsSearch: config.NewsSearchConfig{Disabled: true},
	}
	lf := liveFetcher(feed.NewManager(cfg), nil, metrics.New())
	res := lf.FetchLive(context.Background(), []string{"drones"}, 10)
	assert.Empty(t, res.Persistable)
	assert.Empty(t, res.ScoringOnly)
}

func TestMakeCache(t *testing.T) {
	c, err := makeCache(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))
	val, fresh, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, "v", string(val))
	require.NoError(t, c.Close())

	_, err = makeCache(context.Background(), "not-a-redis-url")
	require.Error(t, err)
}

func TestSetupLog(t *testing.T) {
	// smoke test, each combination must not panic
	setupLog(false, false)
	setupLog(true, false)
	setupLog(false, true, "secret1", "secret2")
	setupLog(false, true)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}
