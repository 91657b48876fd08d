package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set, skipping redis test")
	}
	ctx := context.Background()

	c, err := NewRedisCache(ctx, redisURL, "pryzm-test:")
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.client.Del(ctx, "pryzm-test:k").Err())
	val, fresh, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)
	assert.False(t, fresh)

	require.NoError(t, c.Set(ctx, "k", []byte(`["a","b"]`), time.Minute))
	val, fresh, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, []byte(`["a","b"]`), val)
	require.NoError(t, c.client.Del(ctx, "pryzm-test:k").Err())
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}
