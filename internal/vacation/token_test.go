package vacation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock steps time manually
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTokenCacheReusesUntilExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)}
	fetches := 0
	cache := NewTokenCache(func(ctx context.Context) (string, time.Duration, error) {
		fetches++
		return "tok-1", time.Hour, nil
	}, clock.now)

	tok, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	// well within the hour: cached
	clock.advance(30 * time.Minute)
	tok, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, fetches)

	// past expiry: refetched
	clock.advance(31 * time.Minute)
	_, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestTokenCacheRefreshesWithinSkew(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)}
	fetches := 0
	cache := NewTokenCache(func(ctx context.Context) (string, time.Duration, error) {
		fetches++
		return "tok", time.Minute, nil
	}, clock.now)

	_, err := cache.Token(context.Background())
	require.NoError(t, err)

	// 45s into a 60s token: inside the 30s skew window, refresh early
	clock.advance(45 * time.Second)
	_, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestTokenCacheInvalidate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)}
	fetches := 0
	cache := NewTokenCache(func(ctx context.Context) (string, time.Duration, error) {
		fetches++
		return "tok", time.Hour, nil
	}, clock.now)

	_, err := cache.Token(context.Background())
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestTokenCacheFetchError(t *testing.T) {
	cache := NewTokenCache(func(ctx context.Context) (string, time.Duration, error) {
		return "", 0, errors.New("boom")
	}, nil)

	_, err := cache.Token(context.Background())
	assert.Error(t, err)
}
