// vacation/token.go - Provider access token cache
package vacation

import (
	"context"
	"sync"
	"time"
)

// expirySkew refreshes tokens slightly early so a token does not
// expire mid-request.
const expirySkew = 30 * time.Second

// fetchFunc obtains a fresh token and its lifetime from the provider.
type fetchFunc func(ctx context.Context) (token string, ttl time.Duration, err error)

// TokenCache holds one provider token and its expiry. It replaces the
// process-wide mutable token state with an explicit component carrying
// an injected clock, so expiry behaviour is testable.
type TokenCache struct {
	fetch fetchFunc
	now   func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenCache builds a cache around fetch. A nil now defaults to
// time.Now.
func NewTokenCache(fetch fetchFunc, now func() time.Time) *TokenCache {
	if now == nil {
		now = time.Now
	}
	return &TokenCache{fetch: fetch, now: now}
}

// Token returns the cached token, fetching a fresh one when none is
// cached or the cached one is at (or within skew of) expiry.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Add(expirySkew).Before(c.expiry) {
		return c.token, nil
	}

	token, ttl, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiry = c.now().Add(ttl)
	return token, nil
}

// Invalidate drops the cached token so the next Token call fetches a
// fresh one. Called after the provider rejects a request with 401.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiry = time.Time{}
}
