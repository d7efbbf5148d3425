// vacation/client.go - HTTP client for the external time-off provider
package vacation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const dayFormat = "2006-01-02"

// envelope is the provider's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// TimeOff is one time-off record returned by the provider.
type TimeOff struct {
	Employee  Employee `json:"employee"`
	Status    string   `json:"status"` // approved, pending, rejected
	Type      string   `json:"type"`   // leave category
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Days      float64  `json:"days"`
}

// Employee carries the nested identity fields of a time-off record.
type Employee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client talks to the provider using a cached bearer token. On a 401
// the token is invalidated and the request retried exactly once with a
// fresh token; no other retry policy exists.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client
	tokens       *TokenCache
	log          *zap.SugaredLogger
}

// New builds a provider client. now is the clock injected into the
// token cache; pass nil outside of tests.
func New(baseURL, clientID, clientSecret string, log *zap.SugaredLogger, now func() time.Time) *Client {
	c := &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}
	c.tokens = NewTokenCache(c.fetchToken, now)
	return c
}

// fetchToken exchanges client credentials for an access token.
func (c *Client) fetchToken(ctx context.Context) (string, time.Duration, error) {
	body, err := json.Marshal(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	})
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", bytes.NewReader(body))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("token request: status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", 0, fmt.Errorf("token response: %w", err)
	}
	if !env.Success {
		return "", 0, fmt.Errorf("token response: %s", env.Error)
	}

	var data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"` // seconds
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", 0, fmt.Errorf("token response: %w", err)
	}
	return data.AccessToken, time.Duration(data.ExpiresIn) * time.Second, nil
}

// TimeOffRecords fetches time-off records in [start, end]. Dates go
// out as yyyy-mm-dd.
func (c *Client) TimeOffRecords(ctx context.Context, start, end time.Time) ([]TimeOff, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, token, start, end)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		c.tokens.Invalidate()
		c.log.Infow("provider token rejected, retrying with fresh token")

		token, err = c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = c.get(ctx, token, start, end)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("time-off request: status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("time-off response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("time-off response: %s", env.Error)
	}

	var records []TimeOff
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, fmt.Errorf("time-off response: %w", err)
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, token string, start, end time.Time) (*http.Response, error) {
	q := url.Values{}
	q.Set("start_date", start.Format(dayFormat))
	q.Set("end_date", end.Format(dayFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/time-off?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("time-off request: %w", err)
	}
	return resp, nil
}
