package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/agenthands/followgraph/internal/config"
)

const (
	DefaultBaseURL  = "https://api.twitter.com/1.1/"
	DefaultTokenURL = "https://api.twitter.com/oauth2/token"
)

var ErrMissingCredentials = errors.New("twitter credentials missing: set a bearer token or consumer key and secret")

// Record is one item of an API response, e.g. a user object.
type Record map[string]interface{}

// String returns the field as a string, or "" when absent or not a string.
func (r Record) String(field string) string {
	v, ok := r[field].(string)
	if !ok {
		return ""
	}
	return v
}

type Response struct {
	StatusCode int
	Body       string
	Records    []Record
}

// APIClient issues a single request against an API resource such as "friends/list".
type APIClient interface {
	Request(ctx context.Context, resource string, params url.Values) (*Response, error)
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds an app-only authenticated client. A bearer token takes precedence
// over the consumer key/secret exchange.
func NewHTTPClient(ctx context.Context, cfg config.TwitterConfig, timeout time.Duration) (*HTTPClient, error) {
	var hc *http.Client
	switch {
	case cfg.BearerToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.BearerToken, TokenType: "Bearer"})
		hc = oauth2.NewClient(ctx, ts)
	case cfg.ConsumerKey != "" && cfg.ConsumerSecret != "":
		tokenURL := cfg.TokenURL
		if tokenURL == "" {
			tokenURL = DefaultTokenURL
		}
		cc := &clientcredentials.Config{
			ClientID:     cfg.ConsumerKey,
			ClientSecret: cfg.ConsumerSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		hc = cc.Client(ctx)
	default:
		return nil, ErrMissingCredentials
	}
	hc.Timeout = timeout

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &HTTPClient{baseURL: baseURL, client: hc}, nil
}

func (c *HTTPClient) Request(ctx context.Context, resource string, params url.Values) (*Response, error) {
	u := c.baseURL + strings.TrimPrefix(resource, "/") + ".json"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", resource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	out := &Response{StatusCode: resp.StatusCode, Body: string(body)}
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}

	records, err := decodeRecords(body)
	if err != nil {
		return out, err
	}
	out.Records = records
	return out, nil
}

// decodeRecords accepts either a bare array or a cursored object with a "users" array.
func decodeRecords(body []byte) ([]Record, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var records []Record
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("failed to decode records: %w", err)
		}
		return records, nil
	}

	var page struct {
		Users []Record `json:"users"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return page.Users, nil
}
