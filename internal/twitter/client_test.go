package twitter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/agenthands/followgraph/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_BearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/friends/list.json", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("screen_name"))
		assert.Equal(t, "200", r.URL.Query().Get("count"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"users": [{"screen_name": "x"}, {"screen_name": "y"}], "next_cursor": 0}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c, err := NewHTTPClient(ctx, config.TwitterConfig{BearerToken: "tok", BaseURL: srv.URL}, time.Second)
	require.NoError(t, err)

	resp, err := c.Request(ctx, "friends/list", url.Values{"screen_name": {"alice"}, "count": {"200"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "x", resp.Records[0].String("screen_name"))
	assert.Equal(t, "", resp.Records[0].String("missing"))
}

func TestRequest_ClientCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "app-token", "token_type": "bearer"}`))
	})
	mux.HandleFunc("/1.1/users/lookup.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer app-token", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"screen_name": "z"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	c, err := NewHTTPClient(ctx, config.TwitterConfig{
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		BaseURL:        srv.URL + "/1.1/",
		TokenURL:       srv.URL + "/oauth2/token",
	}, time.Second)
	require.NoError(t, err)

	resp, err := c.Request(ctx, "users/lookup", nil)
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "z", resp.Records[0].String("screen_name"))
}

func TestRequest_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"errors":[{"code":88,"message":"Rate limit exceeded"}]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c, err := NewHTTPClient(ctx, config.TwitterConfig{BearerToken: "tok", BaseURL: srv.URL}, time.Second)
	require.NoError(t, err)

	resp, err := c.Request(ctx, "friends/list", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, resp.Body, "Rate limit exceeded")
	assert.Empty(t, resp.Records)
}

func TestRequest_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c, err := NewHTTPClient(ctx, config.TwitterConfig{BearerToken: "tok", BaseURL: srv.URL}, time.Second)
	require.NoError(t, err)

	_, err = c.Request(ctx, "friends/list", nil)
	assert.Error(t, err)
}

func TestNewHTTPClient_MissingCredentials(t *testing.T) {
	_, err := NewHTTPClient(context.Background(), config.TwitterConfig{}, time.Second)
	assert.True(t, errors.Is(err, ErrMissingCredentials))
}
