package collect

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/agenthands/followgraph/internal/core/model"
	"github.com/agenthands/followgraph/internal/twitter"
)

type mockCall struct {
	Resource string
	Params   url.Values
}

// MockAPIClient replays Responses in order, then repeats the last one.
type MockAPIClient struct {
	mu        sync.Mutex
	Responses []*twitter.Response
	Errs      []error
	Calls     []mockCall
}

func (m *MockAPIClient) Request(ctx context.Context, resource string, params url.Values) (*twitter.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := len(m.Calls)
	m.Calls = append(m.Calls, mockCall{Resource: resource, Params: params})

	var err error
	if len(m.Errs) > 0 {
		err = m.Errs[min(i, len(m.Errs)-1)]
	}
	if err != nil {
		return nil, err
	}
	if len(m.Responses) == 0 {
		return &twitter.Response{StatusCode: 500, Body: "no response"}, nil
	}
	return m.Responses[min(i, len(m.Responses)-1)], nil
}

type recordedSleep struct {
	durations []time.Duration
}

func (r *recordedSleep) Sleep(ctx context.Context, d time.Duration) error {
	r.durations = append(r.durations, d)
	return ctx.Err()
}

func okResponse(names ...string) *twitter.Response {
	recs := make([]twitter.Record, 0, len(names))
	for _, n := range names {
		recs = append(recs, twitter.Record{"screen_name": n})
	}
	return &twitter.Response{StatusCode: 200, Records: recs}
}

func rateLimited() *twitter.Response {
	return &twitter.Response{StatusCode: 429, Body: `{"errors":[{"code":88,"message":"Rate limit exceeded"}]}`}
}

// stubCollector maps ids to fixed friend lists and records call order.
type stubCollector struct {
	friends map[string]model.FriendSet
	calls   []string
}

func (s *stubCollector) Collect(ctx context.Context, id string) model.FriendSet {
	s.calls = append(s.calls, id)
	fs, ok := s.friends[id]
	if !ok {
		return model.FriendSet{}
	}
	return fs
}
