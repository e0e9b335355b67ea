package collect

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/agenthands/followgraph/internal/logging"
	"github.com/agenthands/followgraph/internal/twitter"
)

const (
	DefaultMaxTries = 5
	DefaultCooldown = 900 * time.Second
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ResourceFetcher returns a successful response or false when none could be obtained.
type ResourceFetcher interface {
	Fetch(ctx context.Context, resource string, params url.Values) (*twitter.Response, bool)
}

// Fetcher retries a request a fixed number of times, sleeping a fixed cooldown
// after every failed attempt. There is no backoff and no jitter.
type Fetcher struct {
	client   twitter.APIClient
	maxTries int
	cooldown time.Duration
	limiter  *rate.Limiter
	sleep    SleepFunc
	logger   *zap.Logger
	metrics  *Metrics
}

type FetcherOption func(*Fetcher)

func WithMaxTries(n int) FetcherOption {
	return func(f *Fetcher) { f.maxTries = n }
}

func WithCooldown(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.cooldown = d }
}

// WithMinInterval spaces consecutive requests at least d apart. Zero disables pacing.
func WithMinInterval(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

func WithSleep(s SleepFunc) FetcherOption {
	return func(f *Fetcher) { f.sleep = s }
}

func WithLogger(l *zap.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = logging.OrNop(l) }
}

func WithMetrics(m *Metrics) FetcherOption {
	return func(f *Fetcher) { f.metrics = m }
}

func NewFetcher(client twitter.APIClient, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:   client,
		maxTries: DefaultMaxTries,
		cooldown: DefaultCooldown,
		sleep:    sleepContext,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxTries < 1 {
		f.maxTries = 1
	}
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, resource string, params url.Values) (*twitter.Response, bool) {
	for attempt := 1; attempt <= f.maxTries; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				f.logger.Error("request aborted", zap.String("resource", resource), zap.Error(err))
				return nil, false
			}
		}

		resp, err := f.client.Request(ctx, resource, params)
		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			f.metrics.attempt("success")
			return resp, true
		}

		f.metrics.attempt("failure")
		f.logger.Error("got error",
			zap.String("resource", resource),
			zap.Int("attempt", attempt),
			zap.Int("max_tries", f.maxTries),
			zap.Int("status", statusOf(resp)),
			zap.String("payload", payloadOf(resp, err)),
		)

		if attempt == f.maxTries {
			break
		}

		f.logger.Warn("sleeping before retry", zap.Duration("cooldown", f.cooldown))
		if err := f.sleep(ctx, f.cooldown); err != nil {
			f.logger.Error("request aborted", zap.String("resource", resource), zap.Error(err))
			return nil, false
		}
	}

	f.metrics.exhausted()
	f.logger.Error("giving up", zap.String("resource", resource), zap.Int("attempts", f.maxTries))
	return nil, false
}

func statusOf(resp *twitter.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func payloadOf(resp *twitter.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	if resp == nil {
		return ""
	}
	return resp.Body
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
