package collect

import (
	"go.uber.org/zap"

	"github.com/agenthands/followgraph/internal/config"
	"github.com/agenthands/followgraph/internal/logging"
	"github.com/agenthands/followgraph/internal/twitter"
)

// NewFromConfig assembles the fetch stack: client -> Fetcher -> FriendCollector -> BatchCollector.
// cache and metrics may be nil.
func NewFromConfig(cfg config.FetchConfig, client twitter.APIClient, cache FriendCache, logger *zap.Logger, metrics *Metrics, opts ...FetcherOption) *BatchCollector {
	logger = logging.OrNop(logger)

	cooldown := DefaultCooldown
	if cfg.Cooldown != nil {
		cooldown = cfg.Cooldown.Duration
	}

	base := []FetcherOption{
		WithMaxTries(cfg.MaxTries),
		WithCooldown(cooldown),
		WithMinInterval(cfg.MinInterval.Duration),
		WithLogger(logger),
		WithMetrics(metrics),
	}
	fetcher := NewFetcher(client, append(base, opts...)...)

	fc := NewFriendCollector(fetcher, cache, logger, metrics)
	if cfg.Resource != "" {
		fc.Resource = cfg.Resource
	}
	if cfg.PageSize > 0 {
		fc.PageSize = cfg.PageSize
	}
	if cfg.IDField != "" {
		fc.IDField = cfg.IDField
	}

	return NewBatchCollector(fc, logger)
}
