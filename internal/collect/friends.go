package collect

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/agenthands/followgraph/internal/core/model"
	"github.com/agenthands/followgraph/internal/logging"
)

const (
	DefaultResource = "friends/list"
	DefaultIDField  = "screen_name"
)

// FriendListCollector returns one entity's friends. It never fails: an unreachable
// list comes back empty.
type FriendListCollector interface {
	Collect(ctx context.Context, entityID string) model.FriendSet
}

// FriendCollector fetches a single page of friends per entity.
type FriendCollector struct {
	Fetcher  ResourceFetcher
	Resource string
	PageSize int
	IDField  string
	Cache    FriendCache
	Logger   *zap.Logger
	Metrics  *Metrics
}

func NewFriendCollector(fetcher ResourceFetcher, cache FriendCache, logger *zap.Logger, metrics *Metrics) *FriendCollector {
	return &FriendCollector{
		Fetcher:  fetcher,
		Resource: DefaultResource,
		PageSize: model.MaxFriends,
		IDField:  DefaultIDField,
		Cache:    cache,
		Logger:   logging.OrNop(logger),
		Metrics:  metrics,
	}
}

func (c *FriendCollector) Collect(ctx context.Context, entityID string) model.FriendSet {
	logger := logging.OrNop(c.Logger).With(zap.String("entity", entityID))

	if c.Cache != nil {
		fs, ok, err := c.Cache.Get(ctx, entityID)
		switch {
		case err != nil:
			logger.Warn("cache lookup failed", zap.Error(err))
			c.Metrics.cacheMiss()
		case ok:
			c.Metrics.cacheHit()
			c.Metrics.collected()
			logger.Debug("friends served from cache", zap.Int("count", len(fs)))
			return fs
		default:
			c.Metrics.cacheMiss()
		}
	}

	pageSize := c.pageSize()
	logger.Info("fetching friends")
	params := url.Values{
		"screen_name": {entityID},
		"count":       {strconv.Itoa(pageSize)},
	}

	resp, ok := c.Fetcher.Fetch(ctx, c.resource(), params)
	if !ok {
		logger.Warn("no friends collected; treating as empty")
		return model.FriendSet{}
	}

	field := c.IDField
	if field == "" {
		field = DefaultIDField
	}

	friends := make(model.FriendSet, 0, len(resp.Records))
	for _, rec := range resp.Records {
		id := rec.String(field)
		if id == "" {
			continue
		}
		friends = append(friends, id)
		if len(friends) == pageSize {
			break
		}
	}
	c.Metrics.collected()

	if c.Cache != nil {
		if err := c.Cache.Put(ctx, entityID, friends); err != nil {
			logger.Warn("cache store failed", zap.Error(err))
		}
	}

	return friends
}

func (c *FriendCollector) resource() string {
	if c.Resource == "" {
		return DefaultResource
	}
	return c.Resource
}

func (c *FriendCollector) pageSize() int {
	if c.PageSize <= 0 || c.PageSize > model.MaxFriends {
		return model.MaxFriends
	}
	return c.PageSize
}
