package collect

import (
	"context"

	"go.uber.org/zap"

	"github.com/agenthands/followgraph/internal/core/model"
	"github.com/agenthands/followgraph/internal/logging"
)

// BatchCollector runs a FriendListCollector over every entity, one at a time.
type BatchCollector struct {
	Collector FriendListCollector
	Logger    *zap.Logger
}

func NewBatchCollector(collector FriendListCollector, logger *zap.Logger) *BatchCollector {
	return &BatchCollector{Collector: collector, Logger: logging.OrNop(logger)}
}

// CollectAll returns one entry per distinct input identifier, whether or not its fetch succeeded.
func (b *BatchCollector) CollectAll(ctx context.Context, ids []string) model.EntityFriendMap {
	logger := logging.OrNop(b.Logger)
	out := make(model.EntityFriendMap, len(ids))

	for i, id := range ids {
		if _, done := out[id]; done {
			continue
		}
		out[id] = b.Collector.Collect(ctx, id)
		logger.Info("collected friends",
			zap.String("entity", id),
			zap.Int("friends", len(out[id])),
			zap.Int("progress", i+1),
			zap.Int("total", len(ids)),
		)
	}

	return out
}
