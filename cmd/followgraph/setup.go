package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/agenthands/followgraph/internal/collect"
	"github.com/agenthands/followgraph/internal/config"
	"github.com/agenthands/followgraph/internal/core"
	"github.com/agenthands/followgraph/internal/core/model"
	"github.com/agenthands/followgraph/internal/core/roster"
	"github.com/agenthands/followgraph/internal/driver"
	"github.com/agenthands/followgraph/internal/logging"
	"github.com/agenthands/followgraph/internal/twitter"
)

const defaultConfigPath = "config/config.toml"

// app holds everything a command needs; close releases connections.
// newApp reads the roster before it opens any connection.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	roster   model.Roster
	pipeline *core.Pipeline
	closers  []func(context.Context) error
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); errors.Is(err, os.ErrNotExist) {
			cfg := config.Default()
			cfg.ApplyEnv()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		path = defaultConfigPath
	}
	return config.Load(path)
}

func newApp(ctx context.Context) (*app, error) {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if outputPath != "" {
		cfg.Output.JSONPath = outputPath
	}
	if dotPath != "" {
		cfg.Output.DOTPath = dotPath
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}

	// A corrupt roster fails before any credential check or connection.
	r, err := a.readRoster()
	if err != nil {
		return nil, err
	}
	a.roster = r

	client, err := twitter.NewHTTPClient(ctx, cfg.Twitter, cfg.Fetch.Timeout.Duration)
	if err != nil {
		return nil, err
	}

	var cache collect.FriendCache
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable; friend cache disabled", zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
			_ = rdb.Close()
		} else {
			cache = collect.NewRedisCache(rdb, cfg.Cache.TTL.Duration)
			a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
			logger.Info("friend cache enabled", zap.String("addr", cfg.Cache.RedisAddr))
		}
	}

	metrics := collect.NewMetrics(a.registry)
	collector := collect.NewFromConfig(cfg.Fetch, client, cache, logger, metrics)

	var drv driver.GraphDriver
	if cfg.Memgraph.URI != "" {
		md, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("failed to connect to Memgraph: %w", err)
		}
		if err := md.BuildIndices(ctx); err != nil {
			a.close(ctx)
			return nil, err
		}
		drv = md
		a.closers = append(a.closers, md.Close)
	}

	a.pipeline = core.NewPipeline(cfg, collector, drv, logger)
	return a, nil
}

func (a *app) readRoster() (model.Roster, error) {
	labels := make([]model.Cohort, 0, len(a.cfg.Cohorts))
	for _, c := range a.cfg.Cohorts {
		labels = append(labels, model.Cohort(c.Label))
	}
	return roster.ReadFile(candidatesPath, roster.WithCohorts(labels...))
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
