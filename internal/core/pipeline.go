package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/followgraph/internal/config"
	"github.com/agenthands/followgraph/internal/core/analysis"
	"github.com/agenthands/followgraph/internal/core/community"
	"github.com/agenthands/followgraph/internal/core/graph"
	"github.com/agenthands/followgraph/internal/core/model"
	"github.com/agenthands/followgraph/internal/core/report"
	"github.com/agenthands/followgraph/internal/driver"
	"github.com/agenthands/followgraph/internal/logging"
)

const graphName = "candidates"

// FriendsCollector gathers one friend list per identifier.
type FriendsCollector interface {
	CollectAll(ctx context.Context, ids []string) model.EntityFriendMap
}

// Pipeline runs roster -> collection -> analysis -> graph -> report.
type Pipeline struct {
	Collector FriendsCollector
	Driver    driver.GraphDriver
	Detector  community.CommunityDetector
	Renderer  *graph.Renderer
	Threshold int
	Cohorts   []report.Cohort

	TopK        int
	ConsoleTopK int
	BridgeFrom  model.Cohort
	BridgeTo    model.Cohort

	Logger *zap.Logger
}

// Result is everything a run produced. It is read-only once returned.
type Result struct {
	RunID     string
	Roster    model.Roster
	Friends   model.EntityFriendMap
	Frequency model.FriendFrequency
	Graph     *graph.SocialGraph
	DOT       []byte
	Summary   *report.Summary
	Report    report.Inputs
}

// NewPipeline wires a pipeline from configuration. drv may be nil to skip persistence.
func NewPipeline(cfg *config.Config, collector FriendsCollector, drv driver.GraphDriver, logger *zap.Logger) *Pipeline {
	colors := make(map[model.Cohort]string, len(cfg.Cohorts))
	cohorts := make([]report.Cohort, 0, len(cfg.Cohorts))
	for _, c := range cfg.Cohorts {
		colors[model.Cohort(c.Label)] = c.Color
		cohorts = append(cohorts, report.Cohort{Label: model.Cohort(c.Label), Name: c.Name, Plural: c.Plural})
	}

	threshold := graph.DefaultThreshold
	if cfg.Graph.Threshold != nil {
		threshold = *cfg.Graph.Threshold
	}
	labelThreshold := graph.DefaultLabelThreshold
	if cfg.Graph.LabelThreshold != nil {
		labelThreshold = *cfg.Graph.LabelThreshold
	}

	return &Pipeline{
		Collector:   collector,
		Driver:      drv,
		Detector:    community.NewDetector(cfg.Analysis.Community),
		Renderer:    graph.NewRenderer(colors, cfg.Graph.NeutralColor, labelThreshold),
		Threshold:   threshold,
		Cohorts:     cohorts,
		TopK:        cfg.Analysis.TopK,
		ConsoleTopK: cfg.Analysis.ConsoleTopK,
		BridgeFrom:  model.Cohort(cfg.Analysis.BridgeFrom),
		BridgeTo:    model.Cohort(cfg.Analysis.BridgeTo),
		Logger:      logging.OrNop(logger),
	}
}

func (p *Pipeline) Run(ctx context.Context, roster model.Roster) (*Result, error) {
	logger := logging.OrNop(p.Logger)
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("starting run", zap.Int("candidates", roster.Len()))

	friends := p.Collector.CollectAll(ctx, roster.IDs())
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run aborted during collection: %w", err)
	}
	for _, id := range roster.IDs() {
		if _, err := friends.Friends(id); err != nil {
			return nil, err
		}
	}

	freq := analysis.Frequency(friends)
	g := graph.NewBuilder(p.Threshold, &roster).Build(friends, freq)
	logger.Info("graph built", zap.Int("nodes", g.NumNodes()), zap.Int("edges", g.NumEdges()))

	var communities [][]string
	if p.Detector != nil {
		var err error
		communities, err = p.Detector.Detect(g.Nodes(), g.Edges())
		if err != nil {
			return nil, fmt.Errorf("failed to detect communities: %w", err)
		}
	}

	renderer := p.Renderer
	if renderer == nil {
		renderer = graph.NewRenderer(nil, "", graph.DefaultLabelThreshold)
	}
	dot, err := renderer.Render(g, freq, graphName)
	if err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}

	in := report.Inputs{
		Roster:      roster,
		Friends:     friends,
		Graph:       g,
		Cohorts:     p.Cohorts,
		TopK:        p.TopK,
		ConsoleTopK: p.ConsoleTopK,
		BridgeFrom:  p.BridgeFrom,
		BridgeTo:    p.BridgeTo,
		Communities: communities,
	}
	summary, err := report.Build(in)
	if err != nil {
		return nil, err
	}

	if p.Driver != nil {
		if err := SaveGraph(ctx, p.Driver, runID, roster, friends, freq, g, communities); err != nil {
			return nil, err
		}
		logger.Info("graph persisted")
	}

	return &Result{
		RunID:     runID,
		Roster:    roster,
		Friends:   friends,
		Frequency: freq,
		Graph:     g,
		DOT:       dot,
		Summary:   summary,
		Report:    in,
	}, nil
}
