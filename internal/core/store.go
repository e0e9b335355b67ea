package core

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/followgraph/internal/core/graph"
	"github.com/agenthands/followgraph/internal/core/model"
	"github.com/agenthands/followgraph/internal/driver"
)

// SaveGraph writes one run's graph: a Candidate per roster entity, an Account per
// friend node, a FOLLOWS edge per graph edge and a Community per detected group.
func SaveGraph(ctx context.Context, drv driver.GraphDriver, runID string, roster model.Roster, friends model.EntityFriendMap, freq model.FriendFrequency, g *graph.SocialGraph, communities [][]string) error {
	now := time.Now().UTC()

	for _, e := range roster.Sorted() {
		params := map[string]interface{}{
			"name":         e.ID,
			"run_id":       runID,
			"cohort":       string(e.Cohort),
			"friend_count": len(friends[e.ID]),
			"created_at":   now,
		}
		if _, err := drv.ExecuteQuery(ctx, driver.SaveCandidateQuery, params); err != nil {
			return fmt.Errorf("failed to save candidate %s: %w", e.ID, err)
		}
	}

	for _, name := range g.Nodes() {
		n, _ := g.Node(name)
		if n.Kind != graph.KindFriend {
			continue
		}
		params := map[string]interface{}{
			"name":        name,
			"run_id":      runID,
			"followed_by": freq.Get(name),
			"created_at":  now,
		}
		if _, err := drv.ExecuteQuery(ctx, driver.SaveAccountQuery, params); err != nil {
			return fmt.Errorf("failed to save account %s: %w", name, err)
		}
	}

	for _, e := range g.Edges() {
		params := map[string]interface{}{
			"source": e.From,
			"target": e.To,
			"run_id": runID,
		}
		if _, err := drv.ExecuteQuery(ctx, driver.SaveFollowsQuery, params); err != nil {
			return fmt.Errorf("failed to save edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	for i, members := range communities {
		params := map[string]interface{}{
			"run_id":  runID,
			"index":   i,
			"size":    len(members),
			"members": members,
		}
		if _, err := drv.ExecuteQuery(ctx, driver.SaveCommunityQuery, params); err != nil {
			return fmt.Errorf("failed to save community %d: %w", i, err)
		}
	}

	return nil
}
