// Package report turns a finished analysis into the JSON summary file and the console report.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agenthands/followgraph/internal/core/analysis"
	"github.com/agenthands/followgraph/internal/core/graph"
	"github.com/agenthands/followgraph/internal/core/model"
)

// Cohort names a cohort label for output keys, e.g. R -> "republican"/"republicans".
type Cohort struct {
	Label  model.Cohort
	Name   string
	Plural string
}

type Inputs struct {
	Roster      model.Roster
	Friends     model.EntityFriendMap
	Graph       *graph.SocialGraph
	Cohorts     []Cohort
	TopK        int
	ConsoleTopK int
	BridgeFrom  model.Cohort
	BridgeTo    model.Cohort
	Communities [][]string
}

// CohortSummary is the per-cohort part of the summary.
type CohortSummary struct {
	Cohort
	Members []string
	Top     []model.EntityCount
}

// Summary is the persisted result of one run. Keys that depend on cohort names
// are produced by MarshalJSON.
type Summary struct {
	Candidates   [][2]string
	Cohorts      []CohortSummary
	NumNodes     int
	NumEdges     int
	BridgeName   string
	BridgeScores []model.EntityCount
}

// Build computes the summary. It fails only when a roster entity has no collected entry.
func Build(in Inputs) (*Summary, error) {
	s := &Summary{
		Candidates: make([][2]string, 0, in.Roster.Len()),
	}
	for _, e := range in.Roster.Sorted() {
		s.Candidates = append(s.Candidates, [2]string{e.ID, string(e.Cohort)})
	}

	topK := in.TopK
	if topK <= 0 {
		topK = 10
	}
	for _, c := range cohortsOf(in) {
		members := in.Roster.Set(c.Label)
		freq := analysis.CohortFrequency(in.Friends, members)
		s.Cohorts = append(s.Cohorts, CohortSummary{
			Cohort:  c,
			Members: members.Sorted(),
			Top:     analysis.SortByID(analysis.TopK(freq, topK)),
		})
	}

	if in.Graph != nil {
		s.NumNodes = in.Graph.NumNodes()
		s.NumEdges = in.Graph.NumEdges()
	}

	if in.BridgeFrom != "" && in.BridgeTo != "" {
		freqTo := analysis.CohortFrequency(in.Friends, in.Roster.Set(in.BridgeTo))
		scores, err := analysis.BridgeScores(in.Roster.Members(in.BridgeFrom), freqTo, in.Friends)
		if err != nil {
			return nil, fmt.Errorf("failed to compute bridge scores: %w", err)
		}
		s.BridgeName = nameOf(in, in.BridgeFrom)
		s.BridgeScores = analysis.SortByID(scores)
	}

	return s, nil
}

// MarshalJSON emits a flat object; encoding/json sorts map keys.
func (s *Summary) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"candidates": s.Candidates,
		"num_nodes":  s.NumNodes,
		"num_edges":  s.NumEdges,
	}
	for _, c := range s.Cohorts {
		out[c.Plural] = nonNil(c.Members)
		top := c.Top
		if top == nil {
			top = []model.EntityCount{}
		}
		out[c.Name+"_counts"] = top
	}
	if s.BridgeName != "" {
		scores := s.BridgeScores
		if scores == nil {
			scores = []model.EntityCount{}
		}
		out[s.BridgeName+"_scores"] = scores
	}
	return json.Marshal(out)
}

// WriteJSON writes the summary with two-space indentation, replacing any existing file.
func (s *Summary) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary to '%s': %w", path, err)
	}
	return nil
}

// cohortsOf returns the configured cohorts followed by any roster cohort nobody named.
func cohortsOf(in Inputs) []Cohort {
	out := make([]Cohort, 0, len(in.Cohorts))
	seen := make(map[model.Cohort]bool, len(in.Cohorts))
	for _, c := range in.Cohorts {
		if c.Plural == "" {
			c.Plural = c.Name + "s"
		}
		out = append(out, c)
		seen[c.Label] = true
	}
	for _, label := range in.Roster.Cohorts() {
		if !seen[label] {
			out = append(out, Cohort{Label: label, Name: string(label), Plural: string(label) + "s"})
		}
	}
	return out
}

func nameOf(in Inputs, label model.Cohort) string {
	for _, c := range in.Cohorts {
		if c.Label == label {
			return c.Name
		}
	}
	return string(label)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
