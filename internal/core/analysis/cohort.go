package analysis

import (
	"github.com/agenthands/followgraph/internal/core/model"
)

// CrossCohortCount reports, for each entity of cohortA in order, how many members
// of cohortB it follows directly.
func CrossCohortCount(cohortA []string, cohortB model.IDSet, m model.EntityFriendMap) ([]model.EntityCount, error) {
	rows := make([]model.EntityCount, 0, len(cohortA))
	for _, id := range cohortA {
		friends, err := m.Friends(id)
		if err != nil {
			return nil, err
		}

		n := 0
		for _, f := range friends.Distinct() {
			if cohortB.Has(f) {
				n++
			}
		}
		rows = append(rows, model.EntityCount{ID: id, Count: n})
	}
	return rows, nil
}

// BridgeScores measures second-degree reach into another cohort: for each entity of
// cohortA, the sum of freqB over its distinct friends.
func BridgeScores(cohortA []string, freqB model.FriendFrequency, m model.EntityFriendMap) ([]model.EntityCount, error) {
	rows := make([]model.EntityCount, 0, len(cohortA))
	for _, id := range cohortA {
		friends, err := m.Friends(id)
		if err != nil {
			return nil, err
		}

		score := 0
		for _, f := range friends.Distinct() {
			score += freqB.Get(f)
		}
		rows = append(rows, model.EntityCount{ID: id, Count: score})
	}
	return rows, nil
}
