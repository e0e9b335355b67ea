// Package analysis holds the aggregate statistics computed over collected friend lists.
// Every function is pure: inputs are never mutated and results are rebuilt per call.
package analysis

import (
	"sort"

	"github.com/agenthands/followgraph/internal/core/model"
)

// Frequency counts, for every friend, the number of distinct entities following it.
// Repeats inside one FriendSet count once.
func Frequency(m model.EntityFriendMap) model.FriendFrequency {
	freq := make(model.FriendFrequency)
	for _, friends := range m {
		for _, f := range friends.Distinct() {
			freq[f]++
		}
	}
	return freq
}

// CohortFrequency is Frequency restricted to the entities in cohort.
func CohortFrequency(m model.EntityFriendMap, cohort model.IDSet) model.FriendFrequency {
	return Frequency(m.Subset(cohort))
}

// TopK returns the k most followed friends, count descending, ties by identifier ascending.
func TopK(freq model.FriendFrequency, k int) []model.EntityCount {
	rows := make([]model.EntityCount, 0, len(freq))
	for id, n := range freq {
		rows = append(rows, model.EntityCount{ID: id, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].ID < rows[j].ID
	})

	if k < 0 {
		k = 0
	}
	if k > len(rows) {
		k = len(rows)
	}
	return rows[:k]
}

// FriendCounts reports how many non-empty friend identifiers each entity has, sorted by entity.
func FriendCounts(m model.EntityFriendMap) []model.EntityCount {
	rows := make([]model.EntityCount, 0, len(m))
	for _, id := range m.Keys() {
		n := 0
		for _, f := range m[id] {
			if f != "" {
				n++
			}
		}
		rows = append(rows, model.EntityCount{ID: id, Count: n})
	}
	return rows
}

// SortByID orders rows by identifier, then count.
func SortByID(rows []model.EntityCount) []model.EntityCount {
	out := make([]model.EntityCount, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Count < out[j].Count
	})
	return out
}

// SortByCount orders rows by count descending, then identifier.
func SortByCount(rows []model.EntityCount) []model.EntityCount {
	out := make([]model.EntityCount, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out
}
