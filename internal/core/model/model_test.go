package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster(t *testing.T) {
	r := NewRoster([]Entity{
		{ID: "bob", Cohort: "D"},
		{ID: "alice", Cohort: "R"},
		{ID: "carol", Cohort: "R"},
	})

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"bob", "alice", "carol"}, r.IDs())
	assert.Equal(t, []string{"alice", "carol"}, r.Members("R"))
	assert.Equal(t, []Cohort{"D", "R"}, r.Cohorts())
	assert.True(t, r.Set("D").Has("bob"))
	assert.False(t, r.Set("D").Has("alice"))

	c, ok := r.CohortOf("carol")
	assert.True(t, ok)
	assert.Equal(t, Cohort("R"), c)
	assert.False(t, r.Contains("dave"))

	sorted := r.Sorted()
	assert.Equal(t, "alice", sorted[0].ID)
	assert.Equal(t, "carol", sorted[2].ID)
}

func TestEntityFriendMap_Friends(t *testing.T) {
	m := EntityFriendMap{"alice": {"x"}, "bob": {}}

	fs, err := m.Friends("bob")
	require.NoError(t, err)
	assert.NotNil(t, fs)
	assert.Empty(t, fs)

	_, err = m.Friends("dave")
	assert.True(t, errors.Is(err, ErrMissingEntity))
	assert.Contains(t, err.Error(), "dave")
}

func TestEntityFriendMap_Subset(t *testing.T) {
	m := EntityFriendMap{"alice": {"x"}, "bob": {"y"}, "carol": {"z"}}
	sub := m.Subset(NewIDSet("alice", "carol", "nobody"))

	assert.Equal(t, []string{"alice", "carol"}, sub.Keys())
	assert.Len(t, m, 3)
}

func TestFriendSet_Distinct(t *testing.T) {
	fs := FriendSet{"x", "y", "x", "z", "y"}
	assert.Equal(t, []string{"x", "y", "z"}, fs.Distinct())
}

func TestEntityCount_JSON(t *testing.T) {
	data, err := json.Marshal([]EntityCount{{ID: "x", Count: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `[["x", 2]]`, string(data))

	var back []EntityCount
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []EntityCount{{ID: "x", Count: 2}}, back)

	var bad EntityCount
	assert.Error(t, json.Unmarshal([]byte(`["x"]`), &bad))
}
