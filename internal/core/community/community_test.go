package community

import (
	"testing"

	"github.com/agenthands/followgraph/internal/core/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func e(from, to string) graph.Edge {
	return graph.Edge{From: from, To: to}
}

func TestComponents(t *testing.T) {
	nodes := []string{"alice", "bob", "carol", "dave"}
	edges := []graph.Edge{
		e("alice", "bob"),
		e("carol", "bob"),
		// dave is isolated
	}

	communities, err := NewDetector("components").Detect(nodes, edges)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"alice", "bob", "carol"}}, communities)
}

func TestComponents_IgnoresUnknownNodes(t *testing.T) {
	communities, err := (&ComponentDetector{}).Detect([]string{"a", "b"}, []graph.Edge{e("a", "zzz"), e("b", "b")})
	require.NoError(t, err)
	assert.Empty(t, communities)
}

func TestLPA_DisconnectedComponents(t *testing.T) {
	nodes := []string{"1", "2", "3", "4", "5", "6"}
	edges := []graph.Edge{
		e("1", "2"), e("2", "3"), e("3", "1"),
		e("4", "5"), e("5", "6"), e("6", "4"),
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}}, communities)
}

func TestLPA_BridgeNode(t *testing.T) {
	// Two triangles joined by 3-4 stay separate.
	nodes := []string{"1", "2", "3", "4", "5", "6"}
	edges := []graph.Edge{
		e("1", "2"), e("2", "3"), e("3", "1"),
		e("3", "4"),
		e("4", "5"), e("5", "6"), e("6", "4"),
	}

	communities, err := NewDetector("lpa").Detect(nodes, edges)
	require.NoError(t, err)

	assert.Len(t, communities, 2)
}

func TestLPA_Star(t *testing.T) {
	// Candidates following one shared account form a single cluster.
	nodes := []string{"alice", "bob", "carol", "potus"}
	edges := []graph.Edge{e("alice", "potus"), e("bob", "potus"), e("carol", "potus")}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)

	require.Len(t, communities, 1)
	assert.Equal(t, []string{"alice", "bob", "carol", "potus"}, communities[0])
}

func TestLPA_LargeClique(t *testing.T) {
	nodes := []string{"1", "2", "3", "4", "5"}
	var edges []graph.Edge
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			edges = append(edges, e(nodes[i], nodes[j]))
		}
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)

	assert.Len(t, communities, 1)
	assert.Len(t, communities[0], 5)
}

func TestLPA_Empty(t *testing.T) {
	communities, err := NewLabelPropagationDetector().Detect(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, communities)
}
