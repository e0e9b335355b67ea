package community

import (
	"sort"

	"github.com/agenthands/followgraph/internal/core/graph"
)

// CommunityDetector groups accounts of the follow graph into clusters.
// Edge direction is ignored.
type CommunityDetector interface {
	Detect(nodes []string, edges []graph.Edge) ([][]string, error)
}

// NewDetector returns the detector registered under name, defaulting to label propagation.
func NewDetector(name string) CommunityDetector {
	switch name {
	case "components":
		return &ComponentDetector{}
	default:
		return NewLabelPropagationDetector()
	}
}

// ComponentDetector treats each connected component as one community.
type ComponentDetector struct{}

func (d *ComponentDetector) Detect(nodes []string, edges []graph.Edge) ([][]string, error) {
	adj := undirected(nodes, edges)

	visited := make(map[string]bool)
	var communities [][]string

	for _, n := range nodes {
		if visited[n] {
			continue
		}
		var component []string
		d.dfs(n, adj, visited, &component)
		// singletons are not clusters
		if len(component) >= 2 {
			communities = append(communities, component)
		}
	}

	return normalize(communities), nil
}

func (d *ComponentDetector) dfs(u string, adj map[string]map[string]int, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range sortedKeys(adj[u]) {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}

// undirected builds a weighted adjacency map, ignoring edges to unknown nodes.
func undirected(nodes []string, edges []graph.Edge) map[string]map[string]int {
	adj := make(map[string]map[string]int, len(nodes))
	for _, n := range nodes {
		adj[n] = make(map[string]int)
	}
	for _, e := range edges {
		if _, ok := adj[e.From]; !ok {
			continue
		}
		if _, ok := adj[e.To]; !ok {
			continue
		}
		if e.From == e.To {
			continue
		}
		adj[e.From][e.To]++
		adj[e.To][e.From]++
	}
	return adj
}

// normalize sorts members, then communities by size descending and first member.
func normalize(communities [][]string) [][]string {
	for _, c := range communities {
		sort.Strings(c)
	}
	sort.Slice(communities, func(i, j int) bool {
		if len(communities[i]) != len(communities[j]) {
			return len(communities[i]) > len(communities[j])
		}
		return communities[i][0] < communities[j][0]
	})
	return communities
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
