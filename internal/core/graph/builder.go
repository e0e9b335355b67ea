package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/agenthands/followgraph/internal/core/model"
)

// DefaultThreshold keeps friends followed by more than one entity.
const DefaultThreshold = 1

type Kind int

const (
	KindEntity Kind = iota
	KindFriend
)

// Node is a vertex of the SocialGraph: either a collected entity or one of their friends.
type Node struct {
	id     int64
	Name   string
	Kind   Kind
	Cohort model.Cohort
}

func (n *Node) ID() int64 { return n.id }

type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SocialGraph is a directed entity→friend graph keyed by account name.
type SocialGraph struct {
	g     *simple.DirectedGraph
	nodes map[string]*Node
}

func NewSocialGraph() *SocialGraph {
	return &SocialGraph{
		g:     simple.NewDirectedGraph(),
		nodes: make(map[string]*Node),
	}
}

// addNode inserts name if absent. An existing friend node is promoted to entity.
func (s *SocialGraph) addNode(name string, kind Kind, cohort model.Cohort) *Node {
	if n, ok := s.nodes[name]; ok {
		if kind == KindEntity && n.Kind != KindEntity {
			n.Kind = KindEntity
			n.Cohort = cohort
		}
		return n
	}
	n := &Node{id: int64(len(s.nodes)), Name: name, Kind: kind, Cohort: cohort}
	s.nodes[name] = n
	s.g.AddNode(n)
	return n
}

func (s *SocialGraph) addEdge(from, to *Node) {
	if from.id == to.id {
		return
	}
	s.g.SetEdge(s.g.NewEdge(from, to))
}

func (s *SocialGraph) NumNodes() int {
	return len(s.nodes)
}

func (s *SocialGraph) NumEdges() int {
	n := 0
	it := s.g.Edges()
	for it.Next() {
		n++
	}
	return n
}

func (s *SocialGraph) Node(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

func (s *SocialGraph) HasNode(name string) bool {
	_, ok := s.nodes[name]
	return ok
}

func (s *SocialGraph) HasEdge(from, to string) bool {
	u, ok := s.nodes[from]
	if !ok {
		return false
	}
	v, ok := s.nodes[to]
	if !ok {
		return false
	}
	return s.g.HasEdgeFromTo(u.id, v.id)
}

// Nodes returns all node names, sorted.
func (s *SocialGraph) Nodes() []string {
	names := make([]string, 0, len(s.nodes))
	for name := range s.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns all edges sorted by source, then target.
func (s *SocialGraph) Edges() []Edge {
	var edges []Edge
	it := s.g.Edges()
	for it.Next() {
		e := it.Edge()
		edges = append(edges, Edge{
			From: e.From().(*Node).Name,
			To:   e.To().(*Node).Name,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// Successors lists the accounts name points to, sorted.
func (s *SocialGraph) Successors(name string) []string {
	n, ok := s.nodes[name]
	if !ok {
		return nil
	}
	var out []string
	it := s.g.From(n.id)
	for it.Next() {
		out = append(out, it.Node().(*Node).Name)
	}
	sort.Strings(out)
	return out
}

// Builder turns an EntityFriendMap into a SocialGraph, dropping unpopular friends.
type Builder struct {
	// Threshold is the frequency a friend must exceed to appear in the graph.
	Threshold int
	// Roster, when set, tags entity nodes with their cohort.
	Roster *model.Roster
}

func NewBuilder(threshold int, roster *model.Roster) *Builder {
	return &Builder{Threshold: threshold, Roster: roster}
}

func (b *Builder) Build(m model.EntityFriendMap, freq model.FriendFrequency) *SocialGraph {
	sg := NewSocialGraph()

	entities := m.Keys()
	for _, id := range entities {
		sg.addNode(id, KindEntity, b.cohortOf(id))
	}

	for _, id := range entities {
		from := sg.nodes[id]
		for _, friend := range m[id] {
			if freq.Get(friend) <= b.Threshold {
				continue
			}
			to := sg.addNode(friend, KindFriend, "")
			sg.addEdge(from, to)
		}
	}

	return sg
}

func (b *Builder) cohortOf(id string) model.Cohort {
	if b.Roster == nil {
		return ""
	}
	c, _ := b.Roster.CohortOf(id)
	return c
}
