package graph

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/agenthands/followgraph/internal/core/model"
)

// DefaultLabelThreshold labels friends followed by more than three entities.
const DefaultLabelThreshold = 3

// Renderer draws a SocialGraph as Graphviz DOT.
type Renderer struct {
	Colors         map[model.Cohort]string
	Neutral        string
	LabelThreshold int
}

func NewRenderer(colors map[model.Cohort]string, neutral string, labelThreshold int) *Renderer {
	if neutral == "" {
		neutral = "white"
	}
	return &Renderer{Colors: colors, Neutral: neutral, LabelThreshold: labelThreshold}
}

type dotNode struct {
	id    int64
	name  string
	color string
	label string
}

func (n dotNode) ID() int64     { return n.id }
func (n dotNode) DOTID() string { return n.name }

func (n dotNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: strconv.Quote(n.label)},
		{Key: "style", Value: "filled"},
		{Key: "fillcolor", Value: n.color},
	}
}

type dotGraph struct {
	*simple.DirectedGraph
}

func (dotGraph) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return attrs{{Key: "overlap", Value: "false"}},
		attrs{{Key: "shape", Value: "circle"}, {Key: "width", Value: "0.3"}},
		attrs{{Key: "penwidth", Value: "0.1"}}
}

type attrs []encoding.Attribute

func (a attrs) Attributes() []encoding.Attribute { return a }

// Color is the fill colour used for the named node.
func (r *Renderer) Color(n *Node) string {
	if n.Kind == KindEntity {
		if c := r.Colors[n.Cohort]; c != "" {
			return c
		}
	}
	return r.Neutral
}

// Label is the visible label: entities always, friends only when popular enough.
func (r *Renderer) Label(n *Node, freq model.FriendFrequency) string {
	if n.Kind == KindEntity || freq.Get(n.Name) > r.LabelThreshold {
		return n.Name
	}
	return ""
}

func (r *Renderer) Render(sg *SocialGraph, freq model.FriendFrequency, name string) ([]byte, error) {
	out := dotGraph{simple.NewDirectedGraph()}
	for _, nm := range sg.Nodes() {
		n := sg.nodes[nm]
		out.AddNode(dotNode{
			id:    n.id,
			name:  n.Name,
			color: r.Color(n),
			label: r.Label(n, freq),
		})
	}
	for _, e := range sg.Edges() {
		from := out.Node(sg.nodes[e.From].id)
		to := out.Node(sg.nodes[e.To].id)
		out.SetEdge(out.NewEdge(from, to))
	}

	b, err := dot.Marshal(out, name, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}
	return b, nil
}
