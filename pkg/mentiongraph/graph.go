// Package mentiongraph provides the directed weighted mention graph and the
// builder that derives it from a tweet corpus.
//
// Nodes are participant handles (canonical lowercase); a directed edge
// author→handle carries a weight equal to the number of tweets by that
// author mentioning that handle. The graph is built once per analysis run
// and read-only afterwards: the metrics and export layers only call
// accessors, so no locking is needed downstream.
package mentiongraph

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrEmptyHandle is returned by AddNode and AddMention when a handle
	// is empty after canonicalization. All nodes need an identity.
	ErrEmptyHandle = errors.New("handle must not be empty")
)

// Node is a network participant. Handle is the canonical identity;
// Label preserves the first-seen original spelling for display and export.
type Node struct {
	Handle string `json:"handle" bson:"handle"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the handle.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.Handle
}

// Edge is a directed weighted connection: From mentioned To, Weight times.
type Edge struct {
	From   string `json:"from" bson:"from"`
	To     string `json:"to" bson:"to"`
	Weight int    `json:"weight" bson:"weight"`
}

type edgeKey struct {
	from, to string
}

// Graph is a directed multigraph aggregated into weighted edges. The zero
// value is not usable - use New. Graph is not safe for concurrent mutation;
// it is mutated only during the single-pass build and read thereafter.
type Graph struct {
	nodes   map[string]*Node
	weights map[edgeKey]int
	outDeg  map[string]int // weighted out-degree
	inDeg   map[string]int // weighted in-degree
}

// New creates an empty mention graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		weights: make(map[edgeKey]int),
		outDeg:  make(map[string]int),
		inDeg:   make(map[string]int),
	}
}

// AddNode ensures a node exists for handle, recording label as its display
// form if the node is new. Handles are deduplicated: a handle appearing as
// both author and mention stays a single node, keeping its first label.
func (g *Graph) AddNode(handle, label string) error {
	handle = strings.ToLower(strings.TrimSpace(handle))
	if handle == "" {
		return ErrEmptyHandle
	}
	if _, ok := g.nodes[handle]; !ok {
		g.nodes[handle] = &Node{Handle: handle, Label: label}
	}
	return nil
}

// AddMention records one author→mentioned occurrence, creating both nodes
// as needed and incrementing the edge weight. Two tweets with the same
// author/mention pair accumulate into the same edge.
func (g *Graph) AddMention(author, mentioned string) error {
	if err := g.AddNode(author, author); err != nil {
		return err
	}
	if err := g.AddNode(mentioned, mentioned); err != nil {
		return err
	}
	author = strings.ToLower(strings.TrimSpace(author))
	mentioned = strings.ToLower(strings.TrimSpace(mentioned))
	g.weights[edgeKey{author, mentioned}]++
	g.outDeg[author]++
	g.inDeg[mentioned]++
	return nil
}

// SetWeight sets the weight of the edge from→to directly, creating both
// nodes if needed. Used by the GraphML importer; AddMention is the path
// the builder takes. A non-positive weight removes the edge.
func (g *Graph) SetWeight(from, to string, weight int) error {
	if err := g.AddNode(from, from); err != nil {
		return err
	}
	if err := g.AddNode(to, to); err != nil {
		return err
	}
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	key := edgeKey{from, to}
	if old, ok := g.weights[key]; ok {
		g.outDeg[from] -= old
		g.inDeg[to] -= old
		delete(g.weights, key)
	}
	if weight > 0 {
		g.weights[key] = weight
		g.outDeg[from] += weight
		g.inDeg[to] += weight
	}
	return nil
}

// SetLabel overrides the display label of an existing node.
// No-op if the node does not exist.
func (g *Graph) SetLabel(handle, label string) {
	if n, ok := g.nodes[strings.ToLower(strings.TrimSpace(handle))]; ok {
		n.Label = label
	}
}

// HasNode reports whether a node exists for the (canonicalized) handle.
func (g *Graph) HasNode(handle string) bool {
	_, ok := g.nodes[strings.ToLower(strings.TrimSpace(handle))]
	return ok
}

// Node returns the node for handle and true, or a zero Node and false.
func (g *Graph) Node(handle string) (Node, bool) {
	n, ok := g.nodes[strings.ToLower(strings.TrimSpace(handle))]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Weight returns the weight of the edge from→to, or 0 if absent.
func (g *Graph) Weight(from, to string) int {
	return g.weights[edgeKey{strings.ToLower(from), strings.ToLower(to)}]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct directed edges
// (weighted edges count once regardless of weight).
func (g *Graph) EdgeCount() int { return len(g.weights) }

// OutDegree returns the weighted out-degree of handle: the total number of
// mention occurrences authored by it. 0 if the node does not exist.
func (g *Graph) OutDegree(handle string) int {
	return g.outDeg[strings.ToLower(strings.TrimSpace(handle))]
}

// InDegree returns the weighted in-degree of handle: the total number of
// times it was mentioned. 0 if the node does not exist.
func (g *Graph) InDegree(handle string) int {
	return g.inDeg[strings.ToLower(strings.TrimSpace(handle))]
}

// TotalDegree returns InDegree + OutDegree.
func (g *Graph) TotalDegree(handle string) int {
	return g.InDegree(handle) + g.OutDegree(handle)
}

// Nodes returns all nodes sorted by handle. Sorting makes every consumer
// (metrics, export, API responses) deterministic for the same corpus.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, *n)
	}
	slices.SortFunc(nodes, func(a, b Node) int {
		return strings.Compare(a.Handle, b.Handle)
	})
	return nodes
}

// Edges returns all weighted edges sorted by (from, to).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.weights))
	for k, w := range g.weights {
		edges = append(edges, Edge{From: k.from, To: k.to, Weight: w})
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})
	return edges
}
