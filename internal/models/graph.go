package models

import "fmt"

// Edge is one directed dependency edge: the consumer's constructor
// references the dependency
type Edge struct {
	Consumer   string
	Dependency string
}

// String returns a readable form of the edge
func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.Consumer, e.Dependency)
}

// DependencyGraph is the derived set of directed edges implied by
// constructor-argument references, computed after decoration rewriting.
// Edges appear in definition registration order, deduplicated.
type DependencyGraph struct {
	edges []Edge
	seen  map[Edge]bool
}

// NewDependencyGraph creates an empty dependency graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{seen: make(map[Edge]bool)}
}

// Add records an edge, ignoring duplicates
func (g *DependencyGraph) Add(consumer, dependency string) {
	e := Edge{Consumer: consumer, Dependency: dependency}
	if g.seen[e] {
		return
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
}

// Edges returns the edges in insertion order
func (g *DependencyGraph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Len returns the number of distinct edges
func (g *DependencyGraph) Len() int {
	return len(g.edges)
}
