package models

import "sort"

// LayerSet is the set of layer tags attached to a definition
type LayerSet map[string]bool

// NewLayerSet creates a layer set from the given names
func NewLayerSet(names ...string) LayerSet {
	s := make(LayerSet, len(names))
	for _, n := range names {
		if n != "" {
			s[n] = true
		}
	}
	return s
}

// Has returns whether the named layer is in the set
func (s LayerSet) Has(name string) bool {
	return s[name]
}

// Names returns the layer names in sorted order
func (s LayerSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the set
func (s LayerSet) Clone() LayerSet {
	if s == nil {
		return nil
	}
	cp := make(LayerSet, len(s))
	for n := range s {
		cp[n] = true
	}
	return cp
}

// Predicate is a boolean condition evaluated against the layer-tag set of
// the dependent (consumer) definition. Predicates are injected into the
// rule engine as compiled functions; the engine never sees expression text.
type Predicate func(consumerLayers LayerSet) bool

// LayerRule permits a dependent layer to depend on a dependency layer,
// optionally scoped to a child name and guarded by a predicate.
type LayerRule struct {
	Child      string    // optional scope: rule only applies when the consumer carries this layer
	Dependent  string    // layer of the consumer side of the edge
	Dependency string    // layer of the dependency side of the edge
	Expr       string    // source text of the predicate, empty when unconditioned
	Predicate  Predicate // nil when unconditioned
}

// DefaultRule is the unconditioned default -> default rule that is always
// present in a rule engine
func DefaultRule() LayerRule {
	return LayerRule{Dependent: DefaultLayer, Dependency: DefaultLayer}
}
