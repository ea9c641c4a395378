package models

import "sort"

// CompiledService is one entry of the compiled container description
type CompiledService struct {
	Definition ServiceDefinition
	Public     bool // accessibility from outside the container
	Synthetic  bool // reservation with no backing definition body
}

// CompiledContainer is the immutable output of a successful compilation:
// per-id resolved definitions, accessibility flags, synthetic reservations,
// resolved aliases, and the validated dependency edge set.
//
// All accessors return copies; the description cannot be mutated after
// construction, so it is safe to share between container instances.
type CompiledContainer struct {
	services map[string]CompiledService
	aliases  map[string]Alias
	edges    []Edge
}

// NewCompiledContainer freezes the given compilation artifacts. The inputs
// are copied, so the compiler's working state can be discarded afterwards.
func NewCompiledContainer(services map[string]CompiledService, aliases map[string]Alias, edges []Edge) *CompiledContainer {
	c := &CompiledContainer{
		services: make(map[string]CompiledService, len(services)),
		aliases:  make(map[string]Alias, len(aliases)),
		edges:    make([]Edge, len(edges)),
	}
	for id, svc := range services {
		svc.Definition = svc.Definition.Clone()
		c.services[id] = svc
	}
	for id, a := range aliases {
		c.aliases[id] = a
	}
	copy(c.edges, edges)
	return c
}

// Resolve follows aliases from the given id to the concrete service id.
// The second return is false when the id names neither a service nor an
// alias chain ending at one. The compiler rejects cyclic alias chains, but
// a hand-built description with one resolves to false rather than looping.
func (c *CompiledContainer) Resolve(id string) (string, bool) {
	seen := make(map[string]bool)
	for {
		if _, ok := c.services[id]; ok {
			return id, true
		}
		if seen[id] {
			return "", false
		}
		seen[id] = true
		a, ok := c.aliases[id]
		if !ok {
			return "", false
		}
		id = a.Target
	}
}

// Service returns the compiled entry for the given id, following aliases
func (c *CompiledContainer) Service(id string) (CompiledService, bool) {
	concrete, ok := c.Resolve(id)
	if !ok {
		return CompiledService{}, false
	}
	svc := c.services[concrete]
	svc.Definition = svc.Definition.Clone()
	return svc, true
}

// Has reports whether the id resolves to a compiled service
func (c *CompiledContainer) Has(id string) bool {
	_, ok := c.Resolve(id)
	return ok
}

// IsPublic reports whether the given id may be retrieved from outside the
// container. For an alias the alias's own visibility decides, regardless
// of the target's.
func (c *CompiledContainer) IsPublic(id string) bool {
	if a, ok := c.aliases[id]; ok {
		return a.Visibility == VisibilityPublic
	}
	if svc, ok := c.services[id]; ok {
		return svc.Public
	}
	return false
}

// ServiceIDs returns the concrete service ids in sorted order
func (c *CompiledContainer) ServiceIDs() []string {
	ids := make([]string, 0, len(c.services))
	for id := range c.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AliasIDs returns the alias ids in sorted order
func (c *CompiledContainer) AliasIDs() []string {
	ids := make([]string, 0, len(c.aliases))
	for id := range c.aliases {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Edges returns the validated dependency edge set
func (c *CompiledContainer) Edges() []Edge {
	out := make([]Edge, len(c.edges))
	copy(out, c.edges)
	return out
}
