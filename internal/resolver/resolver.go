// Package resolver walks every definition's argument list and every alias,
// resolving references to concrete definitions and producing the dependency
// edge set consumed by layer validation.
//
// Cyclic service references are permitted structurally; they are resolved
// lazily by the instantiation runtime. Cyclic alias chains are fatal: an
// alias must resolve to exactly one concrete target.
package resolver

import (
	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/models"
	"github.com/stratadi/strata/internal/registry"
)

// Result holds the resolver's output artifacts
type Result struct {
	// Aliases maps every alias id to the concrete definition id its chain
	// ends at. Aliases caught in a cycle or dangling are absent.
	Aliases map[string]string
	// Graph is the dependency edge set implied by constructor-argument
	// references, with aliases already followed.
	Graph *models.DependencyGraph
}

// Resolve resolves the full registry. Every failure is collected into
// diags; resolution continues past failures so one run reports everything.
func Resolve(reg *registry.Registry, diags *errors.Diagnostics) *Result {
	res := &Result{
		Aliases: make(map[string]string),
		Graph:   models.NewDependencyGraph(),
	}

	for _, id := range reg.AliasIDs() {
		concrete, err := resolveChain(reg, id)
		if err != nil {
			diags.Add(err)
			continue
		}
		res.Aliases[id] = concrete
	}

	reg.ForEachDefinition(func(def models.ServiceDefinition) {
		for _, arg := range def.Args {
			for _, ref := range arg.References() {
				concrete, ok := resolveRef(reg, res.Aliases, ref)
				if !ok {
					diags.Add(errors.NewUnknownTarget(def.ID, ref))
					continue
				}
				res.Graph.Add(def.ID, concrete)
			}
		}
	})

	return res
}

// resolveChain follows an alias chain to a fixed point, failing on a cycle
// or a dangling target
func resolveChain(reg *registry.Registry, id string) (string, errors.StrataError) {
	seen := map[string]bool{}
	chain := []string{id}
	current := id
	for {
		if seen[current] {
			return "", errors.NewCyclicAlias(chain)
		}
		seen[current] = true

		a, ok := reg.AliasFor(current)
		if !ok {
			// end of the chain: must land on a definition
			if !reg.HasDefinition(current) {
				return "", errors.NewUnknownTarget(chain[len(chain)-2], current)
			}
			return current, nil
		}
		current = a.Target
		chain = append(chain, current)
	}
}

// resolveRef resolves an argument reference through aliases to a concrete
// definition id
func resolveRef(reg *registry.Registry, aliases map[string]string, ref string) (string, bool) {
	if reg.HasDefinition(ref) {
		return ref, true
	}
	if concrete, ok := aliases[ref]; ok {
		return concrete, true
	}
	return "", false
}
