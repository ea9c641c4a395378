// Package compiler orchestrates decoration rewriting, reference resolution
// and layer validation into a final, immutable, validated container
// description ready for instantiation.
package compiler

import (
	"github.com/stratadi/strata/internal/decorator"
	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/layers"
	"github.com/stratadi/strata/internal/models"
	"github.com/stratadi/strata/internal/registry"
	"github.com/stratadi/strata/internal/resolver"
)

// Compiler runs the compilation phases in order: decoration must precede
// resolution (it changes which id a name is bound to), and resolution must
// precede layer validation (it produces the edge set).
type Compiler struct {
	registry *registry.Registry
	engine   *layers.Engine
}

// New creates a compiler over the given registry and rule engine. A nil
// engine means only the default layer rule applies.
func New(reg *registry.Registry, engine *layers.Engine) *Compiler {
	if engine == nil {
		engine = layers.NewEngine()
	}
	return &Compiler{registry: reg, engine: engine}
}

// Compile produces the compiled container description, or the full batch of
// diagnostics when anything is wrong. It never stops at the first failure:
// each phase runs over everything it can still make sense of, so one run
// reports every detected problem.
//
// Compilation works on a clone of the registry, so it is idempotent:
// running it repeatedly over identical inputs yields identical output, and
// the caller's registry is never mutated.
func (c *Compiler) Compile() (*models.CompiledContainer, error) {
	work := c.registry.Clone()
	diags := errors.NewDiagnostics()

	c.checkShapes(work, diags)

	decorator.NewRewriter().Rewrite(work, diags)

	res := resolver.Resolve(work, diags)

	// Edges only exist for references that resolved, so definitions hit by
	// alias cycles or dangling targets are already excluded: layer
	// validation runs on the remaining, meaningful subgraph.
	c.engine.Validate(res.Graph, func(id string) models.LayerSet {
		def, _ := work.Definition(id)
		return def.LayerTags()
	}, diags)

	if !diags.IsEmpty() {
		return nil, diags
	}

	return c.freeze(work, res), nil
}

// checkShapes validates per-definition structural invariants before any
// rewriting happens
func (c *Compiler) checkShapes(reg *registry.Registry, diags *errors.Diagnostics) {
	reg.ForEachDefinition(func(def models.ServiceDefinition) {
		if !def.Synthetic {
			return
		}
		// A synthetic definition is a pure placeholder: its instance is
		// supplied externally, so a construction recipe is a contradiction.
		// Each violation is reported separately.
		if def.Class != "" {
			diags.Add(errors.NewInvalidDefinition(def.ID, "is synthetic but declares a class"))
		}
		if len(def.Args) > 0 {
			diags.Add(errors.NewInvalidDefinition(def.ID, "is synthetic but declares arguments"))
		}
		if def.File != "" {
			diags.Add(errors.NewInvalidDefinition(def.ID, "is synthetic but declares a file"))
		}
		if def.IsDecorator() {
			diags.Add(errors.NewInvalidDefinition(def.ID, "is synthetic but declares a decoration target"))
		}
	})
}

// freeze turns the rewritten registry and resolver output into the
// immutable compiled description
func (c *Compiler) freeze(reg *registry.Registry, res *resolver.Result) *models.CompiledContainer {
	services := make(map[string]models.CompiledService, reg.Size())
	reg.ForEachDefinition(func(def models.ServiceDefinition) {
		services[def.ID] = models.CompiledService{
			Definition: def,
			Public:     def.Visibility == models.VisibilityPublic,
			Synthetic:  def.Synthetic,
		}
	})

	aliases := make(map[string]models.Alias)
	reg.ForEachAlias(func(a models.Alias) {
		if a.InheritVisibility {
			if concrete, ok := res.Aliases[a.ID]; ok {
				a.Visibility = svcVisibility(services, concrete)
			}
			a.InheritVisibility = false
		}
		aliases[a.ID] = a
	})

	return models.NewCompiledContainer(services, aliases, res.Graph.Edges())
}

func svcVisibility(services map[string]models.CompiledService, id string) models.Visibility {
	if svc, ok := services[id]; ok && !svc.Public {
		return models.VisibilityPrivate
	}
	return models.VisibilityPublic
}
