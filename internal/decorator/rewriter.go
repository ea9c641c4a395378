// Package decorator implements the decorate-and-rename protocol: a new
// definition transparently replaces an existing one while the replaced
// implementation stays reachable under a derived inner id.
package decorator

import (
	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/models"
	"github.com/stratadi/strata/internal/registry"
)

// Rewriter applies every declared decoration to the registry. It must run
// before reference resolution, since decoration changes which id a given
// name is bound to.
type Rewriter struct{}

// NewRewriter creates a new decoration rewriter
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Rewrite processes decorators in registration order, mutating the registry
// in place. Declaration order is the stacking order: when two decorators
// target the same id, the second wraps the first.
//
// For each decorator d targeting t:
//  1. the inner id is d.InnerName, or d's own id plus ".inner"; it derives
//     from the decorator, never the target, so stacked decorators cannot
//     collide
//  2. the definition currently bound to t is renamed to the inner id, body
//     unchanged
//  3. d's body is bound to t, taking over t's pre-decoration visibility so
//     external observers keep their expectations about reachability
//  4. when d's declared id differs from t, an implicit alias d -> t is
//     created, likewise carrying t's pre-decoration visibility
//
// Every failure is collected into diags; a failed decorator leaves the
// registry untouched for its target.
func (w *Rewriter) Rewrite(reg *registry.Registry, diags *errors.Diagnostics) {
	var decorators []models.ServiceDefinition
	reg.ForEachDefinition(func(def models.ServiceDefinition) {
		if def.IsDecorator() {
			decorators = append(decorators, def)
		}
	})

	for _, d := range decorators {
		w.apply(reg, d, diags)
	}
}

func (w *Rewriter) apply(reg *registry.Registry, d models.ServiceDefinition, diags *errors.Diagnostics) {
	target := d.Decorates
	if target == d.ID {
		diags.Add(errors.NewInvalidDefinition(d.ID, "cannot decorate itself"))
		return
	}
	current, ok := reg.Definition(target)
	if !ok {
		diags.Add(errors.NewUnknownTarget(d.ID, target))
		return
	}

	innerID := d.InnerID()
	if reg.HasDefinition(innerID) || reg.HasAlias(innerID) {
		diags.Add(errors.NewDuplicateInnerID(d.ID, innerID))
		return
	}

	originalVisibility := current.Visibility

	// Rename the current binding of the target to the inner id.
	inner := current
	inner.ID = innerID
	if err := reg.Override(inner); err != nil {
		diags.Add(errors.Wrap(errors.UnknownErrorCode, "renaming decorated definition", err))
		return
	}

	// Bind the decorator's body to the target id. The decoration fields are
	// consumed here; the bound body is an ordinary definition afterwards.
	body := d
	body.ID = target
	body.Decorates = ""
	body.InnerName = ""
	body.Visibility = originalVisibility
	if err := reg.Override(body); err != nil {
		diags.Add(errors.Wrap(errors.UnknownErrorCode, "binding decorator body", err))
		return
	}

	if d.ID != target {
		reg.RemoveDefinition(d.ID)
		if err := reg.Alias(models.Alias{ID: d.ID, Target: target, Visibility: originalVisibility}); err != nil {
			diags.Add(errors.Wrap(errors.ConfigCode, "creating implicit decorator alias", err))
		}
	}
}
