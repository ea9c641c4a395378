// Package layers stores layer-dependency permission rules and validates
// every inter-service edge against them.
//
// Rule lookup is deliberately not transitive: permitting controller->domain
// and domain->infrastructure does not make a direct
// controller->infrastructure edge legal. Each edge is checked independently
// against explicit rules, forcing explicit architectural decisions instead
// of silently allowed bypass chains.
package layers

import (
	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/models"
)

// LayerLookup returns the layer-tag set of the definition with the given id
type LayerLookup func(id string) models.LayerSet

// Engine holds the ordered rule list. The unconditioned default -> default
// rule is always present.
type Engine struct {
	rules []models.LayerRule
}

// NewEngine creates an engine seeded with the default rule followed by the
// given rules in order
func NewEngine(rules ...models.LayerRule) *Engine {
	e := &Engine{rules: []models.LayerRule{models.DefaultRule()}}
	e.rules = append(e.rules, rules...)
	return e
}

// AddRule appends a rule to the engine
func (e *Engine) AddRule(rule models.LayerRule) {
	e.rules = append(e.rules, rule)
}

// Rules returns a copy of the rule list in evaluation order
func (e *Engine) Rules() []models.LayerRule {
	out := make([]models.LayerRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Validate checks every edge of the graph. An edge is legal if at least one
// (consumerLayer, dependencyLayer) pair has a registered rule whose
// predicate passes (evaluated against the consumer's full layer set), or
// which is unconditioned. Multiple conditioned rules for the same pair are
// ORed: any single passing rule legalizes the pair.
//
// Illegal edges are reported with every unmatched layer pair so the
// violation is actionable.
func (e *Engine) Validate(graph *models.DependencyGraph, lookup LayerLookup, diags *errors.Diagnostics) {
	for _, edge := range graph.Edges() {
		e.validateEdge(edge, lookup, diags)
	}
}

func (e *Engine) validateEdge(edge models.Edge, lookup LayerLookup, diags *errors.Diagnostics) {
	consumerLayers := lookup(edge.Consumer)
	dependencyLayers := lookup(edge.Dependency)

	var unmatched []errors.LayerPair
	for _, cl := range consumerLayers.Names() {
		for _, dl := range dependencyLayers.Names() {
			if e.permits(cl, dl, consumerLayers) {
				return
			}
			unmatched = append(unmatched, errors.LayerPair{Consumer: cl, Dependency: dl})
		}
	}

	diags.Add(errors.NewInvalidLayer(edge.Consumer, edge.Dependency, unmatched))
}

// permits reports whether any rule allows the (cl, dl) pair for a consumer
// carrying the given layer set. A rule with a child scope only applies to
// consumers carrying that layer.
func (e *Engine) permits(cl, dl string, consumerLayers models.LayerSet) bool {
	for _, rule := range e.rules {
		if rule.Dependent != cl || rule.Dependency != dl {
			continue
		}
		if rule.Child != "" && !consumerLayers.Has(rule.Child) {
			continue
		}
		if rule.Predicate == nil || rule.Predicate(consumerLayers) {
			return true
		}
	}
	return false
}
