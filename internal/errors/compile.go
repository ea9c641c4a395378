package errors

import (
	"fmt"
	"strings"
)

// DuplicateIDError is returned when a definition id is registered twice
// without an explicit override
type DuplicateIDError struct {
	*BaseError
	ID string
}

// NewDuplicateID creates a DuplicateIDError for the given id
func NewDuplicateID(id string) *DuplicateIDError {
	base := New(DuplicateIDCode, fmt.Sprintf("definition %q is already registered", id), id)
	base.WithSuggestion("use Override to intentionally replace the previous definition")
	base.WithSuggestion("use Decorates to wrap the existing definition instead of discarding it")
	return &DuplicateIDError{BaseError: base, ID: id}
}

// UnknownTargetError is returned when an alias target, decoration target or
// argument reference does not resolve to a registered definition
type UnknownTargetError struct {
	*BaseError
	Source string // id holding the dangling reference
	Target string // the id that could not be resolved
}

// NewUnknownTarget creates an UnknownTargetError for a dangling reference
func NewUnknownTarget(source, target string) *UnknownTargetError {
	base := New(UnknownTargetCode,
		fmt.Sprintf("%q refers to unknown definition %q", source, target), source, target)
	base.WithSuggestion(fmt.Sprintf("register a definition or alias named %q", target))
	return &UnknownTargetError{BaseError: base, Source: source, Target: target}
}

// CyclicAliasError is returned when an alias chain revisits an id before
// reaching a concrete definition
type CyclicAliasError struct {
	*BaseError
	Chain []string // the alias ids in traversal order, ending at the repeated id
}

// NewCyclicAlias creates a CyclicAliasError for the given chain
func NewCyclicAlias(chain []string) *CyclicAliasError {
	base := New(CyclicAliasCode,
		fmt.Sprintf("alias chain never reaches a definition: %s", strings.Join(chain, " -> ")),
		chain...)
	base.WithSuggestion("point one alias in the chain at a concrete definition")
	return &CyclicAliasError{BaseError: base, Chain: chain}
}

// DuplicateInnerIDError is returned when a decoration would rename the
// decorated predecessor onto an id that is already occupied
type DuplicateInnerIDError struct {
	*BaseError
	Decorator string
	InnerID   string
}

// NewDuplicateInnerID creates a DuplicateInnerIDError
func NewDuplicateInnerID(decorator, innerID string) *DuplicateInnerIDError {
	base := New(DuplicateInnerIDCode,
		fmt.Sprintf("inner id %q computed for decorator %q is already occupied", innerID, decorator),
		decorator, innerID)
	base.WithSuggestion("set a distinct InnerName on one of the decorators")
	return &DuplicateInnerIDError{BaseError: base, Decorator: decorator, InnerID: innerID}
}

// LayerPair is one (consumerLayer, dependencyLayer) combination that no
// registered rule permitted
type LayerPair struct {
	Consumer   string
	Dependency string
}

// String returns a readable form of the pair
func (p LayerPair) String() string {
	return fmt.Sprintf("%s -> %s", p.Consumer, p.Dependency)
}

// InvalidLayerError is returned when a dependency edge is not permitted by
// any layer rule
type InvalidLayerError struct {
	*BaseError
	ConsumerID   string
	DependencyID string
	Pairs        []LayerPair // every unmatched layer pair, for actionable diagnostics
}

// NewInvalidLayer creates an InvalidLayerError for the given edge
func NewInvalidLayer(consumerID, dependencyID string, pairs []LayerPair) *InvalidLayerError {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.String()
	}
	base := New(InvalidLayerCode,
		fmt.Sprintf("service %q may not depend on %q: no rule permits layer pair(s) %s",
			consumerID, dependencyID, strings.Join(parts, ", ")),
		consumerID, dependencyID)
	base.WithSuggestion("add an explicit layer rule for one of the listed pairs")
	base.WithSuggestion("layer rules are not transitive; every edge needs its own rule")
	return &InvalidLayerError{
		BaseError:    base,
		ConsumerID:   consumerID,
		DependencyID: dependencyID,
		Pairs:        pairs,
	}
}

// NewInvalidDefinition creates an InvalidDefinitionError-coded BaseError for
// a definition that violates a structural invariant
func NewInvalidDefinition(id, issue string) *BaseError {
	return New(InvalidDefinitionCode, fmt.Sprintf("definition %q %s", id, issue), id)
}
