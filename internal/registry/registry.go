package registry

import (
	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/models"
	"github.com/stratadi/strata/internal/utils"
)

// Registry holds raw service definitions and aliases keyed by unique id.
// It is pure storage plus identity management: edges are never validated
// here, and alias targets are only checked lazily during compilation.
type Registry struct {
	definitions *utils.Registry[string, models.ServiceDefinition]
	aliases     *utils.Registry[string, models.Alias]
}

// New creates an empty registry
func New() *Registry {
	defs := utils.NewRegistry[string, models.ServiceDefinition]("definition id")
	defs.SetValidator(utils.NotEmptyKeyValidator[models.ServiceDefinition]("definition id"))
	aliases := utils.NewRegistry[string, models.Alias]("alias id")
	aliases.SetValidator(utils.NotEmptyKeyValidator[models.Alias]("alias id"))
	return &Registry{definitions: defs, aliases: aliases}
}

// Register stores a definition under its id. It fails with DuplicateIDError
// when the id is already taken; callers that mean to replace an existing
// definition must say so through Override.
func (r *Registry) Register(def models.ServiceDefinition) error {
	if r.definitions.Has(def.ID) {
		return errors.NewDuplicateID(def.ID)
	}
	return r.definitions.Register(def.ID, def)
}

// Override stores a definition under its id, discarding any previous
// definition with no linkage to it. Most of the time, when the same id is
// configured twice, last-wins is exactly what the caller wants; decoration
// is the mechanism for keeping the predecessor reachable.
func (r *Registry) Override(def models.ServiceDefinition) error {
	if def.ID == "" {
		return r.definitions.Register(def.ID, def) // surfaces the empty-key error
	}
	r.definitions.Set(def.ID, def)
	return nil
}

// Alias registers an alternate id resolving to the target's identity.
// The target is not required to exist yet; dangling targets are caught
// before compilation completes.
func (r *Registry) Alias(a models.Alias) error {
	if a.ID == "" || a.Target == "" {
		return errors.Newf(errors.ConfigCode, "alias needs both an id and a target")
	}
	r.aliases.Set(a.ID, a)
	return nil
}

// Definition returns the definition registered under id
func (r *Registry) Definition(id string) (models.ServiceDefinition, bool) {
	return r.definitions.Get(id)
}

// AliasFor returns the alias registered under id
func (r *Registry) AliasFor(id string) (models.Alias, bool) {
	return r.aliases.Get(id)
}

// HasDefinition reports whether a definition exists under id
func (r *Registry) HasDefinition(id string) bool {
	return r.definitions.Has(id)
}

// HasAlias reports whether an alias exists under id
func (r *Registry) HasAlias(id string) bool {
	return r.aliases.Has(id)
}

// Has reports whether id names either a definition or an alias
func (r *Registry) Has(id string) bool {
	return r.definitions.Has(id) || r.aliases.Has(id)
}

// RemoveDefinition deletes the definition under id, returning whether it existed
func (r *Registry) RemoveDefinition(id string) bool {
	return r.definitions.Delete(id)
}

// RemoveAlias deletes the alias under id, returning whether it existed
func (r *Registry) RemoveAlias(id string) bool {
	return r.aliases.Delete(id)
}

// DefinitionIDs returns definition ids in registration order
func (r *Registry) DefinitionIDs() []string {
	return r.definitions.Keys()
}

// AliasIDs returns alias ids in registration order
func (r *Registry) AliasIDs() []string {
	return r.aliases.Keys()
}

// ForEachDefinition visits definitions in registration order
func (r *Registry) ForEachDefinition(fn func(models.ServiceDefinition)) {
	r.definitions.ForEach(func(_ string, def models.ServiceDefinition) {
		fn(def)
	})
}

// ForEachAlias visits aliases in registration order
func (r *Registry) ForEachAlias(fn func(models.Alias)) {
	r.aliases.ForEach(func(_ string, a models.Alias) {
		fn(a)
	})
}

// Size returns the number of registered definitions
func (r *Registry) Size() int {
	return r.definitions.Size()
}

// Clone returns an independent copy. Compilation works on a clone so
// repeated runs over identical inputs stay idempotent.
func (r *Registry) Clone() *Registry {
	return &Registry{
		definitions: r.definitions.Clone(),
		aliases:     r.aliases.Clone(),
	}
}
