package utils

import (
	"fmt"
	"sync"
)

// RegistryValidator is a function that validates a key-value pair before registration
type RegistryValidator[K comparable, V any] func(key K, value V, existing map[K]V) error

// Registry provides a generic, thread-safe registry that remembers insertion
// order, so iteration is deterministic across compilation runs.
type Registry[K comparable, V any] struct {
	mu            sync.RWMutex
	items         map[K]V
	order         []K
	validator     RegistryValidator[K, V]
	keyDescriptor string // e.g. "definition id", "alias id"
}

// NewRegistry creates a new registry with the specified key description
func NewRegistry[K comparable, V any](keyDesc string) *Registry[K, V] {
	return &Registry[K, V]{
		items:         make(map[K]V),
		keyDescriptor: keyDesc,
	}
}

// SetValidator sets the validation function for this registry
func (r *Registry[K, V]) SetValidator(validator RegistryValidator[K, V]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validator = validator
}

// Register adds an item to the registry with validation
func (r *Registry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.validator != nil {
		if err := r.validator(key, value, r.items); err != nil {
			return err
		}
	}
	r.set(key, value)
	return nil
}

// Set stores an item without validation, replacing any existing entry.
// A replaced key keeps its original position in the iteration order.
func (r *Registry[K, V]) Set(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(key, value)
}

func (r *Registry[K, V]) set(key K, value V) {
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = value
}

// Get retrieves an item from the registry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// GetOrError retrieves an item or returns an error if not found
func (r *Registry[K, V]) GetOrError(key K) (V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	if !exists {
		var zero V
		return zero, fmt.Errorf("%s '%v' is not registered", r.keyDescriptor, key)
	}
	return value, nil
}

// Has checks if a key exists in the registry
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// Keys returns all keys in insertion order
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// ForEach applies a function to each item in insertion order
func (r *Registry[K, V]) ForEach(fn func(K, V)) {
	r.mu.RLock()
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	items := make(map[K]V, len(r.items))
	for k, v := range r.items {
		items[k] = v
	}
	r.mu.RUnlock()

	for _, k := range keys {
		fn(k, items[k])
	}
}

// Delete removes an item from the registry
func (r *Registry[K, V]) Delete(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; !exists {
		return false
	}
	delete(r.items, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Size returns the number of items in the registry
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Clone returns a copy of the registry sharing the validator but not the storage
func (r *Registry[K, V]) Clone() *Registry[K, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cp := &Registry[K, V]{
		items:         make(map[K]V, len(r.items)),
		order:         make([]K, len(r.order)),
		validator:     r.validator,
		keyDescriptor: r.keyDescriptor,
	}
	for k, v := range r.items {
		cp.items[k] = v
	}
	copy(cp.order, r.order)
	return cp
}

// NotEmptyKeyValidator validates that a string key is not empty
func NotEmptyKeyValidator[V any](keyDesc string) RegistryValidator[string, V] {
	return func(key string, value V, existing map[string]V) error {
		if key == "" {
			return fmt.Errorf("%s cannot be empty", keyDesc)
		}
		return nil
	}
}

// ChainValidators combines multiple validators into one
func ChainValidators[K comparable, V any](validators ...RegistryValidator[K, V]) RegistryValidator[K, V] {
	return func(key K, value V, existing map[K]V) error {
		for _, validator := range validators {
			if validator != nil {
				if err := validator(key, value, existing); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
