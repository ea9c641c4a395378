// Package strata is the public runtime surface over a compiled container
// description: it retrieves public services, accepts externally supplied
// instances for synthetic ids, and enforces the load-exactly-once contract
// for definition files.
//
// Construction stays explicit: consumers register plain factory functions
// per service id. There is no reflection-based autowiring.
package strata

import (
	"sync"

	"github.com/google/uuid"

	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/models"
)

// Factory constructs one service instance. Factories may retrieve their
// dependencies from the container they receive.
type Factory func(c *Container) (any, error)

// FileLoader loads one definition file. It is called at most once per path
// per container instance.
type FileLoader func(path string) error

// Container owns the private instance state for one compiled description.
// The description itself is immutable and may be shared across containers.
type Container struct {
	id       string
	compiled *models.CompiledContainer

	mu         sync.Mutex
	instances  map[string]any
	synthetics map[string]any
	factories  map[string]Factory

	fileMu      sync.Mutex
	loadedFiles map[string]bool
	fileLoader  FileLoader
}

// Option configures a container at construction time
type Option func(*Container)

// WithFactory registers the factory constructing the service with the given id
func WithFactory(id string, f Factory) Option {
	return func(c *Container) {
		c.factories[id] = f
	}
}

// WithFileLoader sets the loader invoked for definitions carrying a file path
func WithFileLoader(loader FileLoader) Option {
	return func(c *Container) {
		c.fileLoader = loader
	}
}

// NewContainer creates a runtime container over a compiled description.
// Each container gets a unique instance id for log and error correlation;
// the compiled description stays deterministic.
func NewContainer(compiled *models.CompiledContainer, opts ...Option) *Container {
	c := &Container{
		id:          uuid.NewString(),
		compiled:    compiled,
		instances:   make(map[string]any),
		synthetics:  make(map[string]any),
		factories:   make(map[string]Factory),
		loadedFiles: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InstanceID returns the unique id of this container instance
func (c *Container) InstanceID() string {
	return c.id
}

// Has reports whether the id resolves to a service that is retrievable
// from outside the container
func (c *Container) Has(id string) bool {
	return c.compiled.Has(id) && c.compiled.IsPublic(id)
}

// Get retrieves the service instance for the given id, following aliases.
//
// Requesting a private id is a hard PrivateServiceError, never a fallback.
// A synthetic id fails with SyntheticNotInitializedError until Inject has
// supplied its instance. Other services are built once by their registered
// factory and memoized; the definition's file, if any, is loaded first.
func (c *Container) Get(id string) (any, error) {
	svc, ok := c.compiled.Service(id)
	if !ok {
		return nil, errors.Newf(errors.UnknownTargetCode, "no service registered as %q", id)
	}
	if !c.compiled.IsPublic(id) {
		return nil, errors.NewPrivateService(id)
	}
	return c.get(id, svc)
}

// Dependency retrieves a service on behalf of a factory. Visibility is not
// checked: private services are exactly the ones that are only reachable
// as dependencies.
func (c *Container) Dependency(id string) (any, error) {
	svc, ok := c.compiled.Service(id)
	if !ok {
		return nil, errors.Newf(errors.UnknownTargetCode, "no service registered as %q", id)
	}
	return c.get(id, svc)
}

func (c *Container) get(id string, svc models.CompiledService) (any, error) {
	concrete, _ := c.compiled.Resolve(id)

	if svc.Synthetic {
		c.mu.Lock()
		instance, ok := c.synthetics[concrete]
		c.mu.Unlock()
		if !ok {
			return nil, errors.NewSyntheticNotInitialized(concrete)
		}
		return instance, nil
	}

	c.mu.Lock()
	if instance, ok := c.instances[concrete]; ok {
		c.mu.Unlock()
		return instance, nil
	}
	factory, ok := c.factories[concrete]
	c.mu.Unlock()
	if !ok {
		return nil, errors.NewMissingFactory(concrete)
	}

	if svc.Definition.File != "" {
		if err := c.ensureFileLoaded(svc.Definition.File); err != nil {
			return nil, err
		}
	}

	// The factory runs outside the lock so it can retrieve its own
	// dependencies through the container.
	instance, err := factory(c)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.instances[concrete]; ok {
		return existing, nil
	}
	c.instances[concrete] = instance
	return instance, nil
}

// Inject supplies the backing instance for a synthetic id. It may be called
// again to replace the instance per the external lifecycle. Injecting a
// non-synthetic id is an error.
func (c *Container) Inject(id string, instance any) error {
	svc, ok := c.compiled.Service(id)
	if !ok {
		return errors.Newf(errors.UnknownTargetCode, "no service registered as %q", id)
	}
	if !svc.Synthetic {
		return errors.NewInvalidDefinition(id, "is not synthetic; instances are container-owned")
	}
	concrete, _ := c.compiled.Resolve(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.synthetics[concrete] = instance
	return nil
}

// ensureFileLoaded loads the file at most once per container instance.
// Concurrent requests for the same path serialize on the file lock, so the
// single-load guarantee holds even under concurrent instantiation.
func (c *Container) ensureFileLoaded(path string) error {
	c.fileMu.Lock()
	defer c.fileMu.Unlock()

	if c.loadedFiles[path] {
		return nil
	}
	if c.fileLoader != nil {
		if err := c.fileLoader(path); err != nil {
			return err
		}
	}
	c.loadedFiles[path] = true
	return nil
}
