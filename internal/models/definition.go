package models

// Visibility controls whether a service may be retrieved from outside the
// container or only injected into other services
type Visibility int

const (
	// VisibilityPublic services can be retrieved directly from the container
	VisibilityPublic Visibility = iota
	// VisibilityPrivate services are only reachable as dependencies
	VisibilityPrivate
)

// String returns the string representation of the visibility
func (v Visibility) String() string {
	if v == VisibilityPrivate {
		return "private"
	}
	return "public"
}

// DefaultLayer is the layer every untagged definition belongs to
const DefaultLayer = "default"

// DefaultInnerSuffix is appended to a decorator's id to derive the inner id
// under which the decorated predecessor stays reachable
const DefaultInnerSuffix = ".inner"

// ServiceDefinition is the blueprint for constructing one named service.
//
// It is a fixed-shape record: every field is known up front and definitions
// are copied by value, so a compilation pass can rewrite its own working set
// without mutating the caller's input.
type ServiceDefinition struct {
	ID         string     // unique identifier
	Class      string     // class/type reference used by the instantiation runtime
	Args       []Argument // ordered constructor arguments
	Visibility Visibility // public (default) or private
	Synthetic  bool       // placeholder supplied externally at runtime
	File       string     // optional file to load exactly once before instantiation
	Layers     LayerSet   // layer tags, {"default"} when none specified
	Decorates  string     // id of the definition this one decorates, if any
	InnerName  string     // custom inner id for the decorated predecessor
}

// LayerTags returns the definition's layer set, falling back to the default
// layer when no tags were specified
func (d ServiceDefinition) LayerTags() LayerSet {
	if len(d.Layers) == 0 {
		return NewLayerSet(DefaultLayer)
	}
	return d.Layers
}

// InnerID returns the id under which the decorated predecessor is kept.
// It derives from the decorator's own id, never from the target's, so two
// decorators stacked on the same target can never collide.
func (d ServiceDefinition) InnerID() string {
	if d.InnerName != "" {
		return d.InnerName
	}
	return d.ID + DefaultInnerSuffix
}

// IsDecorator returns whether this definition replaces another one
func (d ServiceDefinition) IsDecorator() bool {
	return d.Decorates != ""
}

// Clone returns a deep copy of the definition
func (d ServiceDefinition) Clone() ServiceDefinition {
	cp := d
	cp.Args = cloneArgs(d.Args)
	cp.Layers = d.Layers.Clone()
	return cp
}

// Alias maps an alternate id onto an existing definition's identity.
//
// Resolving an alias never changes the identity of the underlying
// definition; only retrievability is affected by the alias's own visibility.
type Alias struct {
	ID         string
	Target     string
	Visibility Visibility
	// InheritVisibility defers the visibility decision to the target: the
	// compiler replaces it with the target's visibility at freeze time.
	InheritVisibility bool
}
