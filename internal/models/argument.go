package models

// ArgumentKind represents the variant of a constructor argument
type ArgumentKind int

const (
	// ArgumentLiteral is a plain value passed through untouched
	ArgumentLiteral ArgumentKind = iota
	// ArgumentReference points at another definition by id
	ArgumentReference
	// ArgumentCollection is an ordered list of nested arguments
	ArgumentCollection
)

// String returns the string representation of the argument kind
func (k ArgumentKind) String() string {
	switch k {
	case ArgumentReference:
		return "reference"
	case ArgumentCollection:
		return "collection"
	default:
		return "literal"
	}
}

// Argument is a tagged variant: exactly one of Value, Ref or Items is
// meaningful, selected by Kind. This replaces dynamic coercion with an
// explicit shape the resolver can walk.
type Argument struct {
	Kind  ArgumentKind
	Value any        // ArgumentLiteral
	Ref   string     // ArgumentReference, the referenced id without the "@" prefix
	Items []Argument // ArgumentCollection
}

// Literal creates a literal argument
func Literal(v any) Argument {
	return Argument{Kind: ArgumentLiteral, Value: v}
}

// Reference creates a reference argument pointing at the given id
func Reference(id string) Argument {
	return Argument{Kind: ArgumentReference, Ref: id}
}

// Collection creates a collection argument from the given items
func Collection(items ...Argument) Argument {
	return Argument{Kind: ArgumentCollection, Items: items}
}

// References returns every definition id this argument refers to,
// descending into collections in order
func (a Argument) References() []string {
	switch a.Kind {
	case ArgumentReference:
		return []string{a.Ref}
	case ArgumentCollection:
		var refs []string
		for _, item := range a.Items {
			refs = append(refs, item.References()...)
		}
		return refs
	default:
		return nil
	}
}

func cloneArgs(args []Argument) []Argument {
	if args == nil {
		return nil
	}
	cp := make([]Argument, len(args))
	for i, a := range args {
		cp[i] = a
		cp[i].Items = cloneArgs(a.Items)
	}
	return cp
}
