// Package expr compiles boolean predicate expressions over active layer
// names, e.g. "controller && !legacy" or "(domain || infra) && audited".
//
// It is the default implementation of the rule engine's predicate
// capability: rules carry compiled models.Predicate functions, so any other
// evaluator can be swapped in without touching the engine.
package expr

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/stratadi/strata/internal/models"
)

// orExpr is the root of the grammar: and-expressions joined by "||"
type orExpr struct {
	Left  *andExpr   `parser:"@@"`
	Right []*andExpr `parser:"( Or @@ )*"`
}

// andExpr is a sequence of unary expressions joined by "&&"
type andExpr struct {
	Left  *notExpr   `parser:"@@"`
	Right []*notExpr `parser:"( And @@ )*"`
}

// notExpr is an optionally negated atom
type notExpr struct {
	Negated bool  `parser:"( @Not )?"`
	Atom    *atom `parser:"@@"`
}

// atom is a layer name or a parenthesized sub-expression
type atom struct {
	Layer *string `parser:"@Ident"`
	Group *orExpr `parser:"| LParen @@ RParen"`
}

var parser = participle.MustBuild[orExpr](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Or", Pattern: `\|\|`},
		{Name: "And", Pattern: `&&`},
		{Name: "Not", Pattern: `!`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.-]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// Compile parses the expression and returns a predicate evaluating it
// against a consumer's layer-tag set. A bare layer name is true when the
// consumer carries that tag.
func Compile(expression string) (models.Predicate, error) {
	root, err := parser.ParseString("", expression)
	if err != nil {
		return nil, fmt.Errorf("invalid layer predicate %q: %w", expression, err)
	}
	return func(layers models.LayerSet) bool {
		return root.eval(layers)
	}, nil
}

// MustCompile is like Compile but panics on a malformed expression.
// Intended for tests and static rule tables.
func MustCompile(expression string) models.Predicate {
	p, err := Compile(expression)
	if err != nil {
		panic(err)
	}
	return p
}

func (e *orExpr) eval(layers models.LayerSet) bool {
	if e.Left.eval(layers) {
		return true
	}
	for _, right := range e.Right {
		if right.eval(layers) {
			return true
		}
	}
	return false
}

func (e *andExpr) eval(layers models.LayerSet) bool {
	if !e.Left.eval(layers) {
		return false
	}
	for _, right := range e.Right {
		if !right.eval(layers) {
			return false
		}
	}
	return true
}

func (e *notExpr) eval(layers models.LayerSet) bool {
	v := e.Atom.eval(layers)
	if e.Negated {
		return !v
	}
	return v
}

func (a *atom) eval(layers models.LayerSet) bool {
	if a.Layer != nil {
		return layers.Has(*a.Layer)
	}
	return a.Group.eval(layers)
}
