// Package loader reads service definitions, aliases and layer rules from a
// YAML file and produces the normalized records the compiler consumes.
//
// The format owns nothing the core depends on: any collaborator producing
// the same normalized records can replace it.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/expr"
	"github.com/stratadi/strata/internal/models"
	"github.com/stratadi/strata/internal/registry"
)

// File is the top-level YAML document
type File struct {
	Services []ServiceRecord `yaml:"services"`
	Aliases  []AliasRecord   `yaml:"aliases"`
	Rules    []RuleRecord    `yaml:"rules"`
}

// ServiceRecord is one normalized service definition record
type ServiceRecord struct {
	ID         string   `yaml:"id"`
	Class      string   `yaml:"class"`
	Args       []any    `yaml:"args"`
	Visibility string   `yaml:"visibility"`
	Synthetic  bool     `yaml:"synthetic"`
	File       string   `yaml:"file"`
	Layers     []string `yaml:"layers"`
	Decorates  string   `yaml:"decorates"`
	InnerName  string   `yaml:"inner_name"`
}

// AliasRecord is one normalized alias record
type AliasRecord struct {
	ID         string `yaml:"id"`
	Target     string `yaml:"target"`
	Visibility string `yaml:"visibility"`
}

// RuleRecord is one normalized layer rule record
type RuleRecord struct {
	Child      string `yaml:"child"`
	If         string `yaml:"if"`
	Dependent  string `yaml:"dependent"`
	Dependency string `yaml:"dependency"`
}

// Result is the loaded, normalized input set for one compilation
type Result struct {
	Registry *registry.Registry
	Rules    []models.LayerRule
}

// LoadFile reads and normalizes the YAML document at path
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigCode, fmt.Sprintf("reading %s", path), err)
	}
	return Load(data)
}

// Load normalizes a YAML document. Re-registered ids follow last-wins
// semantics: the previous definition is discarded with no linkage, which is
// what repeated configuration of the same id means. Wrapping the previous
// one instead is what decoration is for.
func Load(data []byte) (*Result, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ConfigCode, "parsing YAML", err)
	}

	reg := registry.New()
	for _, rec := range file.Services {
		def, err := rec.definition()
		if err != nil {
			return nil, err
		}
		if err := reg.Override(def); err != nil {
			return nil, errors.Wrap(errors.ConfigCode, fmt.Sprintf("registering %q", rec.ID), err)
		}
	}

	for _, rec := range file.Aliases {
		alias := models.Alias{ID: rec.ID, Target: rec.Target, InheritVisibility: rec.Visibility == ""}
		if !alias.InheritVisibility {
			vis, err := parseVisibility(rec.Visibility)
			if err != nil {
				return nil, errors.NewInvalidDefinition(rec.ID, err.Error())
			}
			alias.Visibility = vis
		}
		if err := reg.Alias(alias); err != nil {
			if serr, ok := err.(errors.StrataError); ok {
				return nil, serr
			}
			return nil, errors.Wrap(errors.ConfigCode, fmt.Sprintf("aliasing %q", rec.ID), err)
		}
	}

	rules := make([]models.LayerRule, 0, len(file.Rules))
	for _, rec := range file.Rules {
		rule, err := rec.rule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return &Result{Registry: reg, Rules: rules}, nil
}

func (r ServiceRecord) definition() (models.ServiceDefinition, error) {
	vis, err := parseVisibility(r.Visibility)
	if err != nil {
		return models.ServiceDefinition{}, errors.NewInvalidDefinition(r.ID, err.Error())
	}

	args := make([]models.Argument, 0, len(r.Args))
	for _, raw := range r.Args {
		args = append(args, parseArgument(raw))
	}
	if len(args) == 0 {
		args = nil
	}

	return models.ServiceDefinition{
		ID:         r.ID,
		Class:      r.Class,
		Args:       args,
		Visibility: vis,
		Synthetic:  r.Synthetic,
		File:       r.File,
		Layers:     models.NewLayerSet(r.Layers...),
		Decorates:  r.Decorates,
		InnerName:  r.InnerName,
	}, nil
}

func (r RuleRecord) rule() (models.LayerRule, error) {
	rule := models.LayerRule{
		Child:      r.Child,
		Dependent:  r.Dependent,
		Dependency: r.Dependency,
		Expr:       r.If,
	}
	if r.Dependent == "" || r.Dependency == "" {
		return rule, errors.Newf(errors.ConfigCode,
			"layer rule needs both a dependent and a dependency layer")
	}
	if r.If != "" {
		pred, err := expr.Compile(r.If)
		if err != nil {
			return rule, errors.Wrap(errors.ConfigCode, "compiling rule predicate", err)
		}
		rule.Predicate = pred
	}
	return rule, nil
}

// parseArgument maps one YAML value onto the tagged argument variant.
// Strings starting with "@" are references; "@@" escapes a literal leading
// "@"; sequences become collections; everything else is a literal.
func parseArgument(raw any) models.Argument {
	switch v := raw.(type) {
	case string:
		if len(v) >= 2 && v[0] == '@' && v[1] == '@' {
			return models.Literal(v[1:])
		}
		if len(v) >= 1 && v[0] == '@' {
			return models.Reference(v[1:])
		}
		return models.Literal(v)
	case []any:
		items := make([]models.Argument, 0, len(v))
		for _, item := range v {
			items = append(items, parseArgument(item))
		}
		return models.Collection(items...)
	default:
		return models.Literal(raw)
	}
}

func parseVisibility(s string) (models.Visibility, error) {
	switch s {
	case "", "public":
		return models.VisibilityPublic, nil
	case "private":
		return models.VisibilityPrivate, nil
	default:
		return models.VisibilityPublic, fmt.Errorf("has unknown visibility %q", s)
	}
}
