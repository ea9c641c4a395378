package strata

import (
	"github.com/stratadi/strata/internal/compiler"
	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/layers"
	"github.com/stratadi/strata/internal/loader"
	"github.com/stratadi/strata/internal/models"
)

// Public names for the compiled description and the error surface, so
// consumers outside this module can hold and inspect them.
type (
	CompiledContainer = models.CompiledContainer
	CompiledService   = models.CompiledService
	Edge              = models.Edge

	Diagnostics                  = errors.Diagnostics
	ErrorCode                    = errors.ErrorCode
	DuplicateIDError             = errors.DuplicateIDError
	UnknownTargetError           = errors.UnknownTargetError
	CyclicAliasError             = errors.CyclicAliasError
	DuplicateInnerIDError        = errors.DuplicateInnerIDError
	InvalidLayerError            = errors.InvalidLayerError
	SyntheticNotInitializedError = errors.SyntheticNotInitializedError
	PrivateServiceError          = errors.PrivateServiceError
)

// Error codes for Diagnostics filtering
const (
	DuplicateIDCode             = errors.DuplicateIDCode
	UnknownTargetCode           = errors.UnknownTargetCode
	CyclicAliasCode             = errors.CyclicAliasCode
	DuplicateInnerIDCode        = errors.DuplicateInnerIDCode
	InvalidLayerCode            = errors.InvalidLayerCode
	SyntheticNotInitializedCode = errors.SyntheticNotInitializedCode
	PrivateServiceCode          = errors.PrivateServiceCode
)

// CompileFile loads the YAML definition file at path and compiles it.
// On failure the returned error is a *Diagnostics carrying every problem
// found, not just the first.
func CompileFile(path string) (*CompiledContainer, error) {
	res, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return compile(res)
}

// CompileYAML compiles an in-memory YAML definition document
func CompileYAML(data []byte) (*CompiledContainer, error) {
	res, err := loader.Load(data)
	if err != nil {
		return nil, err
	}
	return compile(res)
}

func compile(res *loader.Result) (*CompiledContainer, error) {
	engine := layers.NewEngine(res.Rules...)
	return compiler.New(res.Registry, engine).Compile()
}
