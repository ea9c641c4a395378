package errors

import "fmt"

// SyntheticNotInitializedError is returned when a synthetic service is
// requested before an external caller supplied its backing instance. It is
// recoverable: inject the instance and retry.
type SyntheticNotInitializedError struct {
	*BaseError
	ID string
}

// NewSyntheticNotInitialized creates a SyntheticNotInitializedError
func NewSyntheticNotInitialized(id string) *SyntheticNotInitializedError {
	base := New(SyntheticNotInitializedCode,
		fmt.Sprintf("synthetic service %q has no instance yet", id), id)
	base.WithSuggestion(fmt.Sprintf("call Inject(%q, instance) before requesting the service", id))
	return &SyntheticNotInitializedError{BaseError: base, ID: id}
}

// PrivateServiceError is returned when a private service or alias is
// requested from outside the container. This is always a hard failure,
// never a silent fallback.
type PrivateServiceError struct {
	*BaseError
	ID string
}

// NewPrivateService creates a PrivateServiceError
func NewPrivateService(id string) *PrivateServiceError {
	base := New(PrivateServiceCode,
		fmt.Sprintf("service %q is private and cannot be retrieved externally", id), id)
	base.WithSuggestion("mark the definition or alias public, or inject it as a dependency instead")
	return &PrivateServiceError{BaseError: base, ID: id}
}

// NewMissingFactory creates a MissingFactoryError-coded BaseError for a
// non-synthetic service the runtime has no factory for
func NewMissingFactory(id string) *BaseError {
	base := New(MissingFactoryCode,
		fmt.Sprintf("no factory registered for service %q", id), id)
	base.WithSuggestion(fmt.Sprintf("construct the container with WithFactory(%q, ...)", id))
	return base
}
