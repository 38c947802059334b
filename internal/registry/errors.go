package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredKey is returned when a definition lacks a mandatory key.
	ErrMissingRequiredKey = errors.New("missing required key")

	// ErrUnresolvedReference is returned when a listed name is not registered.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// MissingKeyError reports which key a definition of Kind was missing.
type MissingKeyError struct {
	Kind string
	Key  string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s definition: %s %q", e.Kind, ErrMissingRequiredKey, e.Key)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingRequiredKey
}

// UnresolvedError reports the first name of Kind that could not be found.
type UnresolvedError struct {
	Kind string
	Name string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrUnresolvedReference, e.Kind, e.Name)
}

func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolvedReference
}
