package domain

import "fmt"

// ValidationError reports an entity field that violates its invariant.
type ValidationError struct {
	Entity string
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s %v %s", e.Entity, e.Field, e.Value, e.Reason)
}

func invalid(entity, field string, value interface{}, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Value: value, Reason: reason}
}
