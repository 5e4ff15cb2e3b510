package question

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch is the sentinel wrapped by every SchemaError.
var ErrSchemaMismatch = errors.New("schema mismatch")

// SchemaError reports a payload whose shape does not match what its type
// guarantees. Clients refuse to render such payloads.
type SchemaError struct {
	Type   Type
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema mismatch for type %q: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("schema mismatch for type %q: %s: %s", e.Type, e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchemaMismatch }

func mismatch(t Type, field, reason string) error {
	return &SchemaError{Type: t, Field: field, Reason: reason}
}
