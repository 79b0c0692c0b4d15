package dataset

import (
	"errors"
	"fmt"
)

// SchemaError reports a records file that does not match its schema. It is
// fatal: an index is never built from a file that fails validation.
type SchemaError struct {
	Source Source
	Index  int // element position, -1 for document-level problems
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	loc := string(e.Source)
	if e.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", loc, e.Index)
	}
	if e.Field != "" {
		loc += "." + e.Field
	}
	return fmt.Sprintf("dataset: schema: %s: %s", loc, e.Reason)
}

// LoadError reports that a required source could not be fetched, decoded, or
// validated. Any LoadError leaves the caller without an index.
type LoadError struct {
	Source Source
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadFailure returns true if err (or any error in its chain) is a LoadError.
func IsLoadFailure(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsSchemaError returns true if err (or any error in its chain) is a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
