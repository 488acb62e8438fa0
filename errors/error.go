package errors

import (
	"fmt"
	"strings"
)

// SchemaParseError occurs when a Schema header or one of its fields is malformed
type SchemaParseError struct {
	Text string
	Err  error
}

// Error returns a textual representation of this SchemaParseError
func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("Unable to parse schema %q: %v", e.Text, e.Err)
}

// Unwrap returns the underlying cause of this SchemaParseError
func (e *SchemaParseError) Unwrap() error {
	return e.Err
}

// UnknownTypeError occurs when a Schema refers to a column type name which has not been registered
type UnknownTypeError struct{ Name string }

// Error returns a textual representation of this UnknownTypeError
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("Unknown column type %s", e.Name)
}

// ColumnNotFoundError occurs when a column reference does not resolve within a Schema
type ColumnNotFoundError struct{ Name string }

// Error returns a textual representation of this ColumnNotFoundError
func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("Schema does not contain column with name %s", e.Name)
}

// ColumnIndexError occurs when a positional column reference is out of range
type ColumnIndexError struct {
	Index      int
	NumColumns int
}

// Error returns a textual representation of this ColumnIndexError
func (e *ColumnIndexError) Error() string {
	return fmt.Sprintf("Column index %d out of range for schema with %d columns", e.Index, e.NumColumns)
}

// DuplicateColumnError occurs when a column name would appear twice in a Schema
type DuplicateColumnError struct{ Name string }

// Error returns a textual representation of this DuplicateColumnError
func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("Schema already contains column with name %s", e.Name)
}

// TypeMismatchError occurs when a raw record does not match the Schema it is bound to
type TypeMismatchError struct {
	Schema string // the Schema header
	Record string // the offending raw record
	Reason string
}

// Error returns a textual representation of this TypeMismatchError
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("Record %s does not match schema %s: %s", e.Record, e.Schema, e.Reason)
}

// ValueParseError occurs when a field cannot be parsed by its column's type
type ValueParseError struct {
	Column string
	Type   string
	Text   string
	Err    error
}

// Error returns a textual representation of this ValueParseError
func (e *ValueParseError) Error() string {
	return fmt.Sprintf("Column %s could not be parsed as %s. Was: %q", e.Column, e.Type, e.Text)
}

// Unwrap returns the underlying parse failure
func (e *ValueParseError) Unwrap() error {
	return e.Err
}

// NotReusableError occurs when records are inserted into a single-pass Relation
type NotReusableError struct{ Relation string }

// Error returns a textual representation of this NotReusableError
func (e *NotReusableError) Error() string {
	return fmt.Sprintf("Relation %s is not reusable and cannot be inserted into", e.Relation)
}

// DuplicateKeyError occurs when a key appears twice where keys are required to be unique
type DuplicateKeyError struct{ Key string }

// Error returns a textual representation of this DuplicateKeyError
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("Duplicated key: %s", e.Key)
}

// InvalidArgumentError occurs when an operation is called with structurally invalid arguments
type InvalidArgumentError struct {
	Op     string
	Reason string
}

// Error returns a textual representation of this InvalidArgumentError
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("Invalid argument to %s: %s", e.Op, e.Reason)
}

// FieldCountError occurs when a line of input does not contain the expected number of fields
type FieldCountError struct {
	Line     int
	Expected int
	Found    int
	Fields   []string
}

// Error returns a textual representation of this FieldCountError
func (e *FieldCountError) Error() string {
	return fmt.Sprintf("Line %d: expected %d fields, found %d [%s]", e.Line, e.Expected, e.Found, strings.Join(e.Fields, ", "))
}
