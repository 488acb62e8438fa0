package schema

import (
	"fmt"
	"regexp"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
)

// DefaultTypeName is the column type assumed when a header field has no "::Type" suffix
const DefaultTypeName = "String"

var entryRegexp = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)(?:::([a-zA-Z0-9_]+))?$`)

// Entry is a single named, typed column of a Schema
type Entry struct {
	name    string
	colType tabular.ColumnType
}

// NewEntry creates an Entry, validating that the name is non-empty and the type is set
func NewEntry(name string, colType tabular.ColumnType) (*Entry, error) {
	if len(name) == 0 {
		return nil, &errors.InvalidArgumentError{Op: "NewEntry", Reason: "column name is empty"}
	}
	if colType == nil {
		return nil, &errors.InvalidArgumentError{Op: "NewEntry", Reason: fmt.Sprintf("column %s has no type", name)}
	}
	return &Entry{name: name, colType: colType}, nil
}

// ParseEntry parses a header field of the form "name" or "name::Type"
func ParseEntry(text string) (*Entry, error) {
	m := entryRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil, &errors.SchemaParseError{Text: text, Err: fmt.Errorf("Invalid schema field format")}
	}
	typeName := m[2]
	if len(typeName) == 0 {
		typeName = DefaultTypeName
	}
	colType, ok := tabular.LookupColumnType(typeName)
	if !ok {
		return nil, &errors.SchemaParseError{Text: text, Err: &errors.UnknownTypeError{Name: typeName}}
	}
	return &Entry{name: m[1], colType: colType}, nil
}

// Name returns the column name of this Entry
func (e *Entry) Name() string {
	return e.name
}

// Type returns the ColumnType of this Entry
func (e *Entry) Type() tabular.ColumnType {
	return e.colType
}

// Rename changes the name of this Entry in place. Entries belonging to a Schema
// must be renamed through Schema.RenameColumn instead, which keeps the name index current.
func (e *Entry) Rename(newName string) error {
	if len(newName) == 0 {
		return &errors.InvalidArgumentError{Op: "Rename", Reason: "column name is empty"}
	}
	e.name = newName
	return nil
}

// Clone returns a copy of this Entry. ColumnTypes are stateless and are shared.
func (e *Entry) Clone() *Entry {
	return &Entry{name: e.name, colType: e.colType}
}

// ParseValue parses the text of a field belonging to this column
func (e *Entry) ParseValue(text string) (tabular.Value, error) {
	v, err := e.colType.Parse(text)
	if err != nil {
		return tabular.Value{}, &errors.ValueParseError{Column: e.name, Type: e.colType.Name(), Text: text, Err: err}
	}
	return v, nil
}

// String produces the header representation "name::Type"
func (e *Entry) String() string {
	return e.name + "::" + e.colType.Name()
}
