package schema

import (
	"strconv"
	"strings"

	"github.com/go-sif/tabular/errors"
)

type refKind uint8

const (
	byName refKind = iota
	byPosition
	allColumns
)

// ColumnRef refers to a column of a Schema, by name or by position, or to all columns at once
type ColumnRef struct {
	kind refKind
	name string
	pos  int
}

// Col refers to a column by name
func Col(name string) ColumnRef {
	return ColumnRef{kind: byName, name: name}
}

// Pos refers to a column by its 0-based position
func Pos(i int) ColumnRef {
	return ColumnRef{kind: byPosition, pos: i}
}

// All refers to every column of a Schema, in order
func All() ColumnRef {
	return ColumnRef{kind: allColumns}
}

// Cols is shorthand for referring to several columns by name
func Cols(names ...string) []ColumnRef {
	refs := make([]ColumnRef, len(names))
	for i, name := range names {
		refs[i] = Col(name)
	}
	return refs
}

// String returns the external representation of this ColumnRef (1-based, 0 for all columns)
func (r ColumnRef) String() string {
	switch r.kind {
	case byPosition:
		return strconv.Itoa(r.pos + 1)
	case allColumns:
		return "0"
	default:
		return r.name
	}
}

// ParseColumnRefs parses a comma-separated list of column references such as "1,3,price".
// Numbers are 1-based positions, 0 means all columns, anything else is a column name.
func ParseColumnRefs(text string) ([]ColumnRef, error) {
	if len(strings.TrimSpace(text)) == 0 {
		return nil, &errors.InvalidArgumentError{Op: "ParseColumnRefs", Reason: "empty column list"}
	}
	fields := strings.Split(text, ",")
	refs := make([]ColumnRef, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if len(field) == 0 {
			return nil, &errors.InvalidArgumentError{Op: "ParseColumnRefs", Reason: "empty column reference in " + strconv.Quote(text)}
		}
		i, err := strconv.Atoi(field)
		switch {
		case err != nil:
			refs = append(refs, Col(field))
		case i == 0:
			refs = append(refs, All())
		case i > 0:
			refs = append(refs, Pos(i-1))
		default:
			return nil, &errors.InvalidArgumentError{Op: "ParseColumnRefs", Reason: "negative column index " + field}
		}
	}
	return refs, nil
}
