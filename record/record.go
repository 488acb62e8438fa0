package record

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/schema"
)

// Record is an immutable raw record paired with the Schema it was validated against
type Record struct {
	schema *schema.Schema
	raw    tabular.Tuple
}

// New binds a raw record to a Schema, failing with a TypeMismatchError if it does not match
func New(s *schema.Schema, raw tabular.Tuple) (Record, error) {
	if err := s.Check(raw); err != nil {
		return Record{}, err
	}
	return Record{schema: s, raw: raw}, nil
}

// Bind pairs a raw record with a Schema without validating it. Callers must already
// know that s.IsMatch(raw) holds.
func Bind(s *schema.Schema, raw tabular.Tuple) Record {
	return Record{schema: s, raw: raw}
}

// Schema returns the Schema of this Record
func (r Record) Schema() *schema.Schema {
	return r.schema
}

// Raw returns the raw record. It must not be modified.
func (r Record) Raw() tabular.Tuple {
	return r.raw
}

// Len returns the number of Values in this Record
func (r Record) Len() int {
	return len(r.raw)
}

// At returns the Value at a 0-based position. Panics if i is out of range.
func (r Record) At(i int) tabular.Value {
	return r.raw[i]
}

// Get returns the Value of the named column
func (r Record) Get(name string) (tabular.Value, error) {
	_, i, err := r.schema.EntryByName(name)
	if err != nil {
		return tabular.Value{}, err
	}
	return r.raw[i], nil
}

// Values returns the Values selected by refs, in order
func (r Record) Values(refs ...schema.ColumnRef) (tabular.Tuple, error) {
	idx, err := r.schema.ResolveAll(refs)
	if err != nil {
		return nil, err
	}
	return ProjectRaw(r.raw, idx), nil
}

// Project returns a new Record holding only the columns selected by refs
func (r Record) Project(refs ...schema.ColumnRef) (Record, error) {
	s, idx, err := r.schema.Project(refs...)
	if err != nil {
		return Record{}, err
	}
	return Record{schema: s, raw: ProjectRaw(r.raw, idx)}, nil
}

// Equal returns true iff both Records have equal Schemas and equal raw records
func (r Record) Equal(o Record) bool {
	return r.schema.Equals(o.schema) && r.raw.Equal(o.raw)
}

// String formats this Record as a tab-separated line
func (r Record) String() string {
	s, err := r.schema.Format(r.raw, "\t")
	if err != nil {
		return r.raw.String()
	}
	return s
}

// ProjectRaw gathers the Values at the given 0-based positions. Panics if a position is out of range.
func ProjectRaw(raw tabular.Tuple, idx []int) tabular.Tuple {
	res := make(tabular.Tuple, len(idx))
	for j, i := range idx {
		res[j] = raw[i]
	}
	return res
}
