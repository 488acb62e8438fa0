package schema

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/hashicorp/go-multierror"
)

// Schema is an ordered list of uniquely named, typed columns.
// It allows one to look up columns by name or position, project
// sub-schemas, and parse or format raw records.
type Schema struct {
	entries []*Entry
	nameIdx map[string]int
}

// New is a factory for Schemas. Entries are copied, and their names must be unique.
func New(entries ...*Entry) (*Schema, error) {
	s := &Schema{
		entries: make([]*Entry, 0, len(entries)),
		nameIdx: make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e == nil {
			return nil, &errors.InvalidArgumentError{Op: "schema.New", Reason: fmt.Sprintf("entry %d is nil", i)}
		}
		if _, exists := s.nameIdx[e.name]; exists {
			return nil, &errors.DuplicateColumnError{Name: e.name}
		}
		s.nameIdx[e.name] = i
		s.entries = append(s.entries, e.Clone())
	}
	return s, nil
}

// Create builds a Schema from parallel lists of column names and types
func Create(names []string, colTypes []tabular.ColumnType) (*Schema, error) {
	if len(names) != len(colTypes) {
		return nil, &errors.InvalidArgumentError{
			Op:     "schema.Create",
			Reason: fmt.Sprintf("%d names but %d types", len(names), len(colTypes)),
		}
	}
	entries := make([]*Entry, len(names))
	for i := range names {
		e, err := NewEntry(names[i], colTypes[i])
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return New(entries...)
}

// Parse parses a header line such as "#id::Integer name price::Decimal". A single leading
// '#' is stripped. An empty sep splits on runs of whitespace.
func Parse(text string, sep string) (*Schema, error) {
	body := strings.TrimRightFunc(text, unicode.IsSpace)
	body = strings.TrimPrefix(body, "#")
	var fields []string
	switch {
	case len(body) == 0:
		// a bare "#" is the header of a Schema without columns
	case len(sep) == 0:
		fields = strings.Fields(body)
	default:
		fields = strings.Split(body, sep)
	}
	var merr *multierror.Error
	entries := make([]*Entry, 0, len(fields))
	for _, field := range fields {
		e, err := ParseEntry(field)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		entries = append(entries, e)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, &errors.SchemaParseError{Text: text, Err: err}
	}
	s, err := New(entries...)
	if err != nil {
		return nil, &errors.SchemaParseError{Text: text, Err: err}
	}
	return s, nil
}

// Len returns the number of columns in this Schema
func (s *Schema) Len() int {
	return len(s.entries)
}

// Entry returns the Entry at a 0-based position. Panics if i is out of range.
func (s *Schema) Entry(i int) *Entry {
	return s.entries[i]
}

// Index returns the 0-based position of the named column
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.nameIdx[name]
	return i, ok
}

// HasColumn returns true iff this Schema contains a column with the given name
func (s *Schema) HasColumn(name string) bool {
	_, ok := s.nameIdx[name]
	return ok
}

// EntryByName returns the named Entry and its position
func (s *Schema) EntryByName(name string) (*Entry, int, error) {
	i, ok := s.nameIdx[name]
	if !ok {
		return nil, -1, &errors.ColumnNotFoundError{Name: name}
	}
	return s.entries[i], i, nil
}

// ColumnNames returns the names in the schema, in order
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

// ColumnTypes returns the types in the schema, in order
func (s *Schema) ColumnTypes() []tabular.ColumnType {
	types := make([]tabular.ColumnType, len(s.entries))
	for i, e := range s.entries {
		types[i] = e.colType
	}
	return types
}

// Resolve returns the 0-based positions a ColumnRef refers to
func (s *Schema) Resolve(ref ColumnRef) ([]int, error) {
	switch ref.kind {
	case allColumns:
		idx := make([]int, len(s.entries))
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	case byPosition:
		if ref.pos < 0 || ref.pos >= len(s.entries) {
			return nil, &errors.ColumnIndexError{Index: ref.pos, NumColumns: len(s.entries)}
		}
		return []int{ref.pos}, nil
	default:
		i, ok := s.nameIdx[ref.name]
		if !ok {
			return nil, &errors.ColumnNotFoundError{Name: ref.name}
		}
		return []int{i}, nil
	}
}

// ResolveAll resolves a list of ColumnRefs, preserving their order
func (s *Schema) ResolveAll(refs []ColumnRef) ([]int, error) {
	idx := make([]int, 0, len(refs))
	for _, ref := range refs {
		i, err := s.Resolve(ref)
		if err != nil {
			return nil, err
		}
		idx = append(idx, i...)
	}
	return idx, nil
}

// Project computes the sub-Schema selected by refs, along with the positions of the selected
// columns in this Schema. Order is preserved, so columns may be reordered or repeated;
// name lookups on a projection with a repeated column resolve to its first occurrence.
func (s *Schema) Project(refs ...ColumnRef) (*Schema, []int, error) {
	idx, err := s.ResolveAll(refs)
	if err != nil {
		return nil, nil, err
	}
	return s.projectIndices(idx), idx, nil
}

func (s *Schema) projectIndices(idx []int) *Schema {
	projected := &Schema{
		entries: make([]*Entry, len(idx)),
		nameIdx: make(map[string]int, len(idx)),
	}
	for j, i := range idx {
		e := s.entries[i].Clone()
		projected.entries[j] = e
		if _, exists := projected.nameIdx[e.name]; !exists {
			projected.nameIdx[e.name] = j
		}
	}
	return projected
}

// IsMatch returns true iff the raw record has one Value per column, each valid for its column's type
func (s *Schema) IsMatch(t tabular.Tuple) bool {
	return s.mismatch(t) == ""
}

// Check returns a TypeMismatchError if the raw record does not match this Schema
func (s *Schema) Check(t tabular.Tuple) error {
	if reason := s.mismatch(t); reason != "" {
		return &errors.TypeMismatchError{Schema: s.Show("\t"), Record: t.String(), Reason: reason}
	}
	return nil
}

func (s *Schema) mismatch(t tabular.Tuple) string {
	if len(t) != len(s.entries) {
		return fmt.Sprintf("expected %d values, found %d", len(s.entries), len(t))
	}
	for i, e := range s.entries {
		if !e.colType.IsValid(t[i]) {
			return fmt.Sprintf("column %s expects %s, found %s", e.name, e.colType.Name(), t[i].Kind())
		}
	}
	return ""
}

// Format serializes a raw record, formatting each Value with its column's type
func (s *Schema) Format(t tabular.Tuple, sep string) (string, error) {
	if err := s.Check(t); err != nil {
		return "", err
	}
	var res strings.Builder
	for i, e := range s.entries {
		if i > 0 {
			res.WriteString(sep)
		}
		res.WriteString(e.colType.Format(t[i]))
	}
	return res.String(), nil
}

// ParseValues parses one text field per column into a raw record
func (s *Schema) ParseValues(fields []string) (tabular.Tuple, error) {
	if len(fields) != len(s.entries) {
		return nil, &errors.TypeMismatchError{
			Schema: s.Show("\t"),
			Record: fmt.Sprintf("%q", fields),
			Reason: fmt.Sprintf("expected %d fields, found %d", len(s.entries), len(fields)),
		}
	}
	t := make(tabular.Tuple, len(fields))
	for i, e := range s.entries {
		v, err := e.ParseValue(fields[i])
		if err != nil {
			return nil, err
		}
		t[i] = v
	}
	return t, nil
}

// Show renders this Schema as a header line, "#name::Type" fields joined by sep
func (s *Schema) Show(sep string) string {
	fields := make([]string, len(s.entries))
	for i, e := range s.entries {
		fields[i] = e.String()
	}
	return "#" + strings.Join(fields, sep)
}

// String renders this Schema as a tab-separated header line
func (s *Schema) String() string {
	return s.Show("\t")
}

// Equals returns true iff both Schemas have the same column types in the same order.
// Column names are ignored.
func (s *Schema) Equals(o *Schema) bool {
	if o == nil || len(s.entries) != len(o.entries) {
		return false
	}
	for i := range s.entries {
		if s.entries[i].colType.Name() != o.entries[i].colType.Name() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of this Schema
func (s *Schema) Clone() *Schema {
	c := &Schema{
		entries: make([]*Entry, len(s.entries)),
		nameIdx: make(map[string]int, len(s.nameIdx)),
	}
	for i, e := range s.entries {
		c.entries[i] = e.Clone()
	}
	for k, v := range s.nameIdx {
		c.nameIdx[k] = v
	}
	return c
}

// RenameColumn renames a column within the Schema, in place
func (s *Schema) RenameColumn(oldName string, newName string) error {
	i, ok := s.nameIdx[oldName]
	if !ok {
		return &errors.ColumnNotFoundError{Name: oldName}
	}
	if oldName == newName {
		return nil
	}
	if _, exists := s.nameIdx[newName]; exists {
		return &errors.DuplicateColumnError{Name: newName}
	}
	if err := s.entries[i].Rename(newName); err != nil {
		return err
	}
	delete(s.nameIdx, oldName)
	s.nameIdx[newName] = i
	return nil
}

// Concat returns a new Schema holding the columns of s followed by those of o
func (s *Schema) Concat(o *Schema) (*Schema, error) {
	entries := make([]*Entry, 0, len(s.entries)+len(o.entries))
	entries = append(entries, s.entries...)
	entries = append(entries, o.entries...)
	return New(entries...)
}
