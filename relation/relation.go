// Package relation implements Relations: a Schema paired with a stream of raw
// records, along with the relational operations which may be composed over them.
//
// A Relation is either reusable, in which case its records are materialized the
// first time they are iterated and may be iterated any number of times, or
// single-pass, in which case its records are observed at most once across its
// entire chain of operations. Iterating an exhausted single-pass Relation yields
// nothing, rather than an error.
package relation

import (
	"fmt"
	"io"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/iterable"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/schema"
	uuid "github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
)

// Conf configures a Relation
type Conf struct {
	Name  string // Name identifies the Relation in logs and errors. Defaults to its ID.
	Reuse bool   // Reuse materializes the Relation on first iteration, so that it may be iterated repeatedly. Defaults to false.
}

// Relation is a Schema paired with a sequence of raw records which match it
type Relation struct {
	id     uuid.UUID
	name   string
	schema *schema.Schema
	data   *iterable.Data
}

// RecordGenerator produces Records one at a time, returning io.EOF once it is exhausted
type RecordGenerator func() (record.Record, error)

func newRelation(s *schema.Schema, data *iterable.Data, name string) *Relation {
	id := uuid.Must(uuid.NewV4())
	if len(name) == 0 {
		name = id.String()
	}
	return &Relation{
		id:     id,
		name:   name,
		schema: s.Clone(),
		data:   data,
	}
}

// New creates a Relation from a list of raw records, each of which must match s
func New(s *schema.Schema, rows []tabular.Tuple, conf Conf) (*Relation, error) {
	var merr *multierror.Error
	l := make([]tabular.Tuple, len(rows))
	for i, t := range rows {
		if err := s.Check(t); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("Row %d: %w", i, err))
		}
		l[i] = t
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return newRelation(s, iterable.FromList(l, conf.Reuse), conf.Name), nil
}

// FromGenerator creates a Relation from a Generator of raw records. Each raw record
// is checked against s as it is produced, and a mismatch ends iteration with a
// TypeMismatchError.
func FromGenerator(s *schema.Schema, gen iterable.Generator, conf Conf) *Relation {
	return newRelation(s, iterable.FromGenerator(checked(s, gen), conf.Reuse), conf.Name)
}

// derive creates a single-pass Relation over a Generator whose records are already known to match s
func (r *Relation) derive(s *schema.Schema, gen iterable.Generator) *Relation {
	return newRelation(s, iterable.FromGenerator(gen, false), "")
}

func checked(s *schema.Schema, gen iterable.Generator) iterable.Generator {
	return func() (tabular.Tuple, error) {
		t, err := gen()
		if err != nil {
			return nil, err
		}
		if err := s.Check(t); err != nil {
			return nil, err
		}
		return t, nil
	}
}

// lazyIter defers obtaining an iterator over d until the first record is pulled,
// so that composing operations never consumes or materializes their source
func lazyIter(d *iterable.Data) iterable.Generator {
	var next iterable.Generator
	return func() (tabular.Tuple, error) {
		if next == nil {
			next = d.Iter()
		}
		return next()
	}
}

// ID returns the unique identifier of this Relation
func (r *Relation) ID() uuid.UUID {
	return r.id
}

// Name returns the name of this Relation
func (r *Relation) Name() string {
	return r.name
}

// Schema returns the Schema of this Relation. It must not be modified; use RenameColumn instead.
func (r *Relation) Schema() *schema.Schema {
	return r.schema
}

// IsReusable returns true iff this Relation may be iterated more than once
func (r *Relation) IsReusable() bool {
	return r.data.IsReusable()
}

// RenameColumn renames a column of this Relation, in place
func (r *Relation) RenameColumn(oldName string, newName string) error {
	return r.schema.RenameColumn(oldName, newName)
}

// Reuse returns a reusable Relation over the records of this one. If this Relation is
// single-pass, it is consumed when the returned Relation is first iterated.
func (r *Relation) Reuse() *Relation {
	if r.IsReusable() {
		return r
	}
	return newRelation(r.schema, iterable.FromGenerator(lazyIter(r.data), true), r.name)
}

// Tuples returns a Generator over the raw records of this Relation
func (r *Relation) Tuples() iterable.Generator {
	return r.data.Iter()
}

// Records returns a RecordGenerator over the Records of this Relation
func (r *Relation) Records() RecordGenerator {
	next := r.data.Iter()
	return func() (record.Record, error) {
		t, err := next()
		if err != nil {
			return record.Record{}, err
		}
		return record.Bind(r.schema, t), nil
	}
}

// ForEach calls fn with each Record of this Relation, in order, stopping at the first error
func (r *Relation) ForEach(fn func(rec record.Record) error) error {
	next := r.Records()
	for {
		rec, err := next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

// List materializes this Relation and returns its raw records. The returned list
// belongs to the Relation and must not be modified.
func (r *Relation) List() ([]tabular.Tuple, error) {
	logging.Default().Debugf("Materializing relation %s", r.name)
	return r.data.ToList()
}

// RecordList materializes this Relation and returns its Records
func (r *Relation) RecordList() ([]record.Record, error) {
	l, err := r.List()
	if err != nil {
		return nil, err
	}
	recs := make([]record.Record, len(l))
	for i, t := range l {
		recs[i] = record.Bind(r.schema, t)
	}
	return recs, nil
}

// Size materializes this Relation and returns the number of records within it
func (r *Relation) Size() (int, error) {
	l, err := r.List()
	if err != nil {
		return 0, err
	}
	return len(l), nil
}

// Insert appends a raw record to this Relation, which must be reusable
func (r *Relation) Insert(t tabular.Tuple) error {
	if !r.IsReusable() {
		return &errors.NotReusableError{Relation: r.name}
	}
	if err := r.schema.Check(t); err != nil {
		return err
	}
	return r.data.Append(t)
}

// InsertRecord appends the raw record of rec to this Relation, which must be reusable.
// The Schema of rec must equal that of this Relation.
func (r *Relation) InsertRecord(rec record.Record) error {
	if !r.IsReusable() {
		return &errors.NotReusableError{Relation: r.name}
	}
	if !r.schema.Equals(rec.Schema()) {
		return &errors.TypeMismatchError{
			Schema: r.schema.Show("\t"),
			Record: rec.Raw().String(),
			Reason: fmt.Sprintf("record has schema %s", rec.Schema().Show("\t")),
		}
	}
	return r.data.Append(rec.Raw())
}

// InsertList appends a list of raw records to this Relation. Every raw record is
// validated before any is inserted. A reusable Relation appends them to its materialized
// list, while a single-pass Relation lazily yields them after its existing records.
func (r *Relation) InsertList(rows []tabular.Tuple) error {
	var merr *multierror.Error
	for i, t := range rows {
		if err := r.schema.Check(t); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("Row %d: %w", i, err))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return err
	}
	if r.IsReusable() {
		for _, t := range rows {
			if err := r.data.Append(t); err != nil {
				return err
			}
		}
		return nil
	}
	l := make([]tabular.Tuple, len(rows))
	copy(l, rows)
	r.data = r.data.Concat(iterable.FromList(l, false))
	return nil
}
