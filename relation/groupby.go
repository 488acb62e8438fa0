package relation

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/iterable"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/schema"
)

// Groups is the result of a group-by: one accumulated value per distinct key,
// in the order in which keys were first seen
type Groups[A any] struct {
	keySchema *schema.Schema
	buckets   map[uint64][]int
	keys      []tabular.Tuple
	values    []A
}

func newGroups[A any](keySchema *schema.Schema) *Groups[A] {
	return &Groups[A]{
		keySchema: keySchema,
		buckets:   make(map[uint64][]int),
		keys:      make([]tabular.Tuple, 0),
		values:    make([]A, 0),
	}
}

func (g *Groups[A]) find(key tabular.Tuple, h uint64) int {
	for _, i := range g.buckets[h] {
		if g.keys[i].Equal(key) {
			return i
		}
	}
	return -1
}

// KeySchema returns the Schema of the group keys
func (g *Groups[A]) KeySchema() *schema.Schema {
	return g.keySchema
}

// Len returns the number of distinct keys
func (g *Groups[A]) Len() int {
	return len(g.keys)
}

// Get returns the accumulated value for a key
func (g *Groups[A]) Get(key tabular.Tuple) (A, bool) {
	if i := g.find(key, key.Hash()); i >= 0 {
		return g.values[i], true
	}
	var zero A
	return zero, false
}

// Keys returns the distinct keys, in the order in which they were first seen
func (g *Groups[A]) Keys() []tabular.Tuple {
	keys := make([]tabular.Tuple, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// ForEach calls fn with each key and its accumulated value, stopping at the first error
func (g *Groups[A]) ForEach(fn func(key tabular.Tuple, acc A) error) error {
	for i, key := range g.keys {
		if err := fn(key, g.values[i]); err != nil {
			return err
		}
	}
	return nil
}

// GroupBy groups the Records of r by the values of keyCols in a single pass. The first
// time a key is seen, its accumulator is created by zero. Every Record, including the
// first of its group, is then folded into its group's accumulator by op.
func GroupBy[A any](r *Relation, keyCols []schema.ColumnRef, op FoldOperation[A], zero func() A) (*Groups[A], error) {
	keySchema, idx, err := r.schema.Project(keyCols...)
	if err != nil {
		return nil, err
	}
	logging.Default().Debugf("Grouping relation %s by %s", r.name, keySchema)
	groups := newGroups[A](keySchema)
	err = r.ForEach(func(rec record.Record) error {
		key := record.ProjectRaw(rec.Raw(), idx)
		h := key.Hash()
		i := groups.find(key, h)
		if i < 0 {
			i = len(groups.keys)
			groups.keys = append(groups.keys, key)
			groups.values = append(groups.values, zero())
			groups.buckets[h] = append(groups.buckets[h], i)
		}
		acc, err := op(groups.values[i], rec)
		if err != nil {
			return err
		}
		groups.values[i] = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupByAsRelation groups the Records of r by the values of keyCols, collecting each
// group's records, projected onto valueCols if any are given, into a reusable Relation
func GroupByAsRelation(r *Relation, keyCols []schema.ColumnRef, valueCols ...schema.ColumnRef) (*Groups[*Relation], error) {
	valueSchema := r.schema
	var idx []int
	if len(valueCols) > 0 {
		var err error
		if valueSchema, idx, err = r.schema.Project(valueCols...); err != nil {
			return nil, err
		}
	}
	zero := func() *Relation {
		return newRelation(valueSchema, iterable.FromList(nil, true), "")
	}
	op := func(acc *Relation, rec record.Record) (*Relation, error) {
		raw := rec.Raw()
		if idx != nil {
			raw = record.ProjectRaw(raw, idx)
		}
		return acc, acc.data.Append(raw)
	}
	return GroupBy[*Relation](r, keyCols, op, zero)
}

// GroupByAccumulate groups the Records of r by the values of keyCols, accumulating each
// group into an Accumulator produced by factory
func GroupByAccumulate(r *Relation, keyCols []schema.ColumnRef, factory AccumulatorFactory) (*Groups[Accumulator], error) {
	op := func(acc Accumulator, rec record.Record) (Accumulator, error) {
		return acc, acc.Accumulate(rec)
	}
	return GroupBy[Accumulator](r, keyCols, op, factory)
}
