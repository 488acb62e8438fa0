package relation

import (
	"fmt"
	"io"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/iterable"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/schema"
)

// JoinInput is one side of a sort-merge join: a Relation and the names of the columns
// it contributes to the joined Relation, besides the key
type JoinInput struct {
	Relation *Relation
	Columns  []string
}

// Join performs an inner equi-join of two or more Relations on the key columns keyCols,
// which must be present in all of them with the same types. The joined Relation has
// Schema keyCols ++ inputs[0].Columns ++ inputs[1].Columns ++ ..., and contains one
// record per key present in every input. Keys must be unique within each input.
//
// Inputs are joined pairwise from the left with JoinTwo, so every input is sorted
// (and thus materialized) once. The result is single-pass.
func Join(keyCols []string, inputs ...JoinInput) (*Relation, error) {
	if len(inputs) < 2 {
		return nil, &errors.InvalidArgumentError{
			Op:     "Join",
			Reason: fmt.Sprintf("at least 2 relations are required, %d given", len(inputs)),
		}
	}
	acc := inputs[0]
	for _, in := range inputs[1:] {
		joined, err := JoinTwo(keyCols, acc, in)
		if err != nil {
			return nil, err
		}
		cols := make([]string, 0, len(acc.Columns)+len(in.Columns))
		cols = append(cols, acc.Columns...)
		cols = append(cols, in.Columns...)
		acc = JoinInput{Relation: joined, Columns: cols}
	}
	return acc.Relation, nil
}

// JoinTwo performs a sort-merge inner equi-join of two Relations on the key columns
// keyCols. Both inputs are sorted by the key as soon as JoinTwo is called, then merged
// lazily as the result is iterated.
func JoinTwo(keyCols []string, left JoinInput, right JoinInput) (*Relation, error) {
	if len(keyCols) == 0 {
		return nil, &errors.InvalidArgumentError{Op: "Join", Reason: "no key columns given"}
	}
	if left.Relation == nil || right.Relation == nil {
		return nil, &errors.InvalidArgumentError{Op: "Join", Reason: "relation is nil"}
	}
	keyRefs := schema.Cols(keyCols...)
	lrefs := append(schema.Cols(keyCols...), schema.Cols(left.Columns...)...)
	rrefs := append(schema.Cols(keyCols...), schema.Cols(right.Columns...)...)
	lschema, _, err := left.Relation.schema.Project(lrefs...)
	if err != nil {
		return nil, err
	}
	rschema, _, err := right.Relation.schema.Project(rrefs...)
	if err != nil {
		return nil, err
	}
	for i, name := range keyCols {
		lt, rt := lschema.Entry(i).Type(), rschema.Entry(i).Type()
		if lt.Name() != rt.Name() {
			return nil, &errors.InvalidArgumentError{
				Op:     "Join",
				Reason: fmt.Sprintf("key column %s is %s in %s but %s in %s", name, lt.Name(), left.Relation.name, rt.Name(), right.Relation.name),
			}
		}
	}
	entries := make([]*schema.Entry, 0, lschema.Len()+len(right.Columns))
	for i := 0; i < lschema.Len(); i++ {
		entries = append(entries, lschema.Entry(i))
	}
	for i := len(keyCols); i < rschema.Len(); i++ {
		entries = append(entries, rschema.Entry(i))
	}
	joinedSchema, err := schema.New(entries...)
	if err != nil {
		return nil, err
	}

	logging.Default().Debugf("Joining relations %s and %s on %v", left.Relation.name, right.Relation.name, keyCols)
	lsorted, err := sortedProjection(left.Relation, keyRefs, lrefs)
	if err != nil {
		return nil, err
	}
	rsorted, err := sortedProjection(right.Relation, keyRefs, rrefs)
	if err != nil {
		return nil, err
	}
	return newRelation(joinedSchema, iterable.FromGenerator(mergeJoin(len(keyCols), lsorted, rsorted), false), ""), nil
}

func sortedProjection(r *Relation, keyRefs []schema.ColumnRef, refs []schema.ColumnRef) (iterable.Generator, error) {
	sorted, err := r.Sort(SortOptions{Columns: keyRefs})
	if err != nil {
		return nil, err
	}
	projected, err := sorted.Project(refs...)
	if err != nil {
		return nil, err
	}
	return projected.Tuples(), nil
}

// mergeJoin walks two streams sorted by their first k values, emitting the concatenation
// of each pair of records with equal keys
func mergeJoin(k int, lnext iterable.Generator, rnext iterable.Generator) iterable.Generator {
	var lcur, rcur tabular.Tuple
	done := false
	return func() (tabular.Tuple, error) {
		if done {
			return nil, io.EOF
		}
		var err error
		for {
			if lcur == nil {
				if lcur, err = lnext(); err != nil {
					break
				}
			}
			if rcur == nil {
				if rcur, err = rnext(); err != nil {
					break
				}
			}
			switch c := lcur[:k].Compare(rcur[:k]); {
			case c == 0:
				joined := lcur.Concat(rcur[k:])
				lcur, rcur = nil, nil
				return joined, nil
			case c < 0:
				lcur = nil
			default:
				rcur = nil
			}
		}
		if err == io.EOF {
			done = true
		}
		return nil, err
	}
}
