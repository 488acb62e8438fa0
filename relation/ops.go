package relation

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/internal/util"
	"github.com/go-sif/tabular/iterable"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/schema"
)

// Select returns a Relation which lazily yields the records of this Relation at the given
// 0-based positions, in the given order. This Relation is materialized when the result is
// first iterated.
func (r *Relation) Select(indexes []int) *Relation {
	var l []tabular.Tuple
	i := 0
	gen := func() (tabular.Tuple, error) {
		if l == nil {
			var err error
			if l, err = r.data.ToList(); err != nil {
				return nil, err
			}
		}
		if i >= len(indexes) {
			return nil, io.EOF
		}
		idx := indexes[i]
		if idx < 0 || idx >= len(l) {
			return nil, &errors.InvalidArgumentError{
				Op:     "Select",
				Reason: fmt.Sprintf("record index %d out of range for relation %s with %d records", idx, r.name, len(l)),
			}
		}
		i++
		return l[idx], nil
	}
	return r.derive(r.schema, gen)
}

// Filter returns a Relation which lazily yields the records of this Relation for which fn returns true
func (r *Relation) Filter(fn FilterOperation) *Relation {
	safeFn := util.SafeFilterOperation(fn)
	next := lazyIter(r.data)
	s := r.schema
	gen := func() (tabular.Tuple, error) {
		for {
			t, err := next()
			if err != nil {
				return nil, err
			}
			keep, err := safeFn(record.Bind(s, t))
			if err != nil {
				return nil, err
			}
			if keep {
				return t, nil
			}
		}
	}
	return r.derive(r.schema, gen)
}

// Project returns a Relation which lazily yields the columns selected by refs, in order
func (r *Relation) Project(refs ...schema.ColumnRef) (*Relation, error) {
	projected, idx, err := r.schema.Project(refs...)
	if err != nil {
		return nil, err
	}
	next := lazyIter(r.data)
	gen := func() (tabular.Tuple, error) {
		t, err := next()
		if err != nil {
			return nil, err
		}
		return record.ProjectRaw(t, idx), nil
	}
	return r.derive(projected, gen), nil
}

// SortOptions selects how a Relation is sorted. The first strategy which is set is used:
// Columns, then Key, then Less. If none is set, records are sorted by their whole raw record.
type SortOptions struct {
	Columns []schema.ColumnRef // Columns sorts by the values of these columns
	Key     KeyingOperation    // Key sorts by the Tuple it returns for each Record
	Less    LessOperation      // Less sorts according to a comparator
	Reverse bool               // Reverse sorts in descending order. Equal records keep their relative order.
}

type sortItem struct {
	raw tabular.Tuple
	key tabular.Tuple
}

// Sort materializes this Relation and returns a Relation over its records in sorted order.
// The sort is stable.
func (r *Relation) Sort(opts SortOptions) (*Relation, error) {
	logging.Default().Debugf("Sorting relation %s", r.name)
	var keyFn func(rec record.Record) (tabular.Tuple, error)
	switch {
	case len(opts.Columns) > 0:
		idx, err := r.schema.ResolveAll(opts.Columns)
		if err != nil {
			return nil, err
		}
		keyFn = func(rec record.Record) (tabular.Tuple, error) {
			return record.ProjectRaw(rec.Raw(), idx), nil
		}
	case opts.Key != nil:
		keyFn = util.SafeKeyingOperation(opts.Key)
	case opts.Less != nil:
		// compared pairwise below
	default:
		keyFn = func(rec record.Record) (tabular.Tuple, error) {
			return rec.Raw(), nil
		}
	}
	items := make([]sortItem, 0)
	next := r.data.Iter()
	for {
		t, err := next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		item := sortItem{raw: t}
		if keyFn != nil {
			if item.key, err = keyFn(record.Bind(r.schema, t)); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	var compare func(a, b sortItem) int
	var sortErr error
	if keyFn != nil {
		compare = func(a, b sortItem) int {
			return a.key.Compare(b.key)
		}
	} else {
		less := util.SafeLessOperation(opts.Less)
		compare = func(a, b sortItem) int {
			if sortErr != nil {
				return 0
			}
			ra, rb := record.Bind(r.schema, a.raw), record.Bind(r.schema, b.raw)
			if lt, err := less(ra, rb); err != nil {
				sortErr = err
				return 0
			} else if lt {
				return -1
			}
			if gt, err := less(rb, ra); err != nil {
				sortErr = err
				return 0
			} else if gt {
				return 1
			}
			return 0
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if opts.Reverse {
			return compare(items[i], items[j]) > 0
		}
		return compare(items[i], items[j]) < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	sorted := make([]tabular.Tuple, len(items))
	for i, item := range items {
		sorted[i] = item.raw
	}
	return r.derive(r.schema, iterable.FromSlice(sorted)), nil
}

// Map returns a Relation with Schema schemaTo, which lazily yields the result of
// applying fn to the columns colsFrom of each record of this Relation
func (r *Relation) Map(colsFrom []schema.ColumnRef, schemaTo *schema.Schema, fn RawMapOperation, conf Conf) (*Relation, error) {
	idx, err := r.schema.ResolveAll(colsFrom)
	if err != nil {
		return nil, err
	}
	safeFn := util.SafeRawMapOperation(fn)
	next := lazyIter(r.data)
	gen := func() (tabular.Tuple, error) {
		t, err := next()
		if err != nil {
			return nil, err
		}
		return safeFn(record.ProjectRaw(t, idx))
	}
	return FromGenerator(schemaTo, gen, conf), nil
}

// MapR returns a Relation with Schema schemaTo, which lazily yields the result of
// applying fn to each Record of this Relation
func (r *Relation) MapR(schemaTo *schema.Schema, fn MapOperation, conf Conf) *Relation {
	safeFn := util.SafeMapOperation(fn)
	next := lazyIter(r.data)
	s := r.schema
	gen := func() (tabular.Tuple, error) {
		t, err := next()
		if err != nil {
			return nil, err
		}
		return safeFn(record.Bind(s, t))
	}
	return FromGenerator(schemaTo, gen, conf)
}

// MapG lazily applies fn to each raw record of r, after projecting it onto colsFrom
// if any are given. The returned function produces io.EOF once r is exhausted.
func MapG[T any](r *Relation, fn func(raw tabular.Tuple) (T, error), colsFrom ...schema.ColumnRef) (func() (T, error), error) {
	src := r
	if len(colsFrom) > 0 {
		var err error
		if src, err = r.Project(colsFrom...); err != nil {
			return nil, err
		}
	}
	next := lazyIter(src.data)
	return func() (T, error) {
		var zero T
		t, err := next()
		if err != nil {
			return zero, err
		}
		return fn(t)
	}, nil
}

// MapL applies fn to each raw record of r, after projecting it onto colsFrom if any
// are given, and returns the results as a list
func MapL[T any](r *Relation, fn func(raw tabular.Tuple) (T, error), colsFrom ...schema.ColumnRef) ([]T, error) {
	next, err := MapG(r, fn, colsFrom...)
	if err != nil {
		return nil, err
	}
	res := make([]T, 0)
	for {
		v, err := next()
		if err == io.EOF {
			return res, nil
		} else if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
}

// Foldl folds the Records of r from the left, in iteration order
func Foldl[A any](r *Relation, op FoldOperation[A], init A) (A, error) {
	acc := init
	err := r.ForEach(func(rec record.Record) (err error) {
		acc, err = op(acc, rec)
		return
	})
	return acc, err
}

// Write renders this Relation to w: a header line, then one line per record,
// with fields joined by sep
func (r *Relation) Write(w io.Writer, sep string) error {
	return r.WriteText(w, sep, true)
}

// WriteText renders one line per record of this Relation to w, with fields joined by sep
// and formatted by their column types. The "#name::Type" header line comes first if header is set.
func (r *Relation) WriteText(w io.Writer, sep string, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := bw.WriteString(r.schema.Show(sep) + "\n"); err != nil {
			return err
		}
	}
	next := r.data.Iter()
	for {
		t, err := next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		line, err := r.schema.Format(t, sep)
		if err != nil {
			return err
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Show renders this Relation as text, as Write does
func (r *Relation) Show(sep string) (string, error) {
	var buf strings.Builder
	if err := r.Write(&buf, sep); err != nil {
		return "", err
	}
	return buf.String(), nil
}
