package relation

import (
	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/record"
)

// FilterOperation - A generic function for determining whether or not a Record should be retained
type FilterOperation func(rec record.Record) (bool, error)

// MapOperation - A generic function for turning a Record into a raw record of another Schema
type MapOperation func(rec record.Record) (tabular.Tuple, error)

// RawMapOperation - A generic function for turning a (projected) raw record into a raw record of another Schema
type RawMapOperation func(raw tabular.Tuple) (tabular.Tuple, error)

// KeyingOperation - A generic function for generating a sort key from a Record
type KeyingOperation func(rec record.Record) (tabular.Tuple, error)

// LessOperation - A generic function which returns true iff a should sort before b
type LessOperation func(a, b record.Record) (bool, error)

// FoldOperation - A generic function for folding a Record into an accumulated value
type FoldOperation[A any] func(acc A, rec record.Record) (A, error)

// An Accumulator siphons Records into a custom data structure, as an
// alternative to writing a FoldOperation. Accumulators of the same kind
// may be merged, so partial results can be combined.
type Accumulator interface {
	Accumulate(rec record.Record) error // Accumulate adds a Record to this Accumulator
	Merge(o Accumulator) error          // Merge merges another Accumulator into this one
}

// AccumulatorFactory is a function that produces a fresh Accumulator
type AccumulatorFactory func() Accumulator
