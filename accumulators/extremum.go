package accumulators

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/relation"
)

// Minimizer returns a factory for Accumulators tracking the smallest value of the named column
func Minimizer(colName string) relation.AccumulatorFactory {
	return func() relation.Accumulator {
		return &Extremum{colName: colName, sign: -1}
	}
}

// Maximizer returns a factory for Accumulators tracking the largest value of the named column
func Maximizer(colName string) relation.AccumulatorFactory {
	return func() relation.Accumulator {
		return &Extremum{colName: colName, sign: 1}
	}
}

// Extremum tracks the smallest or largest value of a column, in the order of tabular.Compare
type Extremum struct {
	colName string
	sign    int
	seen    bool
	value   tabular.Value
}

// GetValue returns the extreme value, or false if no records were accumulated
func (a *Extremum) GetValue() (tabular.Value, bool) {
	return a.value, a.seen
}

func (a *Extremum) offer(v tabular.Value) {
	if !a.seen || tabular.Compare(v, a.value)*a.sign > 0 {
		a.value = v
		a.seen = true
	}
}

// Accumulate adds a record to this Accumulator
func (a *Extremum) Accumulate(rec record.Record) error {
	v, err := rec.Get(a.colName)
	if err != nil {
		return err
	}
	a.offer(v)
	return nil
}

// Merge merges another Accumulator into this one
func (a *Extremum) Merge(o relation.Accumulator) error {
	ea, ok := o.(*Extremum)
	if !ok || ea.sign != a.sign {
		return fmt.Errorf("Incoming accumulator is not a matching Extremum Accumulator")
	}
	if ea.seen {
		a.offer(ea.value)
	}
	return nil
}
