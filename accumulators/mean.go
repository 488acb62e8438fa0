package accumulators

import (
	"fmt"

	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/relation"
	"github.com/shopspring/decimal"
)

// Averager returns a factory for Mean Accumulators over the named column
func Averager(colName string) relation.AccumulatorFactory {
	return func() relation.Accumulator {
		return &Mean{colName: colName}
	}
}

// Mean computes the arithmetic mean of a numeric column
type Mean struct {
	colName string
	count   int64
	sum     decimal.Decimal
}

// GetMean returns the mean from this Accumulator, or false if no records were accumulated
func (a *Mean) GetMean() (decimal.Decimal, bool) {
	if a.count == 0 {
		return decimal.Zero, false
	}
	return a.sum.Div(decimal.NewFromInt(a.count)), true
}

// GetCount returns the number of records accumulated
func (a *Mean) GetCount() int64 {
	return a.count
}

// Accumulate adds a record to this Accumulator
func (a *Mean) Accumulate(rec record.Record) error {
	d, err := numeric(rec, a.colName)
	if err != nil {
		return err
	}
	a.sum = a.sum.Add(d)
	a.count++
	return nil
}

// Merge merges another Accumulator into this one
func (a *Mean) Merge(o relation.Accumulator) error {
	ma, ok := o.(*Mean)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Mean Accumulator")
	}
	a.sum = a.sum.Add(ma.sum)
	a.count += ma.count
	return nil
}
