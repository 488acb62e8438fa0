package accumulators

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/relation"
	"github.com/shopspring/decimal"
)

// Adder returns a factory for Sum Accumulators over the named column
func Adder(colName string) relation.AccumulatorFactory {
	return func() relation.Accumulator {
		return &Sum{colName: colName}
	}
}

// Sum sums the values of a numeric column. Integer, Float and Decimal columns
// are all summed as arbitrary-precision decimals.
type Sum struct {
	colName string
	sum     decimal.Decimal
}

// GetSum returns the sum from this Accumulator
func (a *Sum) GetSum() decimal.Decimal {
	return a.sum
}

// Accumulate adds a record to this Accumulator
func (a *Sum) Accumulate(rec record.Record) error {
	d, err := numeric(rec, a.colName)
	if err != nil {
		return err
	}
	a.sum = a.sum.Add(d)
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o relation.Accumulator) error {
	ca, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	a.sum = a.sum.Add(ca.sum)
	return nil
}

func numeric(rec record.Record, colName string) (decimal.Decimal, error) {
	v, err := rec.Get(colName)
	if err != nil {
		return decimal.Zero, err
	}
	switch v.Kind() {
	case tabular.IntegerKind:
		return decimal.NewFromInt(v.Int()), nil
	case tabular.FloatKind:
		return decimal.NewFromFloat(v.Float()), nil
	case tabular.DecimalKind:
		return v.Decimal(), nil
	default:
		return decimal.Zero, fmt.Errorf("Column %s is of kind %s, which is not numeric", colName, v.Kind())
	}
}
