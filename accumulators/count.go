package accumulators

import (
	"fmt"

	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/relation"
)

// Counter returns a new Count Accumulator
func Counter() relation.Accumulator {
	return new(Count)
}

// Count counts records
type Count struct {
	count uint64
}

// GetCount returns the record count from this Accumulator
func (a *Count) GetCount() uint64 {
	return a.count
}

// Accumulate adds a record to this Accumulator
func (a *Count) Accumulate(rec record.Record) error {
	a.count++
	return nil
}

// Merge merges another Accumulator into this one
func (a *Count) Merge(o relation.Accumulator) error {
	ca, ok := o.(*Count)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Count Accumulator")
	}
	a.count += ca.count
	return nil
}
