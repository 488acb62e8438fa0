package accumulators

import (
	"fmt"

	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/relation"
)

// Compose returns a factory for Composed Accumulators
func Compose(faccs ...relation.AccumulatorFactory) relation.AccumulatorFactory {
	return func() relation.Accumulator {
		accs := make([]relation.Accumulator, len(faccs))
		for i, f := range faccs {
			accs[i] = f()
		}
		return &Composed{accs: accs}
	}
}

// Composed composes other Accumulators
type Composed struct {
	accs []relation.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []relation.Accumulator {
	return c.accs
}

// Accumulate adds a record to all contained Accumulators
func (c *Composed) Accumulate(rec record.Record) error {
	for _, a := range c.accs {
		err := a.Accumulate(rec)
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge merges another Composed Accumulator into this one, merging all contained Accumulators
func (c *Composed) Merge(o relation.Accumulator) error {
	compa, ok := o.(*Composed)
	if !ok || len(compa.accs) != len(c.accs) {
		return fmt.Errorf("Incoming accumulator is not a matching Composed Accumulator")
	}
	for i, a := range c.accs {
		err := a.Merge(compa.accs[i])
		if err != nil {
			return err
		}
	}
	return nil
}
