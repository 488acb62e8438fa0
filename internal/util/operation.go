package util

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/record"
)

// SafeFilterOperation wraps a predicate such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp func(rec record.Record) (bool, error)) func(rec record.Record) (bool, error) {
	return func(rec record.Record) (keep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Filter", r, "Record: "+rec.Raw().String())
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRecord: %s", err, rec.Raw())
			}
		}()
		keep, err = filterOp(rec)
		return
	}
}

// SafeMapOperation wraps a Record mapper such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp func(rec record.Record) (tabular.Tuple, error)) func(rec record.Record) (tabular.Tuple, error) {
	return func(rec record.Record) (result tabular.Tuple, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Map", r, "Record: "+rec.Raw().String())
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nRecord: %s", err, rec.Raw())
			}
		}()
		result, err = mapOp(rec)
		return
	}
}

// SafeRawMapOperation wraps a raw record mapper such that panics are recovered and nice error messages are constructed
func SafeRawMapOperation(mapOp func(raw tabular.Tuple) (tabular.Tuple, error)) func(raw tabular.Tuple) (tabular.Tuple, error) {
	return func(raw tabular.Tuple) (result tabular.Tuple, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Map", r, "Record: "+raw.String())
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nRecord: %s", err, raw)
			}
		}()
		result, err = mapOp(raw)
		return
	}
}

// SafeKeyingOperation wraps a sort key function such that panics are recovered and nice error messages are constructed
func SafeKeyingOperation(keyingOp func(rec record.Record) (tabular.Tuple, error)) func(rec record.Record) (tabular.Tuple, error) {
	return func(rec record.Record) (key tabular.Tuple, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Keying", r, "Record: "+rec.Raw().String())
			} else if err != nil {
				err = fmt.Errorf("Keying Error: %w\nRecord: %s", err, rec.Raw())
			}
		}()
		key, err = keyingOp(rec)
		return
	}
}

// SafeLessOperation wraps a comparator such that panics are recovered and nice error messages are constructed
func SafeLessOperation(lessOp func(a, b record.Record) (bool, error)) func(a, b record.Record) (bool, error) {
	return func(a, b record.Record) (less bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Comparison", r, "LRecord: "+a.Raw().String()+"\nRRecord: "+b.Raw().String())
			} else if err != nil {
				err = fmt.Errorf("Comparison Error: %w\nLRecord: %s\nRRecord: %s", err, a.Raw(), b.Raw())
			}
		}()
		less, err = lessOp(a, b)
		return
	}
}
