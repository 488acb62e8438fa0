package util

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/schema"
	"github.com/stretchr/testify/require"
)

func testRecord(t *testing.T) record.Record {
	s, err := schema.Parse("#a::Integer b", "")
	require.Nil(t, err)
	r, err := record.New(s, tabular.Tuple{tabular.Int(1), tabular.String("x")})
	require.Nil(t, err)
	return r
}

func TestSafeFilterOperation(t *testing.T) {
	rec := testRecord(t)
	keep, err := SafeFilterOperation(func(rec record.Record) (bool, error) {
		return rec.At(0).Int() == 1, nil
	})(rec)
	require.Nil(t, err)
	require.True(t, keep)

	boom := fmt.Errorf("boom")
	_, err = SafeFilterOperation(func(rec record.Record) (bool, error) {
		return false, boom
	})(rec)
	require.ErrorIs(t, err, boom)
	require.True(t, strings.HasPrefix(err.Error(), "Filter Error: boom"))
	require.Contains(t, err.Error(), "Record: (1, \"x\")")

	_, err = SafeFilterOperation(func(rec record.Record) (bool, error) {
		panic("oops")
	})(rec)
	require.NotNil(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "Filter Panic: oops"))
}

func TestSafeMapOperationPanicWithError(t *testing.T) {
	rec := testRecord(t)
	boom := fmt.Errorf("boom")
	_, err := SafeMapOperation(func(rec record.Record) (tabular.Tuple, error) {
		panic(boom)
	})(rec)
	require.ErrorIs(t, err, boom)
	require.True(t, strings.HasPrefix(err.Error(), "Map Panic: boom"))

	_, err = SafeRawMapOperation(func(raw tabular.Tuple) (tabular.Tuple, error) {
		return raw[5:], nil
	})(rec.Raw())
	require.NotNil(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "Map Panic:"))
}

func TestSafeKeyingAndLessOperation(t *testing.T) {
	rec := testRecord(t)
	key, err := SafeKeyingOperation(func(rec record.Record) (tabular.Tuple, error) {
		return rec.Raw()[:1], nil
	})(rec)
	require.Nil(t, err)
	require.Len(t, key, 1)

	_, err = SafeLessOperation(func(a, b record.Record) (bool, error) {
		return false, fmt.Errorf("incomparable")
	})(rec, rec)
	require.True(t, strings.HasPrefix(err.Error(), "Comparison Error: incomparable"))
	require.Contains(t, err.Error(), "LRecord: (1, \"x\")")
}
