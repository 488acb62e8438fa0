package iterable

import (
	"fmt"
	"io"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/stretchr/testify/require"
)

func tuples(n int) []tabular.Tuple {
	l := make([]tabular.Tuple, n)
	for i := range l {
		l[i] = tabular.Tuple{tabular.Int(int64(i))}
	}
	return l
}

func TestCollect(t *testing.T) {
	l, err := Collect(FromSlice(tuples(3)))
	require.Nil(t, err)
	require.Len(t, l, 3)

	boom := fmt.Errorf("boom")
	_, err = Collect(Failing(boom))
	require.Equal(t, boom, err)
}

func TestListIsRepeatable(t *testing.T) {
	d := FromList(tuples(4), false)
	require.True(t, d.IsList())
	for i := 0; i < 2; i++ {
		l, err := Collect(d.Iter())
		require.Nil(t, err)
		require.Len(t, l, 4)
	}
}

func TestGeneratorIsSinglePass(t *testing.T) {
	d := FromGenerator(FromSlice(tuples(4)), false)
	require.False(t, d.IsList())
	first, err := d.Iter()()
	require.Nil(t, err)
	require.Equal(t, int64(0), first[0].Int())
	rest, err := Collect(d.Iter())
	require.Nil(t, err)
	require.Len(t, rest, 3)
	_, err = d.Iter()()
	require.Equal(t, io.EOF, err)
}

func TestReusableGeneratorMaterializes(t *testing.T) {
	calls := 0
	src := FromSlice(tuples(5))
	d := FromGenerator(func() (tabular.Tuple, error) {
		calls++
		return src()
	}, true)
	require.True(t, d.IsReusable())
	for i := 0; i < 3; i++ {
		l, err := Collect(d.Iter())
		require.Nil(t, err)
		require.Len(t, l, 5)
	}
	require.True(t, d.IsList())
	// five records plus the final io.EOF
	require.Equal(t, 6, calls)
}

func TestReusableGeneratorError(t *testing.T) {
	boom := fmt.Errorf("boom")
	d := FromGenerator(Failing(boom), true)
	_, err := d.Iter()()
	require.Equal(t, boom, err)
}

func TestAppend(t *testing.T) {
	d := FromGenerator(FromSlice(tuples(2)), true)
	require.Nil(t, d.Append(tabular.Tuple{tabular.Int(9)}))
	l, err := d.ToList()
	require.Nil(t, err)
	require.Len(t, l, 3)
	require.Equal(t, int64(9), l[2][0].Int())
}

func TestConcat(t *testing.T) {
	left := FromList(tuples(2), true)
	right := FromGenerator(FromSlice(tuples(3)), false)
	both := left.Concat(right)
	require.True(t, both.IsReusable())
	l, err := Collect(both.Iter())
	require.Nil(t, err)
	require.Len(t, l, 5)
	require.Equal(t, int64(1), l[1][0].Int())
	require.Equal(t, int64(2), l[4][0].Int())
	// materialized on first iteration
	l, err = Collect(both.Iter())
	require.Nil(t, err)
	require.Len(t, l, 5)

	single := FromList(tuples(1), false).Concat(FromList(tuples(1), false))
	require.False(t, single.IsReusable())
	l, err = Collect(single.Iter())
	require.Nil(t, err)
	require.Len(t, l, 2)
	l, err = Collect(single.Iter())
	require.Nil(t, err)
	require.Len(t, l, 0)
}

func TestReusableGeneratorErrorIsSticky(t *testing.T) {
	boom := fmt.Errorf("boom")
	rows := tuples(3)
	i := 0
	d := FromGenerator(func() (tabular.Tuple, error) {
		if i >= len(rows) {
			return nil, io.EOF
		}
		i++
		if i == 2 {
			return nil, boom
		}
		return rows[i-1], nil
	}, true)
	_, err := Collect(d.Iter())
	require.Equal(t, boom, err)
	// a second pass must not resume after the failed record
	for j := 0; j < 2; j++ {
		_, err = Collect(d.Iter())
		require.Equal(t, boom, err)
		_, err = d.ToList()
		require.Equal(t, boom, err)
	}
	require.Equal(t, boom, d.Append(tabular.Tuple{tabular.Int(9)}))
}
