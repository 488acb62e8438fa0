package relation

import (
	stderrors "errors"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/schema"
	"github.com/stretchr/testify/require"
)

func createKeyed(t *testing.T, header string, rows ...tabular.Tuple) *Relation {
	r, err := New(mustParseSchema(t, header), rows, Conf{Reuse: true})
	require.Nil(t, err)
	return r
}

func TestJoinTwo(t *testing.T) {
	a := createKeyed(t, "#k::Integer v1::Integer", ints(0, 0), ints(1, 1), ints(2, 2))
	b := createKeyed(t, "#k::Integer v2::Integer", ints(0, 0), ints(1, 2), ints(2, 4))
	joined, err := Join([]string{"k"}, JoinInput{a, []string{"v1"}}, JoinInput{b, []string{"v2"}})
	require.Nil(t, err)
	require.Equal(t, []string{"k", "v1", "v2"}, joined.Schema().ColumnNames())
	require.Equal(t, []tabular.Tuple{ints(0, 0, 0), ints(1, 1, 2), ints(2, 2, 4)}, collect(t, joined))
}

func TestJoinExcludesUnmatchedKeys(t *testing.T) {
	a := createKeyed(t, "#k::Integer v1::Integer", ints(3, 9), ints(0, 0), ints(5, 5), ints(1, 1))
	b := createKeyed(t, "#k::Integer v2::Integer", ints(4, 4), ints(1, 2), ints(0, 0), ints(5, 10))
	joined, err := JoinTwo([]string{"k"}, JoinInput{a, []string{"v1"}}, JoinInput{b, []string{"v2"}})
	require.Nil(t, err)
	require.Equal(t, []tabular.Tuple{ints(0, 0, 0), ints(1, 1, 2), ints(5, 5, 10)}, collect(t, joined))
	require.Len(t, collect(t, joined), 0)
}

func TestJoinLeftKeysBelowRightKeys(t *testing.T) {
	a := createKeyed(t, "#k::Integer v1::Integer", ints(1, 1), ints(2, 2), ints(3, 3), ints(7, 7))
	b := createKeyed(t, "#k::Integer v2::Integer", ints(3, 30), ints(7, 70))
	joined, err := JoinTwo([]string{"k"}, JoinInput{a, []string{"v1"}}, JoinInput{b, []string{"v2"}})
	require.Nil(t, err)
	require.Equal(t, []tabular.Tuple{ints(3, 3, 30), ints(7, 7, 70)}, collect(t, joined))
}

func TestJoinMany(t *testing.T) {
	a := createKeyed(t, "#k1::Integer k2::Integer v1::Integer", ints(0, 0, 0), ints(1, 1, 1), ints(2, 2, 2))
	rows := make([]tabular.Tuple, 0)
	for x := int64(0); x < 3; x++ {
		for y := int64(0); y < 3; y++ {
			rows = append(rows, ints(x, y, x+y))
		}
	}
	b := createKeyed(t, "#k1::Integer k2::Integer v2::Integer", rows...)
	c := createKeyed(t, "#k1::Integer k2::Integer v3::Integer", ints(2, 2, 8), ints(0, 0, 6))
	joined, err := Join([]string{"k1", "k2"},
		JoinInput{a, []string{"v1"}},
		JoinInput{b, []string{"v2"}},
		JoinInput{c, []string{"v3"}},
	)
	require.Nil(t, err)
	require.Equal(t, []string{"k1", "k2", "v1", "v2", "v3"}, joined.Schema().ColumnNames())
	reusable := joined.Reuse()
	require.Equal(t, []tabular.Tuple{ints(0, 0, 0, 0, 6), ints(2, 2, 2, 4, 8)}, collect(t, reusable))
	require.Equal(t, []tabular.Tuple{ints(0, 0, 0, 0, 6), ints(2, 2, 2, 4, 8)}, collect(t, reusable))
}

func TestJoinWithoutOutputColumns(t *testing.T) {
	a := createKeyed(t, "#k::Integer v1::Integer", ints(0, 0), ints(1, 1))
	b := createKeyed(t, "#k::Integer", ints(1))
	joined, err := Join([]string{"k"}, JoinInput{a, nil}, JoinInput{b, nil})
	require.Nil(t, err)
	require.Equal(t, []tabular.Tuple{ints(1)}, collect(t, joined))
}

func TestJoinErrors(t *testing.T) {
	a := createKeyed(t, "#k::Integer v1::Integer", ints(0, 0))
	b := createKeyed(t, "#k::Integer v2::Integer", ints(0, 0))
	f := createKeyed(t, "#k::Float v3::Integer")
	var invalid *errors.InvalidArgumentError
	var notFound *errors.ColumnNotFoundError
	var duplicate *errors.DuplicateColumnError

	_, err := Join([]string{"k"}, JoinInput{a, []string{"v1"}})
	require.True(t, stderrors.As(err, &invalid))

	_, err = Join(nil, JoinInput{a, []string{"v1"}}, JoinInput{b, []string{"v2"}})
	require.True(t, stderrors.As(err, &invalid))

	_, err = Join([]string{"k"}, JoinInput{a, []string{"v1"}}, JoinInput{b, []string{"v9"}})
	require.True(t, stderrors.As(err, &notFound))

	_, err = Join([]string{"x"}, JoinInput{a, []string{"v1"}}, JoinInput{b, []string{"v2"}})
	require.True(t, stderrors.As(err, &notFound))

	_, err = Join([]string{"k"}, JoinInput{a, []string{"v1"}}, JoinInput{f, []string{"v3"}})
	require.True(t, stderrors.As(err, &invalid))

	_, err = Join([]string{"k"}, JoinInput{a, []string{"v1"}}, JoinInput{a, []string{"v1"}})
	require.True(t, stderrors.As(err, &duplicate))
}

func TestBuildIndex(t *testing.T) {
	r := createKeyed(t, "#k::Integer name", tabular.Tuple{tabular.Int(1), tabular.String("a")}, tabular.Tuple{tabular.Int(2), tabular.String("b")})
	ix, err := BuildIndex(r, schema.Col("k"))
	require.Nil(t, err)
	require.Equal(t, 2, ix.Len())
	rec, ok := ix.Lookup(ints(2))
	require.True(t, ok)
	require.Equal(t, "b", rec.At(1).Str())
	_, ok = ix.Lookup(ints(3))
	require.False(t, ok)
	require.Equal(t, []string{"k"}, ix.KeySchema().ColumnNames())
	require.Equal(t, 2, ix.Schema().Len())

	dup := createKeyed(t, "#k::Integer name", tabular.Tuple{tabular.Int(1), tabular.String("a")}, tabular.Tuple{tabular.Int(1), tabular.String("b")})
	_, err = BuildIndex(dup, schema.Col("k"))
	var duplicate *errors.DuplicateKeyError
	require.True(t, stderrors.As(err, &duplicate))
}

func TestHashJoin(t *testing.T) {
	left := createKeyed(t, "#id::Integer name",
		tabular.Tuple{tabular.Int(1), tabular.String("apple")},
		tabular.Tuple{tabular.Int(2), tabular.String("pear")},
	)
	right := createKeyed(t, "#qty::Integer item::Integer",
		ints(10, 2), ints(5, 3), ints(7, 1), ints(1, 2),
	)
	joined, err := HashJoin(left, right, HashJoinOptions{
		LeftKeys:  schema.Cols("id"),
		RightKeys: schema.Cols("item"),
	})
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "qty"}, joined.Schema().ColumnNames())
	require.Equal(t, []tabular.Tuple{
		{tabular.Int(2), tabular.String("pear"), tabular.Int(10)},
		{tabular.Int(1), tabular.String("apple"), tabular.Int(7)},
		{tabular.Int(2), tabular.String("pear"), tabular.Int(1)},
	}, collect(t, joined))
}

func TestHashJoinOutputColumns(t *testing.T) {
	left := createKeyed(t, "#id::Integer name", tabular.Tuple{tabular.Int(1), tabular.String("apple")})
	right := createKeyed(t, "#item::Integer qty::Integer", ints(1, 3))
	output, err := ParseJoinColumns("r2,l2")
	require.Nil(t, err)
	joined, err := HashJoin(left, right, HashJoinOptions{
		LeftKeys:  schema.Cols("id"),
		RightKeys: schema.Cols("item"),
		Output:    output,
	})
	require.Nil(t, err)
	require.Equal(t, []string{"qty", "name"}, joined.Schema().ColumnNames())
	require.Equal(t, []tabular.Tuple{{tabular.Int(3), tabular.String("apple")}}, collect(t, joined))
}

func TestHashJoinErrors(t *testing.T) {
	left := createKeyed(t, "#id::Integer name")
	right := createKeyed(t, "#item::Integer qty::Integer name")
	var invalid *errors.InvalidArgumentError
	var duplicate *errors.DuplicateColumnError

	_, err := HashJoin(left, right, HashJoinOptions{LeftKeys: schema.Cols("id"), RightKeys: schema.Cols("item", "qty")})
	require.True(t, stderrors.As(err, &invalid))

	_, err = HashJoin(left, right, HashJoinOptions{LeftKeys: schema.Cols("name"), RightKeys: schema.Cols("item")})
	require.True(t, stderrors.As(err, &invalid))

	_, err = HashJoin(left, right, HashJoinOptions{LeftKeys: schema.Cols("id"), RightKeys: schema.Cols("item")})
	require.True(t, stderrors.As(err, &duplicate))
}

func TestParseJoinColumns(t *testing.T) {
	cols, err := ParseJoinColumns("l0, r1,lname")
	require.Nil(t, err)
	require.Equal(t, []JoinColumn{
		{Left: true, Ref: schema.All()},
		{Left: false, Ref: schema.Pos(0)},
		{Left: true, Ref: schema.Col("name")},
	}, cols)

	_, err = ParseJoinColumns("x1")
	require.NotNil(t, err)
	_, err = ParseJoinColumns("l")
	require.NotNil(t, err)
	_, err = ParseJoinColumns("l-1")
	require.NotNil(t, err)
}
