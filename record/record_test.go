package record

import (
	stderrors "errors"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) tabular.Value {
	return tabular.Decimal(decimal.RequireFromString(s))
}

func testSchema(t *testing.T) *schema.Schema {
	s, err := schema.Parse("#id::Integer name price::Decimal", "")
	require.Nil(t, err)
	return s
}

func TestNewValidates(t *testing.T) {
	s := testSchema(t)
	raw := tabular.Tuple{tabular.Int(1), tabular.String("apple"), dec("0.50")}
	r, err := New(s, raw)
	require.Nil(t, err)
	require.Equal(t, 3, r.Len())
	require.Equal(t, int64(1), r.At(0).Int())
	require.Equal(t, "1\tapple\t0.50", r.String())

	_, err = New(s, raw[:2])
	var mismatch *errors.TypeMismatchError
	require.True(t, stderrors.As(err, &mismatch))
	_, err = New(s, tabular.Tuple{tabular.String("1"), raw[1], raw[2]})
	require.True(t, stderrors.As(err, &mismatch))
}

func TestGetAndValues(t *testing.T) {
	s := testSchema(t)
	r := Bind(s, tabular.Tuple{tabular.Int(2), tabular.String("pear"), dec("1.25")})
	v, err := r.Get("name")
	require.Nil(t, err)
	require.Equal(t, "pear", v.Str())
	_, err = r.Get("weight")
	var notFound *errors.ColumnNotFoundError
	require.True(t, stderrors.As(err, &notFound))

	vals, err := r.Values(schema.Col("price"), schema.Pos(0))
	require.Nil(t, err)
	require.True(t, vals.Equal(tabular.Tuple{dec("1.25"), tabular.Int(2)}))
}

func TestProject(t *testing.T) {
	s := testSchema(t)
	r := Bind(s, tabular.Tuple{tabular.Int(2), tabular.String("pear"), dec("1.25")})
	p, err := r.Project(schema.Cols("name", "id")...)
	require.Nil(t, err)
	require.Equal(t, []string{"name", "id"}, p.Schema().ColumnNames())
	require.Equal(t, "pear\t2", p.String())
	require.True(t, p.Schema().IsMatch(p.Raw()))
	// the original is untouched
	require.Equal(t, 3, r.Len())

	_, err = r.Project(schema.Pos(7))
	var outOfRange *errors.ColumnIndexError
	require.True(t, stderrors.As(err, &outOfRange))
}

func TestEqual(t *testing.T) {
	s := testSchema(t)
	a := Bind(s, tabular.Tuple{tabular.Int(2), tabular.String("pear"), dec("1.25")})
	b := Bind(s.Clone(), tabular.Tuple{tabular.Int(2), tabular.String("pear"), dec("1.250")})
	c := Bind(s, tabular.Tuple{tabular.Int(3), tabular.String("pear"), dec("1.25")})
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestProjectRaw(t *testing.T) {
	raw := tabular.Tuple{tabular.Int(1), tabular.Int(2), tabular.Int(3)}
	require.True(t, ProjectRaw(raw, []int{2, 2, 0}).Equal(tabular.Tuple{tabular.Int(3), tabular.Int(3), tabular.Int(1)}))
	require.Len(t, ProjectRaw(raw, nil), 0)
}
