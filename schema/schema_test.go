package schema

import (
	stderrors "errors"
	"testing"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/stretchr/testify/require"
)

func createTestSchema(t *testing.T) *Schema {
	s, err := Create(
		[]string{"col1", "col2", "col3"},
		[]tabular.ColumnType{&tabular.IntegerColumnType{}, &tabular.StringColumnType{}, &tabular.DecimalColumnType{}},
	)
	require.Nil(t, err)
	return s
}

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := createTestSchema(t)
	schema2, err := Parse("#a::Integer b c::Decimal", "")
	require.Nil(t, err)
	// names are ignored
	require.True(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentLength(t *testing.T) {
	schema1 := createTestSchema(t)
	schema2, err := Parse("#col1::Integer col2", "")
	require.Nil(t, err)
	require.False(t, schema1.Equals(schema2))
	require.False(t, schema1.Equals(nil))
}

func TestSchemaEqualityOrder(t *testing.T) {
	schema1 := createTestSchema(t)
	schema2, err := Parse("#col1::Integer col3::Decimal col2", "")
	require.Nil(t, err)
	require.False(t, schema1.Equals(schema2))
}

func TestParseAndShow(t *testing.T) {
	s, err := Parse("#id::Integer\tname\tprice::Decimal\tweight::Float\n", "\t")
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "price", "weight"}, s.ColumnNames())
	require.Equal(t, "String", s.Entry(1).Type().Name())
	require.Equal(t, "#id::Integer,name::String,price::Decimal,weight::Float", s.Show(","))
	require.Equal(t, "#id::Integer\tname::String\tprice::Decimal\tweight::Float", s.String())

	// round trip, with any separator
	for _, sep := range []string{"", "\t", ",", " | "} {
		header := s.Show(sep)
		if sep == "" {
			header = s.Show(" ")
		}
		parsed, err := Parse(header, sep)
		require.Nil(t, err)
		require.True(t, s.Equals(parsed))
		require.Equal(t, s.ColumnNames(), parsed.ColumnNames())
	}
}

func TestEmptySchemaRoundTrip(t *testing.T) {
	empty, err := New()
	require.Nil(t, err)
	for _, sep := range []string{"", "\t", ","} {
		header := empty.Show(sep)
		require.Equal(t, "#", header)
		parsed, err := Parse(header, sep)
		require.Nil(t, err)
		require.Equal(t, 0, parsed.Len())
		require.True(t, empty.Equals(parsed))
	}
}

func TestParseWithoutMarker(t *testing.T) {
	s, err := Parse("  a   b::Integer  ", "")
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b"}, s.ColumnNames())
}

func TestParseErrors(t *testing.T) {
	var parseErr *errors.SchemaParseError
	var unknown *errors.UnknownTypeError
	var duplicate *errors.DuplicateColumnError

	_, err := Parse("#c::Bogus", "")
	require.True(t, stderrors.As(err, &parseErr))
	require.True(t, stderrors.As(err, &unknown))
	require.Equal(t, "Bogus", unknown.Name)

	_, err = Parse("#a::Integer b::", "")
	require.True(t, stderrors.As(err, &parseErr))

	_, err = Parse("#a,,b", ",")
	require.True(t, stderrors.As(err, &parseErr))

	_, err = Parse("#a a::Integer", "")
	require.True(t, stderrors.As(err, &parseErr))
	require.True(t, stderrors.As(err, &duplicate))

	_, err = ParseEntry("9lives")
	require.True(t, stderrors.As(err, &parseErr))
}

func TestCreateErrors(t *testing.T) {
	var invalid *errors.InvalidArgumentError
	_, err := Create([]string{"a"}, nil)
	require.True(t, stderrors.As(err, &invalid))
	_, err = Create([]string{""}, []tabular.ColumnType{&tabular.StringColumnType{}})
	require.True(t, stderrors.As(err, &invalid))
	_, err = New(nil)
	require.True(t, stderrors.As(err, &invalid))
}

func TestLookup(t *testing.T) {
	s := createTestSchema(t)
	require.Equal(t, 3, s.Len())
	i, ok := s.Index("col2")
	require.True(t, ok)
	require.Equal(t, 1, i)
	require.True(t, s.HasColumn("col3"))
	require.False(t, s.HasColumn("col4"))
	e, i, err := s.EntryByName("col3")
	require.Nil(t, err)
	require.Equal(t, 2, i)
	require.Equal(t, "col3::Decimal", e.String())
	_, _, err = s.EntryByName("col4")
	var notFound *errors.ColumnNotFoundError
	require.True(t, stderrors.As(err, &notFound))
	require.Len(t, s.ColumnTypes(), 3)
}

func TestProject(t *testing.T) {
	s := createTestSchema(t)
	projected, idx, err := s.Project(Col("col3"), Pos(0), Col("col3"))
	require.Nil(t, err)
	require.Equal(t, []int{2, 0, 2}, idx)
	require.Equal(t, []string{"col3", "col1", "col3"}, projected.ColumnNames())
	i, ok := projected.Index("col3")
	require.True(t, ok)
	require.Equal(t, 0, i)

	projected, idx, err = s.Project(All())
	require.Nil(t, err)
	require.Equal(t, []int{0, 1, 2}, idx)
	require.True(t, projected.Equals(s))

	_, _, err = s.Project(Col("nope"))
	var notFound *errors.ColumnNotFoundError
	require.True(t, stderrors.As(err, &notFound))
	_, _, err = s.Project(Pos(3))
	var outOfRange *errors.ColumnIndexError
	require.True(t, stderrors.As(err, &outOfRange))
	_, _, err = s.Project(Pos(-1))
	require.True(t, stderrors.As(err, &outOfRange))
}

func TestIsMatchAndFormat(t *testing.T) {
	s := createTestSchema(t)
	raw, err := s.ParseValues([]string{"7", "seven", "7.70"})
	require.Nil(t, err)
	require.True(t, s.IsMatch(raw))
	require.False(t, s.IsMatch(raw[:2]))
	require.False(t, s.IsMatch(tabular.Tuple{tabular.String("7"), raw[1], raw[2]}))

	line, err := s.Format(raw, ",")
	require.Nil(t, err)
	require.Equal(t, "7,seven,7.70", line)

	var mismatch *errors.TypeMismatchError
	_, err = s.Format(raw[:2], ",")
	require.True(t, stderrors.As(err, &mismatch))
	require.True(t, stderrors.As(s.Check(raw[:1]), &mismatch))

	_, err = s.ParseValues([]string{"7", "seven"})
	require.True(t, stderrors.As(err, &mismatch))
	_, err = s.ParseValues([]string{"x", "seven", "1"})
	var valueErr *errors.ValueParseError
	require.True(t, stderrors.As(err, &valueErr))
	require.Equal(t, "col1", valueErr.Column)
}

func TestCloneAndRename(t *testing.T) {
	s := createTestSchema(t)
	c := s.Clone()
	require.Nil(t, c.RenameColumn("col1", "id"))
	require.Equal(t, []string{"id", "col2", "col3"}, c.ColumnNames())
	require.Equal(t, []string{"col1", "col2", "col3"}, s.ColumnNames())
	require.True(t, c.HasColumn("id"))
	require.False(t, c.HasColumn("col1"))
	require.True(t, c.Equals(s))

	require.Nil(t, c.RenameColumn("id", "id"))
	var duplicate *errors.DuplicateColumnError
	require.True(t, stderrors.As(c.RenameColumn("id", "col2"), &duplicate))
	var notFound *errors.ColumnNotFoundError
	require.True(t, stderrors.As(c.RenameColumn("col1", "x"), &notFound))
	var invalid *errors.InvalidArgumentError
	require.True(t, stderrors.As(c.RenameColumn("id", ""), &invalid))
}

func TestConcat(t *testing.T) {
	s := createTestSchema(t)
	o, err := Parse("#col4::Float", "")
	require.Nil(t, err)
	c, err := s.Concat(o)
	require.Nil(t, err)
	require.Equal(t, []string{"col1", "col2", "col3", "col4"}, c.ColumnNames())
	_, err = s.Concat(s)
	var duplicate *errors.DuplicateColumnError
	require.True(t, stderrors.As(err, &duplicate))
}

func TestParseColumnRefs(t *testing.T) {
	refs, err := ParseColumnRefs("1, 3,col2,0")
	require.Nil(t, err)
	require.Equal(t, []ColumnRef{Pos(0), Pos(2), Col("col2"), All()}, refs)
	require.Equal(t, "3", refs[1].String())
	require.Equal(t, "0", refs[3].String())
	require.Equal(t, "col2", refs[2].String())

	s := createTestSchema(t)
	idx, err := s.ResolveAll(refs)
	require.Nil(t, err)
	require.Equal(t, []int{0, 2, 1, 0, 1, 2}, idx)

	var invalid *errors.InvalidArgumentError
	_, err = ParseColumnRefs("")
	require.True(t, stderrors.As(err, &invalid))
	_, err = ParseColumnRefs("1,,2")
	require.True(t, stderrors.As(err, &invalid))
	_, err = ParseColumnRefs("-2")
	require.True(t, stderrors.As(err, &invalid))
}
