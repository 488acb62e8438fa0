// Package tabular contains the value model of Tabular, a small relational algebra engine over
// streams of delimited text records. This root package defines the types shared by every other
// package (Values, Tuples and ColumnTypes) and the process-wide ColumnType registry, and is an
// excellent overview of Tabular's key concepts:
//
// A Tuple (raw record) is an ordered sequence of Values, one per column. A Value is a small
// tagged union (String, Integer, Float, Decimal, or a Custom value for registered types).
//
// A ColumnType knows how to parse a Value from text, format it back, and validate that a Value
// belongs to it. ColumnTypes are looked up by name when a Schema header such as
// "#name::String count::Integer" is parsed (see the schema package).
//
// Relations (see the relation package) bind a Schema to a source of Tuples, and support
// project, filter, sort, group-by, fold, map and sort-merge join.
package tabular
