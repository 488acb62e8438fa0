package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies which variant of the Value union is populated
type Kind uint8

const (
	// InvalidKind is the Kind of the zero Value
	InvalidKind Kind = iota
	// StringKind indicates a string Value
	StringKind
	// IntegerKind indicates an int64 Value
	IntegerKind
	// FloatKind indicates a float64 Value
	FloatKind
	// DecimalKind indicates an arbitrary-precision decimal Value
	DecimalKind
	// CustomKind indicates a Value produced by a registered custom ColumnType
	CustomKind
)

// String returns the name of this Kind
func (k Kind) String() string {
	switch k {
	case StringKind:
		return "String"
	case IntegerKind:
		return "Integer"
	case FloatKind:
		return "Float"
	case DecimalKind:
		return "Decimal"
	case CustomKind:
		return "Custom"
	default:
		return "Invalid"
	}
}

// Custom is implemented by the values of registered custom ColumnTypes
type Custom interface {
	Compare(other Custom) int // Compare returns -1, 0 or 1, as with strings.Compare
	String() string           // String returns a canonical representation, also used for hashing
}

// Value is a single typed field of a Tuple
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	d    decimal.Decimal
	c    Custom
}

// String creates a String Value
func String(s string) Value {
	return Value{kind: StringKind, s: s}
}

// Int creates an Integer Value
func Int(i int64) Value {
	return Value{kind: IntegerKind, i: i}
}

// Float creates a Float Value
func Float(f float64) Value {
	return Value{kind: FloatKind, f: f}
}

// Decimal creates a Decimal Value
func Decimal(d decimal.Decimal) Value {
	return Value{kind: DecimalKind, d: d}
}

// CustomValue wraps a value of a registered custom ColumnType
func CustomValue(c Custom) Value {
	return Value{kind: CustomKind, c: c}
}

// Kind returns the Kind of this Value
func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Errorf("Value is %s, not %s", v.kind, k))
	}
}

// Str returns the contents of a String Value. Panics for any other Kind.
func (v Value) Str() string {
	v.mustBe(StringKind)
	return v.s
}

// Int returns the contents of an Integer Value. Panics for any other Kind.
func (v Value) Int() int64 {
	v.mustBe(IntegerKind)
	return v.i
}

// Float returns the contents of a Float Value. Panics for any other Kind.
func (v Value) Float() float64 {
	v.mustBe(FloatKind)
	return v.f
}

// Decimal returns the contents of a Decimal Value. Panics for any other Kind.
func (v Value) Decimal() decimal.Decimal {
	v.mustBe(DecimalKind)
	return v.d
}

// Custom returns the contents of a Custom Value. Panics for any other Kind.
func (v Value) Custom() Custom {
	v.mustBe(CustomKind)
	return v.c
}

// String produces a string representation of this Value, for logging and debugging
func (v Value) String() string {
	switch v.kind {
	case StringKind:
		return strconv.Quote(v.s)
	case IntegerKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return formatFloat(v.f)
	case DecimalKind:
		return formatDecimal(v.d)
	case CustomKind:
		return v.c.String()
	default:
		return "<invalid>"
	}
}

// Compare orders two Values. Values of different Kinds are ordered by Kind.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case StringKind:
		return strings.Compare(a.s, b.s)
	case IntegerKind:
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		}
		return 0
	case FloatKind:
		return compareFloat(a.f, b.f)
	case DecimalKind:
		return a.d.Cmp(b.d)
	case CustomKind:
		return a.c.Compare(b.c)
	}
	return 0
}

// NaN sorts before every other float so that ordering stays total
func compareFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal returns true iff two Values are of the same Kind and compare equal
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && Compare(v, o) == 0
}

// exponent form only outside [1e-4, 1e16), so 1234567.0 stays "1234567.0"
func formatFloat(f float64) string {
	format := byte('g')
	if abs := math.Abs(f); abs >= 1e-4 && abs < 1e16 {
		format = 'f'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// decimals keep their trailing zeros, so "1.10" formats as "1.10"
func formatDecimal(d decimal.Decimal) string {
	if e := d.Exponent(); e < 0 {
		return d.StringFixed(-e)
	}
	return d.String()
}
