package tabular

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ColumnType is an interface which is implemented to define a supported column type.
// ColumnTypes are stateless; Tabular provides String, Integer, Float and Decimal, and
// further types can be added with RegisterColumnType.
type ColumnType interface {
	Name() string                     // Name returns the canonical name of this type, as used in Schema headers
	Parse(text string) (Value, error) // Parse produces a Value of this type from its textual representation
	Format(v Value) string            // Format produces the textual representation of a Value of this type
	IsValid(v Value) bool             // IsValid returns true iff v is a Value of this type
}

// StringColumnType is a column type which stores strings verbatim
type StringColumnType struct{}

// Name returns "String"
func (c *StringColumnType) Name() string {
	return "String"
}

// Parse returns the text unchanged
func (c *StringColumnType) Parse(text string) (Value, error) {
	return String(text), nil
}

// Format produces a string representation of a StringColumnType value
func (c *StringColumnType) Format(v Value) string {
	return v.Str()
}

// IsValid returns true iff v is a String Value
func (c *StringColumnType) IsValid(v Value) bool {
	return v.kind == StringKind
}

// IntegerColumnType is a column type which stores an int64 value
type IntegerColumnType struct{}

// Name returns "Integer"
func (c *IntegerColumnType) Name() string {
	return "Integer"
}

// Parse parses a base 10 integer
func (c *IntegerColumnType) Parse(text string) (Value, error) {
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Value{}, err
	}
	return Int(i), nil
}

// Format produces a string representation of an IntegerColumnType value
func (c *IntegerColumnType) Format(v Value) string {
	return strconv.FormatInt(v.Int(), 10)
}

// IsValid returns true iff v is an Integer Value
func (c *IntegerColumnType) IsValid(v Value) bool {
	return v.kind == IntegerKind
}

// FloatColumnType is a column type which stores a float64 value
type FloatColumnType struct{}

// Name returns "Float"
func (c *FloatColumnType) Name() string {
	return "Float"
}

// Parse parses a floating point number
func (c *FloatColumnType) Parse(text string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, err
	}
	return Float(f), nil
}

// Format produces the shortest representation which parses back to the same float
func (c *FloatColumnType) Format(v Value) string {
	return formatFloat(v.Float())
}

// IsValid returns true iff v is a Float Value
func (c *FloatColumnType) IsValid(v Value) bool {
	return v.kind == FloatKind
}

// DecimalColumnType is a column type which stores an arbitrary-precision decimal value
type DecimalColumnType struct{}

// Name returns "Decimal"
func (c *DecimalColumnType) Name() string {
	return "Decimal"
}

// Parse parses a decimal number, keeping its precision
func (c *DecimalColumnType) Parse(text string) (Value, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Value{}, err
	}
	return Decimal(d), nil
}

// Format produces a string representation of a DecimalColumnType value
func (c *DecimalColumnType) Format(v Value) string {
	return formatDecimal(v.Decimal())
}

// IsValid returns true iff v is a Decimal Value
func (c *DecimalColumnType) IsValid(v Value) bool {
	return v.kind == DecimalKind
}
