package tabular

import (
	"encoding/binary"
	"math"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
)

// Tuple is a raw record: an ordered sequence of Values with no attached Schema
type Tuple []Value

// Equal returns true iff both Tuples have the same length and pairwise equal Values
func (t Tuple) Equal(o Tuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Compare orders Tuples lexicographically. A Tuple which is a prefix of another sorts first.
func (t Tuple) Compare(o Tuple) int {
	n := len(t)
	if len(o) < n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		if c := Compare(t[i], o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(t) < len(o):
		return -1
	case len(t) > len(o):
		return 1
	}
	return 0
}

// Concat returns a new Tuple holding the Values of t followed by those of o
func (t Tuple) Concat(o Tuple) Tuple {
	res := make(Tuple, 0, len(t)+len(o))
	res = append(res, t...)
	return append(res, o...)
}

// Hash produces a 64 bit hash of this Tuple. Equal Tuples always hash equally.
func (t Tuple) Hash() uint64 {
	hasher := xxhash.New()
	buf := make([]byte, 9)
	for _, v := range t {
		buf[0] = byte(v.kind)
		switch v.kind {
		case StringKind:
			hasher.Write(buf[:1])
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(v.s)))
			hasher.Write(buf[1:])
			hasher.Write([]byte(v.s))
		case IntegerKind:
			binary.LittleEndian.PutUint64(buf[1:], uint64(v.i))
			hasher.Write(buf)
		case FloatKind:
			f := v.f
			if f == 0 {
				f = 0 // -0 and +0 compare equal
			}
			if math.IsNaN(f) {
				f = math.NaN()
			}
			binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
			hasher.Write(buf)
		case DecimalKind:
			// String() drops trailing zeros, so 1.0 and 1.00 hash alike
			hasher.Write(buf[:1])
			hasher.Write([]byte(v.d.String()))
			hasher.Write([]byte{0})
		case CustomKind:
			hasher.Write(buf[:1])
			hasher.Write([]byte(v.c.String()))
			hasher.Write([]byte{0})
		default:
			hasher.Write(buf[:1])
		}
	}
	return hasher.Sum64()
}

// String produces a string representation of this Tuple, for logging and debugging
func (t Tuple) String() string {
	var res strings.Builder
	res.WriteByte('(')
	for i, v := range t {
		if i > 0 {
			res.WriteString(", ")
		}
		res.WriteString(v.String())
	}
	res.WriteByte(')')
	return res.String()
}
