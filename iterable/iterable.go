// Package iterable provides Data, a sequence of raw records which is either
// backed by a list (and may be iterated any number of times) or by a
// single-pass Generator.
package iterable

import (
	"io"

	"github.com/go-sif/tabular"
)

// Generator produces raw records one at a time, returning io.EOF once it is exhausted
type Generator func() (tabular.Tuple, error)

// FromSlice returns a Generator over a fixed list of raw records
func FromSlice(l []tabular.Tuple) Generator {
	i := 0
	return func() (tabular.Tuple, error) {
		if i >= len(l) {
			return nil, io.EOF
		}
		t := l[i]
		i++
		return t, nil
	}
}

// Failing returns a Generator which only ever returns err
func Failing(err error) Generator {
	return func() (tabular.Tuple, error) {
		return nil, err
	}
}

// Collect drains a Generator into a list
func Collect(g Generator) ([]tabular.Tuple, error) {
	l := make([]tabular.Tuple, 0)
	for {
		t, err := g()
		if err == io.EOF {
			return l, nil
		} else if err != nil {
			return l, err
		}
		l = append(l, t)
	}
}

// Data is a sequence of raw records. List-backed Data may be iterated repeatedly.
// Generator-backed Data is single-pass: every record is observed at most once, and
// iterating again after exhaustion yields nothing. Reusable Data materializes its
// Generator into a list the first time it is iterated. If materialization fails, the
// error is kept and returned by every later ToList or Iter.
type Data struct {
	list   []tabular.Tuple
	gen    Generator
	isList bool
	reuse  bool
	err    error
}

// FromList creates list-backed Data
func FromList(l []tabular.Tuple, reuse bool) *Data {
	if l == nil {
		l = make([]tabular.Tuple, 0)
	}
	return &Data{list: l, isList: true, reuse: reuse}
}

// FromGenerator creates Generator-backed Data
func FromGenerator(g Generator, reuse bool) *Data {
	return &Data{gen: g, reuse: reuse}
}

// IsList returns true iff this Data is currently backed by a list
func (d *Data) IsList() bool {
	return d.isList
}

// IsReusable returns true iff this Data materializes itself on first iteration
func (d *Data) IsReusable() bool {
	return d.reuse
}

// ToList materializes this Data into a list, draining its Generator if necessary.
// Afterwards the Data is list-backed.
func (d *Data) ToList() ([]tabular.Tuple, error) {
	if d.err != nil {
		return nil, d.err
	}
	if !d.isList {
		l, err := Collect(d.next)
		if err != nil {
			// the Generator has moved past the records read so far
			d.err = err
			d.gen = nil
			return nil, err
		}
		d.list = l
		d.gen = nil
		d.isList = true
	}
	return d.list, nil
}

// Append adds a raw record to the end of this Data, materializing it first
func (d *Data) Append(t tabular.Tuple) error {
	if _, err := d.ToList(); err != nil {
		return err
	}
	d.list = append(d.list, t)
	return nil
}

// Iter returns a Generator over the records of this Data
func (d *Data) Iter() Generator {
	if d.reuse {
		if _, err := d.ToList(); err != nil {
			return Failing(err)
		}
	}
	if d.isList {
		// index-based, so records appended during iteration are observed
		i := 0
		return func() (tabular.Tuple, error) {
			if i >= len(d.list) {
				return nil, io.EOF
			}
			t := d.list[i]
			i++
			return t, nil
		}
	}
	return d.next
}

func (d *Data) next() (tabular.Tuple, error) {
	if d.gen == nil {
		return nil, io.EOF
	}
	t, err := d.gen()
	if err == io.EOF {
		d.gen = nil
	}
	return t, err
}

// Concat returns new Data over the records of d followed by those of rhs.
// The result inherits the reuse flag of d.
func (d *Data) Concat(rhs *Data) *Data {
	var left, right Generator
	gen := func() (tabular.Tuple, error) {
		if left == nil {
			left = d.Iter()
		}
		if right == nil {
			t, err := left()
			if err != io.EOF {
				return t, err
			}
			right = rhs.Iter()
		}
		return right()
	}
	return FromGenerator(gen, d.reuse)
}
