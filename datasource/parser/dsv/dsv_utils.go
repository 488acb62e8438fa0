package dsv

import (
	"fmt"
	"strings"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/relation"
	"github.com/go-sif/tabular/schema"
	"github.com/hashicorp/go-multierror"
)

// SplitLine tokenizes a line of DSV data. An empty sep splits on runs of whitespace,
// otherwise only the trailing line terminator is removed before splitting on sep.
func SplitLine(line string, sep string) []string {
	if len(sep) == 0 {
		return strings.Fields(line)
	}
	return strings.Split(strings.TrimRight(line, "\r\n"), sep)
}

// Parses a line into a raw record, according to a schema
func parseLine(s *schema.Schema, line string, sep string, lineNum int) (tabular.Tuple, error) {
	fields := SplitLine(line, sep)
	if len(fields) != s.Len() {
		return nil, &errors.FieldCountError{Line: lineNum, Expected: s.Len(), Found: len(fields), Fields: fields}
	}
	t, err := s.ParseValues(fields)
	if err != nil {
		return nil, fmt.Errorf("Line %d: %w", lineNum, err)
	}
	return t, nil
}

// ParseRows parses pre-tokenized rows of text fields into a reusable Relation. Every row is
// parsed, and all failures are reported together.
func ParseRows(s *schema.Schema, rows [][]string, name string) (*relation.Relation, error) {
	var merr *multierror.Error
	raws := make([]tabular.Tuple, 0, len(rows))
	for i, fields := range rows {
		t, err := s.ParseValues(fields)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("Row %d: %w", i, err))
			continue
		}
		raws = append(raws, t)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return relation.New(s, raws, relation.Conf{Name: name, Reuse: true})
}
