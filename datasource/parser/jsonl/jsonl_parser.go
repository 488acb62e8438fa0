package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/relation"
	"github.com/go-sif/tabular/schema"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	Schema        *schema.Schema    // The Schema of the parsed Relation. Required.
	Paths         map[string]string // Paths maps column names to gjson paths. Columns without a path are read from the path equal to their name.
	HeaderLines   int               // The number of lines to ignore from the beginning of the input. Defaults to 0.
	Comment       string            // Lines beginning with this prefix are ignored. Defaults to no comment prefix.
	MaxBufferSize int               // Maximum size in bytes of the buffer used to read lines
	Name          string            // The name of the parsed Relation. Defaults to its ID.
	Reuse         bool              // Reuse materializes the parsed Relation on first iteration. Defaults to false (single-pass).
}

// Parser produces Relations from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Values within the JSON which do not correspond to a Schema column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// Parse returns a Relation which lazily parses each non-blank line of r as a JSON object
func (p *Parser) Parse(r io.Reader) (*relation.Relation, error) {
	s := p.conf.Schema
	if s == nil {
		return nil, &errors.InvalidArgumentError{Op: "jsonl.Parse", Reason: "a Schema is required"}
	}
	paths := make([]string, s.Len())
	for i, name := range s.ColumnNames() {
		paths[i] = name
		if path, ok := p.conf.Paths[name]; ok {
			paths[i] = path
		}
	}
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	lineNum := 0
	for i := 0; i < p.conf.HeaderLines; i++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			break
		}
		lineNum++
	}

	gen := func() (tabular.Tuple, error) {
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()
			if len(strings.TrimSpace(line)) == 0 {
				continue
			}
			if len(p.conf.Comment) > 0 && strings.HasPrefix(line, p.conf.Comment) {
				continue
			}
			if !gjson.Valid(line) {
				return nil, fmt.Errorf("Line %d is not valid JSON: %s", lineNum, line)
			}
			t, err := ParseJSONRow(s, paths, gjson.Parse(line))
			if err != nil {
				return nil, fmt.Errorf("Line %d: %w", lineNum, err)
			}
			return t, nil
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return relation.FromGenerator(s, gen, relation.Conf{Name: p.conf.Name, Reuse: p.conf.Reuse}), nil
}
