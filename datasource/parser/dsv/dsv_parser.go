package dsv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/relation"
	"github.com/go-sif/tabular/schema"
)

const maxLineLength = 16 * 1024 * 1024

// ParserConf configures a DSV Parser
type ParserConf struct {
	Separator   string         // The separator between fields. Defaults to "", which splits on runs of whitespace.
	Schema      *schema.Schema // The Schema of the data. Defaults to nil, in which case the first line is parsed as a header such as "#id::Integer name".
	HeaderLines int            // The number of lines to ignore from the beginning of the input, before any header. Defaults to 0.
	Comment     string         // Data lines beginning with this prefix are ignored. Defaults to no comment prefix.
	Compression string         // The compression of the input: "", "lz4" or "zstd". Defaults to "" (uncompressed).
	Name        string         // The name of the parsed Relation. Defaults to its ID.
	Reuse       bool           // Reuse materializes the parsed Relation on first iteration. Defaults to false (single-pass).
}

// Parser produces Relations from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	return &Parser{conf: conf}
}

// Parse reads a header from r, unless the Parser was configured with a Schema, and returns a
// Relation which lazily parses the remaining lines of r. Blank lines are skipped when splitting
// on whitespace. With an explicit Separator, a blank data line is a record like any other.
func (p *Parser) Parse(r io.Reader) (*relation.Relation, error) {
	in, closeInput, err := decompress(r, p.conf.Compression)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	lineNum := 0
	nextLine := func(skipBlank bool) (string, error) {
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()
			if skipBlank && len(strings.TrimSpace(line)) == 0 {
				continue
			}
			return line, nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	for i := 0; i < p.conf.HeaderLines; i++ {
		if !scanner.Scan() {
			break
		}
		lineNum++
	}
	s := p.conf.Schema
	if s == nil {
		header, err := nextLine(true)
		if err == io.EOF {
			closeInput()
			return nil, &errors.SchemaParseError{Text: "", Err: fmt.Errorf("Input has no header line")}
		} else if err != nil {
			closeInput()
			return nil, err
		}
		if s, err = schema.Parse(header, p.conf.Separator); err != nil {
			closeInput()
			return nil, err
		}
		logging.Default().Debugf("Parsed DSV header %s", s)
	}

	done := false
	gen := func() (tabular.Tuple, error) {
		if done {
			return nil, io.EOF
		}
		for {
			line, err := nextLine(len(p.conf.Separator) == 0)
			if err != nil {
				done = true
				closeInput()
				return nil, err
			}
			if len(p.conf.Comment) > 0 && strings.HasPrefix(line, p.conf.Comment) {
				continue
			}
			t, err := parseLine(s, line, p.conf.Separator, lineNum)
			if err != nil {
				return nil, err
			}
			return t, nil
		}
	}
	return relation.FromGenerator(s, gen, relation.Conf{Name: p.conf.Name, Reuse: p.conf.Reuse}), nil
}
