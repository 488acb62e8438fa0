package jsonl

import (
	"fmt"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/schema"
	"github.com/tidwall/gjson"
)

// ParseJSONRow reads one value per column of s from a parsed JSON document, the i-th
// column from paths[i]. Each value is parsed by its column's type: strings from their
// contents, and every other JSON value from its raw text.
func ParseJSONRow(s *schema.Schema, paths []string, doc gjson.Result) (tabular.Tuple, error) {
	t := make(tabular.Tuple, s.Len())
	for i := range t {
		e := s.Entry(i)
		res := doc.Get(paths[i])
		var text string
		switch {
		case !res.Exists() || res.Type == gjson.Null:
			return nil, &errors.ValueParseError{
				Column: e.Name(),
				Type:   e.Type().Name(),
				Text:   res.Raw,
				Err:    fmt.Errorf("Path %s is missing or null", paths[i]),
			}
		case res.Type == gjson.String:
			text = res.Str
		default:
			text = res.Raw
		}
		v, err := e.ParseValue(text)
		if err != nil {
			return nil, err
		}
		t[i] = v
	}
	return t, nil
}
