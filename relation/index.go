package relation

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/errors"
	"github.com/go-sif/tabular/iterable"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/record"
	"github.com/go-sif/tabular/schema"
)

// Index is an in-memory hash index of a Relation on a unique key
type Index struct {
	schema    *schema.Schema
	keySchema *schema.Schema
	keyIdx    []int
	buckets   map[uint64][]int
	keys      []tabular.Tuple
	rows      []tabular.Tuple
}

// BuildIndex consumes r and indexes its records by the values of keyCols. Keys must be
// unique, otherwise a DuplicateKeyError is returned.
func BuildIndex(r *Relation, keyCols ...schema.ColumnRef) (*Index, error) {
	keySchema, keyIdx, err := r.schema.Project(keyCols...)
	if err != nil {
		return nil, err
	}
	if len(keyIdx) == 0 {
		return nil, &errors.InvalidArgumentError{Op: "BuildIndex", Reason: "no key columns given"}
	}
	logging.Default().Debugf("Indexing relation %s by %s", r.name, keySchema)
	ix := &Index{
		schema:    r.schema,
		keySchema: keySchema,
		keyIdx:    keyIdx,
		buckets:   make(map[uint64][]int),
		keys:      make([]tabular.Tuple, 0),
		rows:      make([]tabular.Tuple, 0),
	}
	next := r.data.Iter()
	for {
		t, err := next()
		if err == io.EOF {
			return ix, nil
		} else if err != nil {
			return nil, err
		}
		key := record.ProjectRaw(t, keyIdx)
		h := key.Hash()
		if ix.find(key, h) >= 0 {
			return nil, &errors.DuplicateKeyError{Key: key.String()}
		}
		ix.buckets[h] = append(ix.buckets[h], len(ix.rows))
		ix.keys = append(ix.keys, key)
		ix.rows = append(ix.rows, t)
	}
}

func (ix *Index) find(key tabular.Tuple, h uint64) int {
	for _, i := range ix.buckets[h] {
		if ix.keys[i].Equal(key) {
			return i
		}
	}
	return -1
}

// Len returns the number of indexed records
func (ix *Index) Len() int {
	return len(ix.rows)
}

// Schema returns the Schema of the indexed records
func (ix *Index) Schema() *schema.Schema {
	return ix.schema
}

// KeySchema returns the Schema of the index keys
func (ix *Index) KeySchema() *schema.Schema {
	return ix.keySchema
}

// Lookup returns the record with the given key
func (ix *Index) Lookup(key tabular.Tuple) (record.Record, bool) {
	if i := ix.find(key, key.Hash()); i >= 0 {
		return record.Bind(ix.schema, ix.rows[i]), true
	}
	return record.Record{}, false
}

// JoinColumn selects an output column of a HashJoin from its left or right input
type JoinColumn struct {
	Left bool
	Ref  schema.ColumnRef
}

// ParseJoinColumns parses a comma-separated list of join output columns such as "l0,r2".
// Each column reference is prefixed by "l" for the left input or "r" for the right input,
// and follows the syntax of schema.ParseColumnRefs.
func ParseJoinColumns(text string) ([]JoinColumn, error) {
	fields := strings.Split(text, ",")
	cols := make([]JoinColumn, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if len(field) < 2 || (field[0] != 'l' && field[0] != 'r') {
			return nil, &errors.InvalidArgumentError{
				Op:     "ParseJoinColumns",
				Reason: fmt.Sprintf("column %q must be prefixed by 'l' or 'r'", field),
			}
		}
		refs, err := schema.ParseColumnRefs(field[1:])
		if err != nil {
			return nil, err
		}
		cols = append(cols, JoinColumn{Left: field[0] == 'l', Ref: refs[0]})
	}
	return cols, nil
}

// HashJoinOptions configures a HashJoin
type HashJoinOptions struct {
	LeftKeys  []schema.ColumnRef // LeftKeys are the key columns of the left input
	RightKeys []schema.ColumnRef // RightKeys are the key columns of the right input, matched pairwise with LeftKeys
	// Output lists the columns of the joined Relation. Defaults to every left column
	// followed by the right columns which are not part of RightKeys.
	Output []JoinColumn
}

// HashJoin performs an inner equi-join by indexing the left input, which must have unique
// keys, and then lazily streaming the right input. Keys need not be sorted, and right
// records with no match are dropped.
func HashJoin(left *Relation, right *Relation, opts HashJoinOptions) (*Relation, error) {
	if len(opts.LeftKeys) == 0 || len(opts.LeftKeys) != len(opts.RightKeys) {
		return nil, &errors.InvalidArgumentError{
			Op:     "HashJoin",
			Reason: fmt.Sprintf("key lengths do not match: left %d right %d", len(opts.LeftKeys), len(opts.RightKeys)),
		}
	}
	lkeySchema, _, err := left.schema.Project(opts.LeftKeys...)
	if err != nil {
		return nil, err
	}
	rkeySchema, rkeyIdx, err := right.schema.Project(opts.RightKeys...)
	if err != nil {
		return nil, err
	}
	if !lkeySchema.Equals(rkeySchema) {
		return nil, &errors.InvalidArgumentError{
			Op:     "HashJoin",
			Reason: fmt.Sprintf("key types do not match: left %s right %s", lkeySchema, rkeySchema),
		}
	}
	output := opts.Output
	if len(output) == 0 {
		output = defaultJoinOutput(right.schema, rkeyIdx)
	}
	type outputColumn struct {
		left bool
		pos  int
	}
	columns := make([]outputColumn, 0, len(output))
	entries := make([]*schema.Entry, 0, len(output))
	for _, col := range output {
		s := right.schema
		if col.Left {
			s = left.schema
		}
		idx, err := s.Resolve(col.Ref)
		if err != nil {
			return nil, err
		}
		for _, i := range idx {
			columns = append(columns, outputColumn{left: col.Left, pos: i})
			entries = append(entries, s.Entry(i))
		}
	}
	joinedSchema, err := schema.New(entries...)
	if err != nil {
		return nil, err
	}

	ix, err := BuildIndex(left, opts.LeftKeys...)
	if err != nil {
		return nil, err
	}
	logging.Default().Debugf("Hash joining relations %s and %s", left.name, right.name)
	next := lazyIter(right.data)
	gen := func() (tabular.Tuple, error) {
		for {
			rt, err := next()
			if err != nil {
				return nil, err
			}
			lrec, ok := ix.Lookup(record.ProjectRaw(rt, rkeyIdx))
			if !ok {
				continue
			}
			lt := lrec.Raw()
			joined := make(tabular.Tuple, len(columns))
			for j, c := range columns {
				if c.left {
					joined[j] = lt[c.pos]
				} else {
					joined[j] = rt[c.pos]
				}
			}
			return joined, nil
		}
	}
	return newRelation(joinedSchema, iterable.FromGenerator(gen, false), ""), nil
}

func defaultJoinOutput(right *schema.Schema, rkeyIdx []int) []JoinColumn {
	isKey := make(map[int]bool, len(rkeyIdx))
	for _, i := range rkeyIdx {
		isKey[i] = true
	}
	output := []JoinColumn{{Left: true, Ref: schema.All()}}
	for i := 0; i < right.Len(); i++ {
		if !isKey[i] {
			output = append(output, JoinColumn{Left: false, Ref: schema.Pos(i)})
		}
	}
	return output
}
