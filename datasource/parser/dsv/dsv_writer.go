package dsv

import (
	"io"

	"github.com/go-sif/tabular/relation"
)

// WriterConf configures a DSV Writer
type WriterConf struct {
	Separator   string // The separator between fields. Defaults to "\t".
	OmitHeader  bool   // OmitHeader skips the "#name::Type" header line. Defaults to false.
	Compression string // The compression of the output: "", "lz4" or "zstd". Defaults to "" (uncompressed).
}

// Writer renders Relations as DSV data
type Writer struct {
	conf *WriterConf
}

// CreateWriter returns a new DSV Writer
func CreateWriter(conf *WriterConf) *Writer {
	if conf == nil {
		conf = &WriterConf{}
	}
	if len(conf.Separator) == 0 {
		conf.Separator = "\t"
	}
	return &Writer{conf: conf}
}

// Write renders every record of r to out, one line per record
func (w *Writer) Write(out io.Writer, r *relation.Relation) (err error) {
	cw, err := compress(out, w.conf.Compression)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cw.Close(); err == nil {
			err = cerr
		}
	}()
	return r.WriteText(cw, w.conf.Separator, !w.conf.OmitHeader)
}
