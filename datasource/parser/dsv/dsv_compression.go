package dsv

import (
	"fmt"
	"io"

	"github.com/go-sif/tabular/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

const (
	// NoCompression reads and writes plain text
	NoCompression = ""
	// LZ4Compression reads and writes lz4 frames
	LZ4Compression = "lz4"
	// ZstdCompression reads and writes zstd frames
	ZstdCompression = "zstd"
)

func unknownCompression(kind string) error {
	return &errors.InvalidArgumentError{Op: "dsv", Reason: fmt.Sprintf("unknown compression %q", kind)}
}

// decompress wraps r according to the configured compression. The returned function
// releases any resources held by the decompressor, and may be called more than once.
func decompress(r io.Reader, kind string) (io.Reader, func(), error) {
	switch kind {
	case NoCompression:
		return r, func() {}, nil
	case LZ4Compression:
		return lz4.NewReader(r), func() {}, nil
	case ZstdCompression:
		decompressor, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, err
		}
		closed := false
		return decompressor, func() {
			if !closed {
				closed = true
				decompressor.Close()
			}
		}, nil
	default:
		return nil, nil, unknownCompression(kind)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// compress wraps w according to the configured compression. Closing the returned
// writer flushes the compressor, but does not close w.
func compress(w io.Writer, kind string) (io.WriteCloser, error) {
	switch kind {
	case NoCompression:
		return nopWriteCloser{w}, nil
	case LZ4Compression:
		return lz4.NewWriter(w), nil
	case ZstdCompression:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	default:
		return nil, unknownCompression(kind)
	}
}
