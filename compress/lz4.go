package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// newLZ4Reader opens a streaming LZ4 decompressor over r.
func newLZ4Reader(r io.Reader) io.Reader {
	return lz4.NewReader(r)
}
