package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// newS2Reader opens a streaming S2 decompressor over r.
func newS2Reader(r io.Reader) io.Reader {
	return s2.NewReader(r)
}
