//go:build !cgo

package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// newZstdReader opens a streaming zstd decompressor over r using the pure-Go
// klauspost/compress/zstd implementation. Used whenever cgo is unavailable
// (cross-compiled binaries, CGO_ENABLED=0 builds).
func newZstdReader(r io.Reader) (io.Reader, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	return &zstdReadCloser{dec: dec}, nil
}

// zstdReadCloser adapts *zstd.Decoder's Close (which has no error return) to
// io.ReadCloser so callers can treat every compression.Kind uniformly.
type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return nil
}
