package compress

import (
	"fmt"
	"io"
)

// Kind identifies the compression algorithm wrapping a packet source.
type Kind uint8

const (
	None Kind = 0
	Zstd Kind = 1
	S2   Kind = 2
	LZ4  Kind = 3
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// NewReader wraps r with a streaming decompressor for the given Kind. None
// returns r unchanged. The returned reader must be closed by the caller if
// it implements io.Closer (the pure-Go zstd reader does; the cgo gozstd
// reader, s2 and lz4 do not).
func NewReader(kind Kind, r io.Reader) (io.Reader, error) {
	switch kind {
	case None:
		return r, nil
	case Zstd:
		return newZstdReader(r)
	case S2:
		return newS2Reader(r), nil
	case LZ4:
		return newLZ4Reader(r), nil
	default:
		return nil, fmt.Errorf("compress: unsupported compression kind: %v", kind)
	}
}
