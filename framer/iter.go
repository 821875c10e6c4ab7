package framer

import (
	"errors"
	"io"
	"iter"

	"github.com/satparse/spacepacket/ccsds"
)

// Packets returns a sequence of (packet, error) pairs pulled from f until
// the source is exhausted. Iteration stops after the first error; io.EOF is
// not yielded (a clean or truncated end of source simply ends the
// sequence).
func (f *Framer) Packets() iter.Seq2[ccsds.RawPacketBytes, error] {
	return func(yield func(ccsds.RawPacketBytes, error) bool) {
		for {
			p, err := f.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(ccsds.RawPacketBytes{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}
