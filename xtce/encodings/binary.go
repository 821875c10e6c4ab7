package encodings

import (
	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/packet"
)

// BinaryDataEncoding decodes a raw byte run whose length is exactly one of
// a fixed size, a size-reference parameter, or a discrete-lookup list
// (spec §4.3) — structurally identical to StringDataEncoding's raw-length
// computation, but with no derived-length narrowing: the padded buffer
// itself is the result.
type BinaryDataEncoding struct {
	RawLength         RawLengthSpec
	UseCalibratedSize bool
}

func (e BinaryDataEncoding) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	bits, err := e.RawLength.Resolve(pkt)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	raw, err := readPaddedBytes(c, bits)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	return packet.Bytes(raw, nil), nil
}
