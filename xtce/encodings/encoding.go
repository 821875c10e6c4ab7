package encodings

import (
	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/packet"
)

// ByteOrder selects which end of a multi-byte field is most significant.
type ByteOrder uint8

const (
	MostSignificantByteFirst ByteOrder = iota
	LeastSignificantByteFirst
)

// DataEncoding decodes one raw value from c, advancing it past the bits it
// consumed, optionally calibrating against pkt's in-progress state.
type DataEncoding interface {
	Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error)
}
