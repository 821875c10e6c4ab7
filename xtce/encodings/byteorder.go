package encodings

import "github.com/satparse/spacepacket/endian"

// reverseBytes returns a reversed copy of b, used to reinterpret a
// big-endian-read field as little-endian (spec §4.3: "round up to byte
// boundary, reverse byte order, reinterpret").
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// bigEndianUint reassembles a big-endian byte slice into a uint64. The
// common 2/4/8-byte widths (16/32/64-bit integers and floats) go through
// endian.EndianEngine's fixed-width accessors; odd widths (e.g. 1/3/5/6/7-byte
// integer fields XTCE also allows) fall back to a byte-at-a-time
// accumulation.
func bigEndianUint(b []byte) uint64 {
	engine := endian.GetBigEndianEngine()
	switch len(b) {
	case 2:
		return uint64(engine.Uint16(b))
	case 4:
		return uint64(engine.Uint32(b))
	case 8:
		return engine.Uint64(b)
	default:
		var v uint64
		for _, by := range b {
			v = v<<8 | uint64(by)
		}
		return v
	}
}

// uintToBigEndianBytes renders v's low nBytes bytes, most significant
// first, using the same fixed-width/fallback split as bigEndianUint.
func uintToBigEndianBytes(v uint64, nBytes int) []byte {
	engine := endian.GetBigEndianEngine()
	switch nBytes {
	case 2:
		return engine.AppendUint16(nil, uint16(v))
	case 4:
		return engine.AppendUint32(nil, uint32(v))
	case 8:
		return engine.AppendUint64(nil, v)
	default:
		out := make([]byte, nBytes)
		for i := nBytes - 1; i >= 0; i-- {
			out[i] = byte(v & 0xFF)
			v >>= 8
		}
		return out
	}
}
