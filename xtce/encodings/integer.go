package encodings

import (
	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/calibrators"
)

// IntegerKind is XTCE's encoding attribute on IntegerDataEncoding.
type IntegerKind uint8

const (
	Unsigned IntegerKind = iota
	Signed
	TwosComplement
)

// IntegerDataEncoding decodes a fixed-width integer field (spec §4.3).
type IntegerDataEncoding struct {
	SizeInBits  int
	Kind        IntegerKind
	ByteOrder   ByteOrder
	Calibrators calibrators.CalibratorSet
}

func (e IntegerDataEncoding) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	raw, err := c.ReadUint(e.SizeInBits)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	if e.ByteOrder == LeastSignificantByteFirst {
		nBytes := (e.SizeInBits + 7) / 8
		be := uintToBigEndianBytes(raw, nBytes)
		raw = bigEndianUint(reverseBytes(be))
	}

	signedVal := applySign(raw, e.SizeInBits, e.Kind)

	rawParsed := packet.Int(signedVal, nil)

	calibrated, applied, err := e.Calibrators.Apply(float64(signedVal), pkt, rawParsed.Raw)
	if err != nil {
		return packet.ParsedValue{}, err
	}
	if applied {
		return packet.Float(calibrated, rawParsed.Raw), nil
	}

	return rawParsed, nil
}

// applySign reinterprets raw (an n-bit unsigned pattern) according to kind.
// XTCE's "signed" and "twosComplement" encoding values decode identically
// (spec.md: "if signed, apply two's complement against size_in_bits") — XTCE
// has no sign-magnitude integer encoding, so both kinds take the same path.
func applySign(raw uint64, n int, kind IntegerKind) int64 {
	switch kind {
	case Unsigned:
		return int64(raw)

	case Signed, TwosComplement:
		signBit := uint64(1) << (n - 1)
		if raw&signBit == 0 {
			return int64(raw)
		}
		return int64(raw) - int64(1<<uint(n))

	default:
		return int64(raw)
	}
}
