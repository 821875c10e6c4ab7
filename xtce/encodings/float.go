package encodings

import (
	"fmt"
	"math"

	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/calibrators"
)

// FloatKind selects the bit-level representation a FloatDataEncoding reads.
type FloatKind uint8

const (
	IEEE754 FloatKind = iota
	MILSTD1750A
)

// NormalizeFloatKindAlias maps the legacy XTCE encoding-attribute spellings
// "IEEE-754" and "MIL-1750A" to their canonical forms, reporting whether a
// deprecation warning should be raised (spec §9).
func NormalizeFloatKindAlias(raw string) (canonical string, deprecated bool) {
	switch raw {
	case "IEEE-754":
		return "IEEE754", true
	case "MIL-1750A":
		return "MILSTD_1750A", true
	default:
		return raw, false
	}
}

// FloatDataEncoding decodes a fixed-width floating point field (spec §4.3).
type FloatDataEncoding struct {
	SizeInBits  int
	Kind        FloatKind
	ByteOrder   ByteOrder
	Calibrators calibrators.CalibratorSet
}

func (e FloatDataEncoding) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	raw, err := c.ReadUint(e.SizeInBits)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	if e.ByteOrder == LeastSignificantByteFirst {
		nBytes := (e.SizeInBits + 7) / 8
		be := uintToBigEndianBytes(raw, nBytes)
		raw = bigEndianUint(reverseBytes(be))
	}

	value, err := e.decode(raw)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	rawParsed := packet.Float(value, nil)

	calibrated, applied, err := e.Calibrators.Apply(value, pkt, rawParsed.Raw)
	if err != nil {
		return packet.ParsedValue{}, err
	}
	if applied {
		return packet.Float(calibrated, rawParsed.Raw), nil
	}

	return rawParsed, nil
}

func (e FloatDataEncoding) decode(raw uint64) (float64, error) {
	switch e.Kind {
	case MILSTD1750A:
		return decodeMilStd1750A(uint32(raw)), nil

	case IEEE754:
		switch e.SizeInBits {
		case 16:
			return float64(decodeFloat16(uint16(raw))), nil
		case 32:
			return float64(math.Float32frombits(uint32(raw))), nil
		case 64:
			return math.Float64frombits(raw), nil
		default:
			return 0, fmt.Errorf("%w: IEEE754 size_in_bits=%d", errs.ErrUnsupportedXtce, e.SizeInBits)
		}

	default:
		return 0, fmt.Errorf("%w: unknown float kind", errs.ErrUnsupportedXtce)
	}
}

// decodeMilStd1750A decomposes a 32-bit MIL-STD-1750A word into a 24-bit
// two's-complement mantissa and 8-bit two's-complement exponent:
// value = mantissa · 2^(exponent − 23) (spec §4.3).
func decodeMilStd1750A(word uint32) float64 {
	mantissaRaw := word >> 8 // upper 24 bits
	exponentRaw := word & 0xFF

	mantissa := int32(mantissaRaw << 8) // sign-extend 24-bit value via shift trick
	mantissa >>= 8

	exponent := int8(exponentRaw)

	return float64(mantissa) * math.Pow(2, float64(exponent)-23)
}

// decodeFloat16 converts an IEEE754 binary16 bit pattern to float32. The
// standard library has no native half-precision type.
func decodeFloat16(bits uint16) float32 {
	sign := uint32(bits>>15) & 0x1
	exp := uint32(bits>>10) & 0x1F
	frac := uint32(bits) & 0x3FF

	var f32bits uint32
	switch {
	case exp == 0 && frac == 0:
		f32bits = sign << 31

	case exp == 0x1F:
		f32bits = sign<<31 | 0xFF<<23 | frac<<13

	case exp == 0:
		// Subnormal binary16: normalize by scanning for the leading 1 bit.
		e := int32(0)
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3FF
		realExp := uint32(int32(127-15+1) + e)
		f32bits = sign<<31 | realExp<<23 | frac<<13

	default:
		realExp := exp - 15 + 127
		f32bits = sign<<31 | realExp<<23 | frac<<13
	}

	return math.Float32frombits(f32bits)
}
