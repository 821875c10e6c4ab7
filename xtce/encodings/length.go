package encodings

import (
	"fmt"

	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/comparisons"
)

// DiscreteLookup pairs a match criteria with a length (in bits). Raw- and
// size- discrete-lookup lists share this one type (spec §4.3, §4 supplement
// from original_source's DiscreteLookupList): the first entry whose
// Criteria evaluates true wins.
type DiscreteLookup struct {
	Criteria comparisons.MatchCriteria
	Value    int
}

// ResolveDiscreteLookup evaluates lookups in order against pkt, returning
// the first match's Value.
func ResolveDiscreteLookup(lookups []DiscreteLookup, pkt *packet.Packet) (int, error) {
	for _, l := range lookups {
		ok, err := l.Criteria.Evaluate(pkt, nil)
		if err != nil {
			return 0, err
		}
		if ok {
			return l.Value, nil
		}
	}

	return 0, fmt.Errorf("%w: no discrete lookup entry matched", errs.ErrDynamicLengthRef)
}

// DynamicLengthRef names a previously-parsed parameter whose value supplies
// a length, optionally transformed by a linear adjustment slope/intercept
// over integers (spec §4.3).
type DynamicLengthRef struct {
	ParamName     string
	UseCalibrated bool
	HasAdjuster   bool
	Slope         int
	Intercept     int
}

// Resolve reads the referenced parameter's value from pkt and applies the
// linear adjuster, if any.
func (d DynamicLengthRef) Resolve(pkt *packet.Packet) (int, error) {
	v, ok := pkt.Get(d.ParamName)
	if !ok {
		return 0, fmt.Errorf("%w: parameter %q", errs.ErrDynamicLengthRef, d.ParamName)
	}

	var base int64
	if d.UseCalibrated {
		switch v.Kind {
		case packet.KindFloat:
			base = int64(v.FloatVal)
		default:
			base = v.IntVal
		}
	} else if v.Raw != nil {
		base = v.Raw.IntVal
	} else {
		base = v.IntVal
	}

	if d.HasAdjuster {
		base = int64(d.Slope)*base + int64(d.Intercept)
	}

	return int(base), nil
}

// RawLengthSpec describes exactly one of the three ways XTCE expresses a
// String/Binary encoding's raw length, in bits (spec §4.3).
type RawLengthSpec struct {
	FixedBits      int
	Dynamic        *DynamicLengthRef
	DiscreteLookup []DiscreteLookup
}

// Resolve computes the raw length in bits.
func (s RawLengthSpec) Resolve(pkt *packet.Packet) (int, error) {
	switch {
	case s.FixedBits > 0:
		return s.FixedBits, nil
	case s.Dynamic != nil:
		return s.Dynamic.Resolve(pkt)
	case len(s.DiscreteLookup) > 0:
		return ResolveDiscreteLookup(s.DiscreteLookup, pkt)
	default:
		return 0, fmt.Errorf("%w: raw length spec has no configured source", errs.ErrInvalidXtce)
	}
}

// DerivedLengthSpec narrows a raw byte buffer down to its meaningful
// content: at most one of a leading length prefix or a termination
// character (spec §4.3).
type DerivedLengthSpec struct {
	LeadingLengthBits int
	TerminationChar   []byte
}

// Apply narrows raw per the configured rule, or returns raw unchanged if
// neither rule is set.
func (d DerivedLengthSpec) Apply(raw []byte) ([]byte, error) {
	switch {
	case d.LeadingLengthBits > 0:
		nBytes := d.LeadingLengthBits / 8
		if nBytes > len(raw) {
			return nil, fmt.Errorf("%w: leading length prefix longer than raw buffer", errs.ErrInvalidXtce)
		}
		length := int(bigEndianUint(raw[:nBytes]))
		end := nBytes + length
		if end > len(raw) {
			return nil, fmt.Errorf("%w: leading-length-declared size exceeds raw buffer", errs.ErrInvalidXtce)
		}
		return raw[nBytes:end], nil

	case len(d.TerminationChar) > 0:
		term := d.TerminationChar
		for i := 0; i+len(term) <= len(raw); i++ {
			if bytesEqual(raw[i:i+len(term)], term) {
				return raw[:i], nil
			}
		}
		return nil, errs.ErrTerminationCharNotFound

	default:
		return raw, nil
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// readPaddedBytes reads n bits from c and zero-pads on the right to a byte
// boundary (spec §4.3), distinct from bitcursor.Cursor.ReadBytes'
// right-aligned numeric convention. Both String and Binary encodings use it.
func readPaddedBytes(c *bitcursor.Cursor, n int) ([]byte, error) {
	fullBytes := n / 8
	remBits := n % 8

	out, err := c.ReadBytes(fullBytes * 8)
	if err != nil {
		return nil, err
	}

	if remBits == 0 {
		return out, nil
	}

	tail, err := c.ReadUint(remBits)
	if err != nil {
		return nil, err
	}

	return append(out, byte(tail)<<(8-remBits)), nil
}
