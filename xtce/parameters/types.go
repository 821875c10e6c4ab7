package parameters

import (
	"fmt"
	"strconv"

	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/encodings"
)

// StringParameterType, IntegerParameterType, FloatParameterType, and
// BinaryParameterType return their encoding's ParsedValue unchanged
// (spec §4.4); they exist as distinct types so a Definition's parameter
// type set carries the XTCE element name each parameter was declared with.

type StringParameterType struct {
	UnitLabel string
	Encoding  encodings.DataEncoding
}

func (t StringParameterType) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	return t.Encoding.Parse(c, pkt)
}
func (t StringParameterType) Unit() string { return t.UnitLabel }

type IntegerParameterType struct {
	UnitLabel string
	Encoding  encodings.DataEncoding
}

func (t IntegerParameterType) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	return t.Encoding.Parse(c, pkt)
}
func (t IntegerParameterType) Unit() string { return t.UnitLabel }

type FloatParameterType struct {
	UnitLabel string
	Encoding  encodings.DataEncoding
}

func (t FloatParameterType) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	return t.Encoding.Parse(c, pkt)
}
func (t FloatParameterType) Unit() string { return t.UnitLabel }

type BinaryParameterType struct {
	UnitLabel string
	Encoding  encodings.DataEncoding
}

func (t BinaryParameterType) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	return t.Encoding.Parse(c, pkt)
}
func (t BinaryParameterType) Unit() string { return t.UnitLabel }

// EnumeratedParameterType requires the raw value to appear as a key in its
// enumeration mapping; lookup operates on raw values only, never calibrated
// (spec §4.4).
type EnumeratedParameterType struct {
	UnitLabel string
	Encoding  encodings.DataEncoding
	// Mapping is keyed by rawKey(rawValue); see rawKey below.
	Mapping map[string]string
}

func (t EnumeratedParameterType) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	v, err := t.Encoding.Parse(c, pkt)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	raw := v
	if v.Raw != nil {
		raw = *v.Raw
	}

	label, ok := t.Mapping[rawKey(raw)]
	if !ok {
		return packet.ParsedValue{}, fmt.Errorf("%w: raw value %v", errs.ErrEnumLookup, raw)
	}

	return packet.Str(label, &raw), nil
}
func (t EnumeratedParameterType) Unit() string { return t.UnitLabel }

// rawKey renders a raw ParsedValue's native representation as a map key,
// since the enumeration mapping's keys may be int, float, or byte-run
// valued in the source XTCE.
func rawKey(v packet.ParsedValue) string {
	switch v.Kind {
	case packet.KindInt:
		return "i:" + strconv.FormatInt(v.IntVal, 10)
	case packet.KindFloat:
		return "f:" + strconv.FormatFloat(v.FloatVal, 'g', -1, 64)
	case packet.KindBytes:
		return "b:" + fmt.Sprintf("% x", v.BytesVal)
	case packet.KindStr:
		return "s:" + v.StrVal
	default:
		return ""
	}
}

// BooleanParameterType coerces its encoding's raw value to Python-style
// truthiness (spec §4.4, §9 open question: truthiness over non-numeric
// encodings is under-specified by XTCE; this decoder documents its choice
// as plain Go zero-value falsiness, delegated to ParsedValue.Truthy).
type BooleanParameterType struct {
	UnitLabel string
	Encoding  encodings.DataEncoding
	Warn      func(kind, detail string)
}

func (t BooleanParameterType) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	v, err := t.Encoding.Parse(c, pkt)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	raw := v
	if v.Raw != nil {
		raw = *v.Raw
	}

	if t.Warn != nil && (raw.Kind == packet.KindBytes || raw.Kind == packet.KindStr) {
		t.Warn("boolean-truthiness", "BooleanParameterType over a binary/string encoding has XTCE-underspecified truthiness")
	}

	return packet.Bool(raw.Truthy(), &raw), nil
}
func (t BooleanParameterType) Unit() string { return t.UnitLabel }
