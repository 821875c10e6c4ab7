package packet

import "fmt"

// Kind tags which field of a ParsedValue holds its data.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindStr
	KindBytes
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindBytes:
		return "bytes"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParsedValue is a tagged union over the five kinds a decoded field can
// take, plus a companion Raw value holding the pre-calibration,
// pre-enumeration representation. Raw's Kind may differ from the derived
// value's Kind: an enumerated parameter's derived value is a Str label
// while its Raw stays an Int.
type ParsedValue struct {
	Kind      Kind
	IntVal    int64
	FloatVal  float64
	StrVal    string
	BytesVal  []byte
	BoolVal   bool
	Raw       *ParsedValue
}

// Int builds an Int ParsedValue. raw is optional; pass nil to make the
// value its own raw (the common case for unclaibrated integer fields).
func Int(v int64, raw *ParsedValue) ParsedValue {
	pv := ParsedValue{Kind: KindInt, IntVal: v}
	pv.Raw = rawOrSelf(pv, raw)
	return pv
}

// Float builds a Float ParsedValue.
func Float(v float64, raw *ParsedValue) ParsedValue {
	pv := ParsedValue{Kind: KindFloat, FloatVal: v}
	pv.Raw = rawOrSelf(pv, raw)
	return pv
}

// Str builds a Str ParsedValue.
func Str(v string, raw *ParsedValue) ParsedValue {
	pv := ParsedValue{Kind: KindStr, StrVal: v}
	pv.Raw = rawOrSelf(pv, raw)
	return pv
}

// Bytes builds a Bytes ParsedValue.
func Bytes(v []byte, raw *ParsedValue) ParsedValue {
	pv := ParsedValue{Kind: KindBytes, BytesVal: v}
	pv.Raw = rawOrSelf(pv, raw)
	return pv
}

// Bool builds a Bool ParsedValue.
func Bool(v bool, raw *ParsedValue) ParsedValue {
	pv := ParsedValue{Kind: KindBool, BoolVal: v}
	pv.Raw = rawOrSelf(pv, raw)
	return pv
}

func rawOrSelf(self ParsedValue, raw *ParsedValue) *ParsedValue {
	if raw != nil {
		return raw
	}
	self.Raw = nil
	return &self
}

// Truthy reports the Python-style truthiness of the value's kind-native
// representation: zero numbers, empty strings/byte runs, and false are
// falsy; everything else is truthy (spec §4.4, §9 open question).
func (v ParsedValue) Truthy() bool {
	switch v.Kind {
	case KindInt:
		return v.IntVal != 0
	case KindFloat:
		return v.FloatVal != 0
	case KindStr:
		return v.StrVal != ""
	case KindBytes:
		return len(v.BytesVal) != 0
	case KindBool:
		return v.BoolVal
	default:
		return false
	}
}

// String renders the value for diagnostics; not used for wire decisions.
func (v ParsedValue) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.IntVal)
	case KindFloat:
		return fmt.Sprintf("%g", v.FloatVal)
	case KindStr:
		return v.StrVal
	case KindBytes:
		return fmt.Sprintf("% x", v.BytesVal)
	case KindBool:
		return fmt.Sprintf("%t", v.BoolVal)
	default:
		return "<invalid>"
	}
}
