package parameters

import (
	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/encodings"
)

// NamedEpoch is one of the well-known epochs XTCE allows by name (spec
// §4.4); an Epoch value may instead carry an explicit xs:date/xs:dateTime
// literal in Literal.
type NamedEpoch string

const (
	EpochTAI   NamedEpoch = "TAI"
	EpochJ2000 NamedEpoch = "J2000"
	EpochUnix  NamedEpoch = "UNIX"
	EpochPosix NamedEpoch = "POSIX"
	EpochGPS   NamedEpoch = "GPS"
)

// Epoch is either a named well-known epoch or an explicit date/dateTime
// literal; exactly one is meaningful.
type Epoch struct {
	Named   NamedEpoch
	Literal string
}

// AbsoluteTimeParameterType is a numeric encoding (with an optional
// scale/offset calibrator already configured on Encoding) interpreted as a
// count of seconds since Epoch, optionally measured relative to another
// time parameter named OffsetFrom (spec §4.4). Decoding itself runs the
// same calibration path as any numeric type; Epoch/OffsetFrom are carried
// for introspection, not applied during Parse.
type AbsoluteTimeParameterType struct {
	UnitLabel  string
	Encoding   encodings.DataEncoding
	Epoch      *Epoch
	OffsetFrom string
}

func (t AbsoluteTimeParameterType) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	return t.Encoding.Parse(c, pkt)
}
func (t AbsoluteTimeParameterType) Unit() string { return t.UnitLabel }

// RelativeTimeParameterType is structurally identical to
// AbsoluteTimeParameterType but represents a duration rather than an
// instant; XTCE gives it no Epoch.
type RelativeTimeParameterType struct {
	UnitLabel  string
	Encoding   encodings.DataEncoding
	OffsetFrom string
}

func (t RelativeTimeParameterType) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	return t.Encoding.Parse(c, pkt)
}
func (t RelativeTimeParameterType) Unit() string { return t.UnitLabel }
