package parameters

import (
	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/packet"
)

// ParameterType is the common interface over all eight XTCE parameter-type
// variants (spec §3, §4.4).
type ParameterType interface {
	Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error)
	Unit() string
}

// Parameter names a ParameterType within a Definition (spec §3). Name is
// unique within the owning Definition.
type Parameter struct {
	Name             string
	Type             ParameterType
	ShortDescription string
	LongDescription  string
}
