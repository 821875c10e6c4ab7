package encodings

import (
	"math"
	"testing"

	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/ccsds"
	"github.com/satparse/spacepacket/packet"
	"github.com/stretchr/testify/require"
)

func TestFloatDataEncoding_IEEE754_32Bit(t *testing.T) {
	bits := math.Float32bits(3.14)
	buf := []byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}

	c := bitcursor.New(buf)
	enc := FloatDataEncoding{SizeInBits: 32, Kind: IEEE754}

	v, err := enc.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.InDelta(t, 3.14, v.FloatVal, 1e-6)
}

func TestFloatDataEncoding_MILSTD1750A(t *testing.T) {
	// mantissa=1<<22 (0.5 in the fractional sense before scaling), exponent=23
	// value = mantissa * 2^(exponent-23) = (1<<22) * 2^0 = 4194304
	word := uint32(1<<22)<<8 | uint32(23)
	buf := []byte{byte(word >> 24), byte(word >> 16), byte(word >> 8), byte(word)}

	c := bitcursor.New(buf)
	enc := FloatDataEncoding{SizeInBits: 32, Kind: MILSTD1750A}

	v, err := enc.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.InDelta(t, 4194304.0, v.FloatVal, 1e-6)
}

func TestNormalizeFloatKindAlias(t *testing.T) {
	canonical, deprecated := NormalizeFloatKindAlias("IEEE-754")
	require.Equal(t, "IEEE754", canonical)
	require.True(t, deprecated)

	canonical, deprecated = NormalizeFloatKindAlias("MIL-1750A")
	require.Equal(t, "MILSTD_1750A", canonical)
	require.True(t, deprecated)

	canonical, deprecated = NormalizeFloatKindAlias("IEEE754")
	require.Equal(t, "IEEE754", canonical)
	require.False(t, deprecated)
}
