package encodings

import (
	"testing"

	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/ccsds"
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/calibrators"
	"github.com/stretchr/testify/require"
)

func TestIntegerDataEncoding_SignedLittleEndian(t *testing.T) {
	c := bitcursor.New([]byte{0xD6, 0xFF})
	enc := IntegerDataEncoding{SizeInBits: 16, Kind: Signed, ByteOrder: LeastSignificantByteFirst}

	v, err := enc.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.Equal(t, packet.KindInt, v.Kind)
	require.Equal(t, int64(-42), v.IntVal)
}

func TestIntegerDataEncoding_SignedAndTwosComplementAreIdentical(t *testing.T) {
	for _, kind := range []IntegerKind{Signed, TwosComplement} {
		c := bitcursor.New([]byte{0xD6, 0xFF})
		enc := IntegerDataEncoding{SizeInBits: 16, Kind: kind, ByteOrder: LeastSignificantByteFirst}

		v, err := enc.Parse(c, packet.New(ccsds.RawPacketBytes{}))
		require.NoError(t, err)
		require.Equal(t, int64(-42), v.IntVal)
	}
}

func TestIntegerDataEncoding_UnsignedBigEndian(t *testing.T) {
	c := bitcursor.New([]byte{0x80, 0x00})
	enc := IntegerDataEncoding{SizeInBits: 16, Kind: Unsigned, ByteOrder: MostSignificantByteFirst}

	v, err := enc.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.Equal(t, int64(32768), v.IntVal)
}

func TestIntegerDataEncoding_CalibratedYieldsFloatWithIntRaw(t *testing.T) {
	c := bitcursor.New([]byte{0x00, 0x0A})
	enc := IntegerDataEncoding{
		SizeInBits: 16,
		Kind:       Unsigned,
		Calibrators: calibrators.CalibratorSet{
			Default: calibrators.NewPolynomial(calibrators.Term{Coefficient: 0, Exponent: 0}, calibrators.Term{Coefficient: 2, Exponent: 1}),
		},
	}

	v, err := enc.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.Equal(t, packet.KindFloat, v.Kind)
	require.Equal(t, 20.0, v.FloatVal)
	require.NotNil(t, v.Raw)
	require.Equal(t, packet.KindInt, v.Raw.Kind)
	require.Equal(t, int64(10), v.Raw.IntVal)
}
