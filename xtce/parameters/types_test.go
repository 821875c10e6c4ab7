package parameters

import (
	"testing"

	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/ccsds"
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/encodings"
	"github.com/stretchr/testify/require"
)

func TestEnumeratedParameterType_Lookup(t *testing.T) {
	pt := EnumeratedParameterType{
		Encoding: encodings.IntegerDataEncoding{SizeInBits: 16, Kind: encodings.Unsigned},
		Mapping:  map[string]string{"i:32768": "NOMINAL"},
	}

	c := bitcursor.New([]byte{0x80, 0x00})
	v, err := pt.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.Equal(t, packet.KindStr, v.Kind)
	require.Equal(t, "NOMINAL", v.StrVal)
	require.Equal(t, int64(32768), v.Raw.IntVal)
}

func TestEnumeratedParameterType_MissingKeyFails(t *testing.T) {
	pt := EnumeratedParameterType{
		Encoding: encodings.IntegerDataEncoding{SizeInBits: 16, Kind: encodings.Unsigned},
		Mapping:  map[string]string{"i:1": "ONE"},
	}

	c := bitcursor.New([]byte{0x80, 0x00})
	_, err := pt.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.Error(t, err)
}

func TestBooleanParameterType_Truthiness(t *testing.T) {
	pt := BooleanParameterType{
		Encoding: encodings.IntegerDataEncoding{SizeInBits: 8, Kind: encodings.Unsigned},
	}

	c := bitcursor.New([]byte{0x01})
	v, err := pt.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.True(t, v.BoolVal)

	c2 := bitcursor.New([]byte{0x00})
	v2, err := pt.Parse(c2, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.False(t, v2.BoolVal)
}

func TestBooleanParameterType_WarnsOverStringEncoding(t *testing.T) {
	var gotKind, gotDetail string
	pt := BooleanParameterType{
		Encoding: encodings.StringDataEncoding{
			Charset:   encodings.USASCII,
			RawLength: encodings.RawLengthSpec{FixedBits: 8},
		},
		Warn: func(kind, detail string) {
			gotKind, gotDetail = kind, detail
		},
	}

	c := bitcursor.New([]byte{'1'})
	_, err := pt.Parse(c, packet.New(ccsds.RawPacketBytes{}))
	require.NoError(t, err)
	require.Equal(t, "boolean-truthiness", gotKind)
	require.NotEmpty(t, gotDetail)
}
