package ccsds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHeader_HeaderOnlyDecode(t *testing.T) {
	// version=0, type=0, sh_flag=1, apid=0, seq_flags=3(Unsegmented),
	// seq_count=0, data_length=0 -> total = 7 octets (1 payload byte).
	buf := []byte{0x08, 0x00, 0xC0, 0x00, 0x00, 0x00, 0xFF}

	h, err := ParseHeader(buf)
	require.NoError(t, err)
	require.Equal(t, uint8(0), h.Version)
	require.Equal(t, uint8(0), h.Type)
	require.True(t, h.SecondaryHdrFlag)
	require.Equal(t, uint16(0), h.Apid)
	require.Equal(t, Unsegmented, h.SequenceFlags)
	require.Equal(t, uint16(0), h.SequenceCount)
	require.Equal(t, uint16(0), h.DataLength)
	require.Equal(t, 7, h.TotalOctets())

	rp, err := New(buf)
	require.NoError(t, err)
	require.Equal(t, buf, rp.Bytes())
	require.Equal(t, []byte{0xFF}, rp.DataField())
}

func TestNew_LengthMismatch(t *testing.T) {
	buf := []byte{0x08, 0x00, 0xC0, 0x00, 0x00, 0x00} // claims 1 payload byte but has none
	_, err := New(buf)
	require.Error(t, err)
}

func TestParseHeader_ShortBuffer(t *testing.T) {
	_, err := ParseHeader([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestDigestIsStable(t *testing.T) {
	buf := []byte{0x08, 0x00, 0xC0, 0x00, 0x00, 0x00, 0xFF}
	rp, err := New(buf)
	require.NoError(t, err)

	d1 := rp.Digest()
	d2 := rp.Digest()
	require.Equal(t, d1, d2)
}
