package bitcursor

import (
	"testing"

	"github.com/satparse/spacepacket/errs"
	"github.com/stretchr/testify/require"
)

func TestReadUint(t *testing.T) {
	t.Run("ByteAligned", func(t *testing.T) {
		c := New([]byte{0x12, 0x34})
		v, err := c.ReadUint(16)
		require.NoError(t, err)
		require.Equal(t, uint64(0x1234), v)
		require.Equal(t, 16, c.Pos())
	})

	t.Run("ByteAlignedHighBitSet", func(t *testing.T) {
		// 0xD6 = 1101 0110 ; 0xFF = 1111 1111
		// reading 16 bits from bit 0 (byte-aligned path) should be 0xD6FF
		c := New([]byte{0xD6, 0xFF})
		v, err := c.ReadUint(16)
		require.NoError(t, err)
		require.Equal(t, uint64(0xD6FF), v)
	})

	t.Run("UnalignedOffset", func(t *testing.T) {
		// buffer bits: 1010 1100 1111 0000
		// skip leading 4 bits (1010), read next 8 bits -> 1100 1111 = 0xCF
		c := New([]byte{0xAC, 0xF0})
		_, err := c.ReadUint(4)
		require.NoError(t, err)
		v, err := c.ReadUint(8)
		require.NoError(t, err)
		require.Equal(t, uint64(0xCF), v)
	})

	t.Run("EndOfData", func(t *testing.T) {
		c := New([]byte{0x01})
		_, err := c.ReadUint(16)
		require.ErrorIs(t, err, errs.ErrEndOfData)
	})

	t.Run("WidthTooLarge", func(t *testing.T) {
		c := New(make([]byte, 16))
		_, err := c.ReadUint(65)
		require.ErrorIs(t, err, errs.ErrInvalidBitWidth)
	})
}

func TestReadBytes(t *testing.T) {
	t.Run("ByteAligned", func(t *testing.T) {
		c := New([]byte{0xAA, 0xBB, 0xCC})
		b, err := c.ReadBytes(16)
		require.NoError(t, err)
		require.Equal(t, []byte{0xAA, 0xBB}, b)
	})

	t.Run("PartialTrailingByteRightAligned", func(t *testing.T) {
		// 12 bits from a byte-aligned start: 1 full byte + 4 bits right-aligned
		c := New([]byte{0xAB, 0xC0})
		b, err := c.ReadBytes(12)
		require.NoError(t, err)
		require.Equal(t, []byte{0xAB, 0x0C}, b)
	})

	t.Run("UnalignedStart", func(t *testing.T) {
		c := New([]byte{0xAC, 0xF0})
		_, err := c.ReadUint(4)
		require.NoError(t, err)
		b, err := c.ReadBytes(8)
		require.NoError(t, err)
		require.Equal(t, []byte{0xCF}, b)
	})
}

func TestPeekDoesNotAdvance(t *testing.T) {
	c := New([]byte{0x12, 0x34})
	v, err := c.PeekUint(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0x12), v)
	require.Equal(t, 0, c.Pos())
}

func TestRemaining(t *testing.T) {
	c := New([]byte{0, 0})
	require.Equal(t, 16, c.Remaining())
	_, err := c.ReadUint(6)
	require.NoError(t, err)
	require.Equal(t, 10, c.Remaining())
}
