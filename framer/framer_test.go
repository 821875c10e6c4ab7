package framer

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/satparse/spacepacket/errs"
	"github.com/stretchr/testify/require"
)

// erroringReader always fails with a fixed error.
type erroringReader struct {
	err error
}

func (r *erroringReader) Read(p []byte) (int, error) {
	return 0, r.err
}

// buildPacket assembles one raw CCSDS packet: apid (11 bits), seqFlags (2
// bits), seqCount (14 bits), and the given data field.
func buildPacket(apid uint16, seqFlags uint8, seqCount uint16, data []byte) []byte {
	buf := make([]byte, 6+len(data))

	buf[0] = byte(apid >> 8 & 0x07)
	buf[1] = byte(apid & 0xFF)

	word := uint16(seqFlags)<<14 | seqCount&0x3FFF
	buf[2] = byte(word >> 8)
	buf[3] = byte(word & 0xFF)

	dataLen := uint16(len(data) - 1)
	buf[4] = byte(dataLen >> 8)
	buf[5] = byte(dataLen & 0xFF)

	copy(buf[6:], data)
	return buf
}

func TestFramer_HeaderOnlyDecode(t *testing.T) {
	raw := []byte{0x08, 0x00, 0xC0, 0x00, 0x00, 0x00, 0xFF}

	f, err := New(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	p, err := f.Next()
	require.NoError(t, err)

	require.Equal(t, uint8(0), p.Header.Version)
	require.Equal(t, uint8(0), p.Header.Type)
	require.True(t, p.Header.SecondaryHdrFlag)
	require.Equal(t, uint16(0), p.Header.Apid)
	require.EqualValues(t, 3, p.Header.SequenceFlags)
	require.Equal(t, uint16(0), p.Header.SequenceCount)
	require.Equal(t, uint16(0), p.Header.DataLength)
	require.Equal(t, 7, len(p.Bytes()))

	_, err = f.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestFramer_SegmentedReassembly(t *testing.T) {
	b1 := []byte{0xAA, 0xBB, 0xCC}
	b2 := []byte{0xDD, 0xEE}
	b3 := []byte{0xFF}

	var stream bytes.Buffer
	stream.Write(buildPacket(7, 1, 5, b1)) // FIRST
	stream.Write(buildPacket(7, 0, 6, b2)) // CONTINUATION
	stream.Write(buildPacket(7, 2, 7, b3)) // LAST

	f, err := New(&stream, WithCombineSegmentedPackets(true))
	require.NoError(t, err)
	defer f.Close()

	p, err := f.Next()
	require.NoError(t, err)

	want := append([]byte{}, buildPacket(7, 1, 5, b1)[:6]...)
	want = append(want, b1...)
	want = append(want, b2...)
	want = append(want, b3...)
	require.Equal(t, want, p.Bytes())

	_, err = f.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestFramer_SegmentedReassembly_SequenceGapDrops(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(buildPacket(9, 1, 5, []byte{0x01})) // FIRST
	stream.Write(buildPacket(9, 0, 7, []byte{0x02})) // CONTINUATION, skips 6
	stream.Write(buildPacket(9, 2, 8, []byte{0x03})) // LAST

	var warnings []string
	f, err := New(&stream,
		WithCombineSegmentedPackets(true),
		WithWarningHandler(func(kind, detail string) { warnings = append(warnings, kind) }),
	)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Next()
	require.ErrorIs(t, err, io.EOF)
	require.Contains(t, warnings, "sequence-gap")
}

func TestFramer_UnsegmentedPassesThroughUnchanged(t *testing.T) {
	raw := buildPacket(42, 3, 100, []byte{0x01, 0x02, 0x03, 0x04})

	f, err := New(bytes.NewReader(raw), WithCombineSegmentedPackets(true))
	require.NoError(t, err)
	defer f.Close()

	p, err := f.Next()
	require.NoError(t, err)
	require.Equal(t, uint16(42), p.Header.Apid)
	require.Equal(t, raw, p.Bytes())
}

func TestFramer_TruncatedFinalPacketWarnsAndEndsStream(t *testing.T) {
	full := buildPacket(5, 3, 1, []byte{0x01, 0x02, 0x03, 0x04})
	truncated := full[:len(full)-2] // cut short mid data-field

	var warnings []string
	f, err := New(bytes.NewReader(truncated),
		WithWarningHandler(func(kind, detail string) { warnings = append(warnings, kind) }),
	)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Next()
	require.ErrorIs(t, err, io.EOF)
	require.Contains(t, warnings, "truncated-packet")
}

func TestFramer_SourceReadErrorWrapsErrIO(t *testing.T) {
	boom := errors.New("boom")
	src := &erroringReader{err: boom}

	f, err := New(src)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Next()
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestFramer_ContinuationWithoutFirstWarnsAndDrops(t *testing.T) {
	raw := buildPacket(3, 0, 1, []byte{0x01})

	var warnings []string
	f, err := New(bytes.NewReader(raw),
		WithCombineSegmentedPackets(true),
		WithWarningHandler(func(kind, detail string) { warnings = append(warnings, kind) }),
	)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Next()
	require.ErrorIs(t, err, io.EOF)
	require.Contains(t, warnings, "segment-gap")
}
