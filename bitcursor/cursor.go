package bitcursor

import "github.com/satparse/spacepacket/errs"

// Cursor is a bit-addressed view over a byte buffer. It never copies or
// takes ownership of buf; callers must keep buf alive for the cursor's
// lifetime.
type Cursor struct {
	buf []byte
	pos int // bit position, 0 <= pos <= 8*len(buf)
}

// New creates a Cursor positioned at bit 0 of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total number of addressable bits in the buffer.
func (c *Cursor) Len() int {
	return len(c.buf) * 8
}

// Pos returns the current bit position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bits.
func (c *Cursor) Remaining() int {
	return c.Len() - c.pos
}

// SeekBit sets the cursor's absolute bit position.
func (c *Cursor) SeekBit(pos int) error {
	if pos < 0 || pos > c.Len() {
		return errs.ErrEndOfData
	}
	c.pos = pos

	return nil
}

// Advance moves the cursor forward by n bits without reading, used after a
// caller has already validated and extracted bits through another path
// (e.g. the dynamic-length string algorithm, which pads before advancing).
func (c *Cursor) Advance(n int) error {
	if n < 0 || c.pos+n > c.Len() {
		return errs.ErrEndOfData
	}
	c.pos += n

	return nil
}

// ReadUint reads the next n bits (n <= 64) as an unsigned integer, MSB-first,
// and advances the cursor by n bits.
func (c *Cursor) ReadUint(n int) (uint64, error) {
	v, err := c.PeekUint(n)
	if err != nil {
		return 0, err
	}
	c.pos += n

	return v, nil
}

// PeekUint is ReadUint without advancing the cursor.
func (c *Cursor) PeekUint(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, errs.ErrInvalidBitWidth
	}
	if c.pos+n > c.Len() {
		return 0, errs.ErrEndOfData
	}

	return c.peekUintAt(c.pos, n), nil
}

// peekUintAt extracts n (<=64) bits starting at bit startBit, MSB-first.
// Byte-aligned, byte-sized reads take the fast path: no bit shifting, just
// big-endian byte accumulation (spec §9 "byte-aligned fast path").
func (c *Cursor) peekUintAt(startBit, n int) uint64 {
	if startBit%8 == 0 && n%8 == 0 {
		byteStart := startBit / 8
		nBytes := n / 8
		var v uint64
		for i := 0; i < nBytes; i++ {
			v = v<<8 | uint64(c.buf[byteStart+i])
		}

		return v
	}

	var v uint64
	bitPos := startBit
	remaining := n
	for remaining > 0 {
		byteIdx := bitPos / 8
		bitOffset := bitPos % 8
		availInByte := 8 - bitOffset
		take := availInByte
		if take > remaining {
			take = remaining
		}

		shift := availInByte - take
		mask := byte((1 << uint(take)) - 1)
		chunk := (c.buf[byteIdx] >> uint(shift)) & mask
		v = v<<uint(take) | uint64(chunk)

		bitPos += take
		remaining -= take
	}

	return v
}

// ReadBytes reads the next n bits as a byte run of length ceil(n/8); if n is
// not a multiple of 8, the final byte is right-aligned (the extracted bits
// occupy the low bits of the last output byte). Advances the cursor by n
// bits.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	out, err := c.PeekBytes(n)
	if err != nil {
		return nil, err
	}
	c.pos += n

	return out, nil
}

// PeekBytes is ReadBytes without advancing the cursor.
func (c *Cursor) PeekBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.ErrInvalidBitWidth
	}
	if c.pos+n > c.Len() {
		return nil, errs.ErrEndOfData
	}

	return c.extractBytesAt(c.pos, n), nil
}

func (c *Cursor) extractBytesAt(startBit, n int) []byte {
	nOut := (n + 7) / 8
	out := make([]byte, nOut)

	if startBit%8 == 0 {
		byteStart := startBit / 8
		fullBytes := n / 8
		copy(out, c.buf[byteStart:byteStart+fullBytes])

		if rem := n % 8; rem > 0 {
			out[fullBytes] = c.buf[byteStart+fullBytes] >> uint(8-rem)
		}

		return out
	}

	// Unaligned start: pull bits one output-byte at a time. The last
	// (possibly partial) output byte is naturally right-aligned because we
	// only ever shift in `take` bits from the low end.
	bitPos := startBit
	remaining := n
	for i := 0; i < nOut; i++ {
		take := 8
		if remaining < 8 {
			take = remaining
		}

		var val byte
		for k := 0; k < take; k++ {
			byteIdx := (bitPos + k) / 8
			bitIdx := (bitPos + k) % 8
			bit := (c.buf[byteIdx] >> uint(7-bitIdx)) & 1
			val = val<<1 | bit
		}

		out[i] = val
		bitPos += take
		remaining -= take
	}

	return out
}
