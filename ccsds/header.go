package ccsds

import (
	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/internal/hash"
)

// HeaderSize is the fixed size, in octets, of the CCSDS primary header.
const HeaderSize = 6

// Header holds the decoded fields of a CCSDS primary header (spec §6).
type Header struct {
	Version            uint8
	Type               uint8
	SecondaryHdrFlag   bool
	Apid               uint16
	SequenceFlags      SequenceFlags
	SequenceCount      uint16
	DataLength         uint16 // packet total octets - 7
}

// TotalOctets returns the total packet size (header + data field) implied by
// DataLength: 6 + DataLength + 1 (spec §4.2).
func (h Header) TotalOctets() int {
	return HeaderSize + int(h.DataLength) + 1
}

// ParseHeader decodes the primary header from the first 6 octets of buf.
// buf may contain more than the header; only the first 6 octets are read.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errs.ErrShortHeader
	}

	c := bitcursor.New(buf[:HeaderSize])

	version, _ := c.ReadUint(3)
	pktType, _ := c.ReadUint(1)
	secHdr, _ := c.ReadUint(1)
	apid, _ := c.ReadUint(11)
	seqFlags, _ := c.ReadUint(2)
	seqCount, _ := c.ReadUint(14)
	dataLen, _ := c.ReadUint(16)

	return Header{
		Version:          uint8(version),
		Type:             uint8(pktType),
		SecondaryHdrFlag: secHdr != 0,
		Apid:             uint16(apid),
		SequenceFlags:    SequenceFlags(seqFlags),
		SequenceCount:    uint16(seqCount),
		DataLength:       uint16(dataLen),
	}, nil
}

// RawPacketBytes is an immutable byte sequence holding one complete CCSDS
// packet (primary header plus data field), along with a bit cursor
// positioned just past the primary header so a container parser can
// continue consuming the data field.
type RawPacketBytes struct {
	Header Header
	bytes  []byte
	cursor *bitcursor.Cursor
	digest *uint64
}

// New wraps buf (which must contain exactly one complete packet: header +
// data field) as a RawPacketBytes. Use Framer to produce correctly sized
// slices; New itself only validates the header fits and that buf's length
// agrees with the header's declared total (spec §8 data_length = len-7
// invariant).
func New(buf []byte) (RawPacketBytes, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return RawPacketBytes{}, err
	}

	if len(buf) != h.TotalOctets() {
		return RawPacketBytes{}, errs.ErrInvalidDataLen
	}

	rp := RawPacketBytes{
		Header: h,
		bytes:  buf,
	}
	rp.cursor = bitcursor.New(buf)
	// Primary header is 48 bits; position the cursor at the start of the data field.
	_ = rp.cursor.Advance(HeaderSize * 8)

	return rp, nil
}

// NewReassembled wraps a segmented-packet group's concatenated bytes
// (the FIRST segment's full bytes followed by each later segment's data
// field, secondary headers stripped — spec §4.2) as a RawPacketBytes.
//
// Unlike New, it does not validate buf's length against the header's
// DataLength: the header still describes only the FIRST segment, by
// design (the header is never rewritten during reassembly), so the
// combined buffer is necessarily longer than TotalOctets() implies.
func NewReassembled(buf []byte) (RawPacketBytes, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return RawPacketBytes{}, err
	}

	rp := RawPacketBytes{
		Header: h,
		bytes:  buf,
	}
	rp.cursor = bitcursor.New(buf)
	_ = rp.cursor.Advance(HeaderSize * 8)

	return rp, nil
}

// Bytes returns the full packet bytes (header + data field).
func (r RawPacketBytes) Bytes() []byte {
	return r.bytes
}

// Cursor returns the bit cursor, positioned at the start of the data field
// on a freshly constructed RawPacketBytes.
func (r RawPacketBytes) Cursor() *bitcursor.Cursor {
	return r.cursor
}

// DataField returns the packet's data field (everything after the primary
// header).
func (r RawPacketBytes) DataField() []byte {
	return r.bytes[HeaderSize:]
}

// Digest returns the xxHash64 of the full packet bytes, computed lazily and
// cached. Intended for caller-side deduplication/caching across repeated
// reads of the same source; never consulted by the decode pipeline itself.
func (r *RawPacketBytes) Digest() uint64 {
	if r.digest == nil {
		d := hash.Bytes(r.bytes)
		r.digest = &d
	}

	return *r.digest
}
