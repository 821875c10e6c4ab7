package encodings

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/packet"
)

// StringCharset is XTCE's StringDataEncoding "encoding" attribute.
type StringCharset uint8

const (
	USASCII StringCharset = iota
	ISO88591
	Windows1252
	UTF8
	UTF16
	UTF16LE
	UTF16BE
	UTF32
	UTF32LE
	UTF32BE
)

// StringDataEncoding decodes a variable- or fixed-length character string
// (spec §4.3).
type StringDataEncoding struct {
	Charset    StringCharset
	ByteOrder  ByteOrder // only consulted for UTF16/UTF32 without an LE/BE suffix
	RawLength  RawLengthSpec
	Derived    DerivedLengthSpec
}

func (e StringDataEncoding) Parse(c *bitcursor.Cursor, pkt *packet.Packet) (packet.ParsedValue, error) {
	bits, err := e.RawLength.Resolve(pkt)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	padded, err := readPaddedBytes(c, bits)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	rawParsed := packet.Bytes(append([]byte(nil), padded...), nil)

	narrowed, err := e.Derived.Apply(padded)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	s, err := e.decodeString(narrowed)
	if err != nil {
		return packet.ParsedValue{}, err
	}

	return packet.Str(s, rawParsed.Raw), nil
}

func (e StringDataEncoding) decodeString(b []byte) (string, error) {
	switch e.Charset {
	case USASCII, ISO88591, Windows1252, UTF8:
		// ISO-8859-1/Windows-1252 are single-byte; their low 128 code
		// points coincide with ASCII/UTF-8 and this decoder treats the
		// full byte value as the Unicode code point, matching ISO-8859-1
		// exactly and Windows-1252 for all but its C1-range punctuation
		// substitutions (out of scope: no cp1252 table is carried).
		if e.Charset == UTF8 {
			if !utf8.Valid(b) {
				return "", fmt.Errorf("%w: invalid UTF-8 byte sequence", errs.ErrInvalidXtce)
			}
			return string(b), nil
		}
		runes := make([]rune, len(b))
		for i, by := range b {
			runes[i] = rune(by)
		}
		return string(runes), nil

	case UTF16, UTF16LE, UTF16BE:
		le := e.Charset == UTF16LE || (e.Charset == UTF16 && e.ByteOrder == LeastSignificantByteFirst)
		if len(b)%2 != 0 {
			return "", fmt.Errorf("%w: UTF-16 byte length not even", errs.ErrInvalidXtce)
		}
		units := make([]uint16, len(b)/2)
		for i := range units {
			if le {
				units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
			} else {
				units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
			}
		}
		return string(utf16.Decode(units)), nil

	case UTF32, UTF32LE, UTF32BE:
		le := e.Charset == UTF32LE || (e.Charset == UTF32 && e.ByteOrder == LeastSignificantByteFirst)
		if len(b)%4 != 0 {
			return "", fmt.Errorf("%w: UTF-32 byte length not a multiple of 4", errs.ErrInvalidXtce)
		}
		runes := make([]rune, len(b)/4)
		for i := range runes {
			var v uint32
			if le {
				v = uint32(b[4*i]) | uint32(b[4*i+1])<<8 | uint32(b[4*i+2])<<16 | uint32(b[4*i+3])<<24
			} else {
				v = uint32(b[4*i])<<24 | uint32(b[4*i+1])<<16 | uint32(b[4*i+2])<<8 | uint32(b[4*i+3])
			}
			runes[i] = rune(v)
		}
		return string(runes), nil

	default:
		return "", fmt.Errorf("%w: unknown string charset", errs.ErrUnsupportedXtce)
	}
}
