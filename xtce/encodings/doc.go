// Package encodings implements XTCE's four DataEncoding variants —
// IntegerDataEncoding, FloatDataEncoding, StringDataEncoding, and
// BinaryDataEncoding — each decoding one raw value from a bit cursor and
// applying any configured calibrators (spec §4.3).
package encodings
