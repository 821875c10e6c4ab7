// Package bitcursor provides a bit-addressed view over a byte buffer.
//
// A Cursor tracks a bit position 0 <= pos <= 8*len(buf) and extracts
// unsigned integers and byte runs at arbitrary bit offsets, MSB-first,
// without heap allocation on the integer read path.
//
// A Cursor is created per packet and dropped once the packet has been fully
// parsed; it never outlives the byte buffer it views.
package bitcursor
