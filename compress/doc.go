// Package compress wraps a packet source's io.Reader with a streaming
// decompressor, for ground-system packet-capture files that are themselves
// stored zstd/s2/lz4-compressed.
//
// This is the one place the decode pipeline touches compression: the
// decoded CCSDS packets and XTCE-derived parameter values are never
// compressed, only the raw capture file feeding the Framer may be.
package compress
