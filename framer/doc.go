// Package framer pulls individual CCSDS packets out of a byte source,
// optionally reassembling segmented packets into a single logical packet.
//
// A Framer drives a rolling read buffer over an io.Reader: it reads just
// enough to parse the next primary header, then just enough more to slice
// out the declared packet length, emitting a ccsds.RawPacketBytes per call
// to Next. The consumed prefix is dropped once the read position crosses an
// internal threshold so the buffer does not grow unboundedly over a long
// stream (spec §4.2).
package framer
