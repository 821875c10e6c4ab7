// Package parser walks a Definition's container-inheritance graph against a
// single packet's bytes, producing a fully populated packet.Packet or an
// UnrecognizedPacketType error (spec §4.6).
package parser
