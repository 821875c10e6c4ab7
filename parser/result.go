package parser

import (
	"github.com/satparse/spacepacket/packet"
)

// UnrecognizedError carries a partially-parsed packet.Packet alongside the
// error that stopped the container walk (errs.ErrUnrecognizedPacketType for
// an inheritor-selection failure, otherwise an unresolved reference or a
// parameter decode error), for callers that opt into
// yield_unrecognized_packet_errors rather than silently dropping the packet
// (spec §7, SPEC_FULL §4 supplement).
type UnrecognizedError struct {
	Partial *packet.Packet
	Err     error
}

func (e *UnrecognizedError) Error() string {
	return e.Err.Error()
}

func (e *UnrecognizedError) Unwrap() error {
	return e.Err
}

// Result is a tagged union yielded by the container walk: at most one of
// Packet or Unrecognized is non-nil; both are nil when Engine.Parse dropped
// the packet per ParseBadPackets.
type Result struct {
	Packet       *packet.Packet
	Unrecognized *UnrecognizedError
}

// Ok reports whether Result carries a successfully parsed packet.
func (r Result) Ok() bool {
	return r.Packet != nil
}
