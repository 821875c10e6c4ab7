// Package spacepacket decodes CCSDS space packet streams against an XTCE
// telemetry definition.
//
// # Core Features
//
//   - CCSDS primary header framing with segmented-packet reassembly
//   - XTCE 1.2 document loading: parameter types, parameters, sequence
//     containers with restriction-criteria-based inheritance
//   - Polynomial, spline, and context calibrators
//   - Lazy, one-packet-at-a-time decode stream with configurable handling
//     of malformed and unrecognized packets
//
// # Basic Usage
//
//	def, err := spacepacket.LoadDefinition(xtceFile)
//	if err != nil {
//	    // handle
//	}
//
//	stream, err := spacepacket.NewStream(packetFile, def)
//	if err != nil {
//	    // handle
//	}
//	defer stream.Close()
//
//	for result, err := range stream.Results() {
//	    if err != nil {
//	        // framer-level IO error, stream unusable past this point
//	        break
//	    }
//	    if !result.Ok() {
//	        // unrecognized packet type, only reached with
//	        // WithYieldUnrecognizedPacketErrors(true)
//	        continue
//	    }
//	    for name, v := range result.Packet.All() {
//	        fmt.Println(name, v.String())
//	    }
//	}
//
// # Package Structure
//
// This package provides a convenient top-level facade wiring the framer,
// xtce/definitions, and parser packages together. For advanced usage
// (sharing one Definition across concurrent streams, custom framer
// sources), use those packages directly.
package spacepacket
