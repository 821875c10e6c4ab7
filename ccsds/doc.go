// Package ccsds decodes the fixed 6-octet CCSDS space packet primary header
// and wraps a framed packet's bytes with on-demand header field access and a
// bit cursor positioned just past the primary header.
//
// Wire layout (big-endian, 48 bits total — spec §6):
//
//	bits 0-2    version       (always 0 for CCSDS space packets)
//	bit  3      type          (0 telemetry, 1 telecommand)
//	bit  4      secondary hdr flag
//	bits 5-15   APID
//	bits 16-17  sequence flags
//	bits 18-31  sequence count
//	bits 32-47  data length   (packet total octets - 7)
package ccsds
