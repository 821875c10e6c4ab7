// Package packet holds the decode pipeline's output value model: a
// ParsedValue tagged union carrying both the derived (post-calibration,
// post-enum-lookup) and raw representations of a decoded field, and a
// Packet mapping parameter names to ParsedValues in insertion order.
package packet
