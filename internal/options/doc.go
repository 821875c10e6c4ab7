// Package options provides a tiny generic functional-options helper shared by
// every configurable type in this module (framer.Framer, definitions.Load,
// spacepacket.Stream). It is intentionally domain-agnostic.
package options
