// Package errs defines the sentinel error values returned by every layer of
// the decode pipeline: bit cursor, framer, XTCE loader, and container parser.
//
// Callers should use errors.Is against these sentinels rather than matching
// on error message text; call sites wrap a sentinel with additional context
// via fmt.Errorf("%w: ...", errs.ErrX, ...).
package errs

import "errors"

// Bit cursor / raw packet bytes errors (spec §4.1, §7 EndOfData).
var (
	// ErrEndOfData is returned when a read would consume bits past the end
	// of the underlying buffer.
	ErrEndOfData = errors.New("spacepacket: read past end of buffer")

	// ErrInvalidBitWidth is returned when a requested integer width exceeds
	// the 64-bit ceiling bitcursor.Cursor.ReadUint supports.
	ErrInvalidBitWidth = errors.New("spacepacket: bit width exceeds 64 bits")
)

// CCSDS primary header errors (spec §6).
var (
	ErrShortHeader     = errors.New("spacepacket: buffer shorter than the 6-octet primary header")
	ErrInvalidDataLen  = errors.New("spacepacket: declared data length inconsistent with buffer")
	ErrTruncatedPacket = errors.New("spacepacket: source ended mid-packet")
)

// Framer / IO errors (spec §4.2, §7 IoError).
var (
	ErrIO               = errors.New("spacepacket: source read error")
	ErrTextModeSource   = errors.New("spacepacket: source opened in text mode, framer requires binary")
	ErrUnknownApidState = errors.New("spacepacket: continuation segment with no prior FIRST segment")
	ErrSequenceGap      = errors.New("spacepacket: non-contiguous sequence count in segmented group")
)

// XTCE definition-loading errors (spec §4.7, §7 InvalidXtce / UnsupportedXtce).
var (
	ErrInvalidXtce      = errors.New("spacepacket: invalid or incomplete XTCE document")
	ErrUnsupportedXtce  = errors.New("spacepacket: unsupported XTCE feature")
	ErrDuplicateName    = errors.New("spacepacket: duplicate name within an XTCE set")
	ErrUnresolvedRef    = errors.New("spacepacket: unresolved XTCE reference")
	ErrUnknownParamType = errors.New("spacepacket: unrecognized ParameterType element")
	ErrMissingElement   = errors.New("spacepacket: required XTCE element missing")
)

// Container-parser errors (spec §4.6, §7 UnrecognizedPacketType).
var (
	// ErrUnrecognizedPacketType is returned when container inheritor
	// selection finds zero or multiple valid inheritors for an abstract
	// container, or more than one match for a concrete container.
	ErrUnrecognizedPacketType = errors.New("spacepacket: no single matching container inheritor")
)

// Calibration and comparison errors (spec §4.5, §7 CalibrationError / ComparisonError / EnumLookupError).
var (
	ErrCalibration      = errors.New("spacepacket: calibration failed")
	ErrCalibrationRange = errors.New("spacepacket: value outside spline range and extrapolation disabled")
	ErrCalibratorOrder  = errors.New("spacepacket: spline order not implemented")
	ErrComparison       = errors.New("spacepacket: match criteria evaluation failed")
	ErrParameterMissing = errors.New("spacepacket: referenced parameter absent from packet and no fallback value")
	ErrLiteralCoercion  = errors.New("spacepacket: required value literal could not be coerced to operand type")
	ErrEnumLookup       = errors.New("spacepacket: raw value has no defined enumeration label")
)

// Data-encoding errors (spec §4.3).
var (
	ErrTerminationCharNotFound = errors.New("spacepacket: termination character not present in raw buffer")
	ErrDynamicLengthRef        = errors.New("spacepacket: dynamic length reference parameter unavailable")
)
