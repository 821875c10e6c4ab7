// Package parameters implements XTCE's eight ParameterType variants —
// String, Integer, Float, Binary, Enumerated, Boolean, AbsoluteTime, and
// RelativeTime — each wrapping a DataEncoding with semantic typing, plus
// the Parameter type that names and describes one (spec §3, §4.4).
package parameters
