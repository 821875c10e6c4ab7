// Package calibrators implements XTCE's numeric calibration transforms:
// PolynomialCalibrator, SplineCalibrator (order 0 step lookup, order 1
// gonum-backed linear interpolation), and ContextCalibrator, which gates an inner calibrator
// behind a match-criteria evaluation (spec §3, §4.5).
package calibrators
