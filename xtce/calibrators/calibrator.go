package calibrators

import (
	"math"

	"github.com/satparse/spacepacket/packet"
)

// Calibrator transforms a raw numeric value x into a calibrated engineering
// value. pkt gives ContextCalibrator access to previously parsed parameters
// for its match-criteria gate; Polynomial and Spline ignore it.
type Calibrator interface {
	Calibrate(x float64, pkt *packet.Packet) (float64, error)
}

// PolynomialCalibrator computes Σ cᵢ·x^eᵢ over its Terms (spec §4.5).
type PolynomialCalibrator struct {
	Terms []Term
}

// Term is one (coefficient, exponent) pair of a polynomial calibrator.
type Term struct {
	Coefficient float64
	Exponent    float64
}

// NewPolynomial builds a PolynomialCalibrator from (coefficient, exponent)
// pairs, matching the XTCE Term element order.
func NewPolynomial(terms ...Term) PolynomialCalibrator {
	return PolynomialCalibrator{Terms: terms}
}

func (p PolynomialCalibrator) Calibrate(x float64, _ *packet.Packet) (float64, error) {
	sum := 0.0
	for _, t := range p.Terms {
		sum += t.Coefficient * math.Pow(x, t.Exponent)
	}
	return sum, nil
}
