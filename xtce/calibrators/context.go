package calibrators

import (
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/comparisons"
)

// ContextCalibrator gates an inner Calibrator behind a match-criteria
// evaluation (spec §3, §4.5): on success it applies Inner; on failure it
// signals Applied=false so the caller (a CalibratorSet) can fall back to
// the next context or the default calibrator.
type ContextCalibrator struct {
	Criteria comparisons.MatchCriteria
	Inner    Calibrator
}

// Calibrate evaluates Criteria against pkt/current; applied reports whether
// Inner actually ran.
func (c ContextCalibrator) Calibrate(x float64, pkt *packet.Packet, current *packet.ParsedValue) (value float64, applied bool, err error) {
	ok, err := c.Criteria.Evaluate(pkt, current)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return x, false, nil
	}

	v, err := c.Inner.Calibrate(x, pkt)
	if err != nil {
		return 0, false, err
	}

	return v, true, nil
}

// CalibratorSet bundles a DataEncoding's context calibrators (evaluated in
// order, first match wins) and an optional default calibrator applied when
// no context matches (spec §4.3).
type CalibratorSet struct {
	Contexts []ContextCalibrator
	Default  Calibrator
}

// Apply runs the set against x, returning the calibrated value and whether
// any calibrator actually fired. When nothing fires, value equals x
// unchanged.
func (s CalibratorSet) Apply(x float64, pkt *packet.Packet, current *packet.ParsedValue) (float64, bool, error) {
	for _, ctx := range s.Contexts {
		v, applied, err := ctx.Calibrate(x, pkt, current)
		if err != nil {
			return 0, false, err
		}
		if applied {
			return v, true, nil
		}
	}

	if s.Default != nil {
		v, err := s.Default.Calibrate(x, pkt)
		if err != nil {
			return 0, false, err
		}
		return v, true, nil
	}

	return x, false, nil
}
