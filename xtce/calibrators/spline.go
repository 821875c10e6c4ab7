package calibrators

import (
	"fmt"
	"sort"

	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/packet"
	"gonum.org/v1/gonum/interp"
)

// SplinePoint is one (raw, calibrated) pair of a spline calibrator.
type SplinePoint struct {
	Raw        float64
	Calibrated float64
}

// SplineCalibrator interpolates between ordered (raw, calibrated) points
// (spec §4.5). Order 0 is piecewise-constant (step at each raw point);
// order 1 is piecewise-linear. Extrapolate controls out-of-range behavior.
type SplineCalibrator struct {
	Points      []SplinePoint
	Order       int
	Extrapolate bool
}

// NewSpline sorts points by Raw and returns a ready-to-use calibrator.
func NewSpline(order int, extrapolate bool, points ...SplinePoint) SplineCalibrator {
	sorted := append([]SplinePoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Raw < sorted[j].Raw })
	return SplineCalibrator{Points: sorted, Order: order, Extrapolate: extrapolate}
}

func (s SplineCalibrator) Calibrate(x float64, _ *packet.Packet) (float64, error) {
	if len(s.Points) == 0 {
		return 0, fmt.Errorf("%w: spline has no points", errs.ErrCalibration)
	}
	if s.Order > 1 {
		return 0, fmt.Errorf("%w: spline order %d", errs.ErrCalibratorOrder, s.Order)
	}

	lo, hi := s.Points[0], s.Points[len(s.Points)-1]

	if x < lo.Raw {
		return s.extrapolateBelow(x, lo)
	}
	if x > hi.Raw {
		return s.extrapolateAbove(x, hi)
	}

	return s.interpolate(x)
}

func (s SplineCalibrator) extrapolateBelow(x float64, lo SplinePoint) (float64, error) {
	if !s.Extrapolate {
		return 0, fmt.Errorf("%w: x=%g below range [%g, %g]", errs.ErrCalibrationRange, x, lo.Raw, s.Points[len(s.Points)-1].Raw)
	}
	if s.Order == 0 || len(s.Points) < 2 {
		return lo.Calibrated, nil
	}

	next := s.Points[1]
	slope := (next.Calibrated - lo.Calibrated) / (next.Raw - lo.Raw)
	return lo.Calibrated + slope*(x-lo.Raw), nil
}

func (s SplineCalibrator) extrapolateAbove(x float64, hi SplinePoint) (float64, error) {
	if !s.Extrapolate {
		return 0, fmt.Errorf("%w: x=%g above range [%g, %g]", errs.ErrCalibrationRange, x, s.Points[0].Raw, hi.Raw)
	}
	if s.Order == 0 || len(s.Points) < 2 {
		return hi.Calibrated, nil
	}

	prev := s.Points[len(s.Points)-2]
	slope := (hi.Calibrated - prev.Calibrated) / (hi.Raw - prev.Raw)
	return hi.Calibrated + slope*(x-hi.Raw), nil
}

// interpolate handles the in-range case (including exact endpoints, per
// spec's "no error at the boundary" requirement). Order 0 returns the value
// of the greatest point whose Raw does not exceed x; order 1 uses gonum's
// piecewise-linear predictor.
func (s SplineCalibrator) interpolate(x float64) (float64, error) {
	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.Raw
		ys[i] = p.Calibrated
	}

	if len(s.Points) == 1 {
		return s.Points[0].Calibrated, nil
	}

	if s.Order == 0 {
		v := s.Points[0].Calibrated
		for _, p := range s.Points {
			if p.Raw > x {
				break
			}
			v = p.Calibrated
		}
		return v, nil
	}

	predictor := new(interp.PiecewiseLinear)

	if err := predictor.Fit(xs, ys); err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrCalibration, err)
	}

	return predictor.Predict(x), nil
}
