package calibrators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolynomialCalibrator(t *testing.T) {
	p := NewPolynomial(
		Term{Coefficient: 1.5, Exponent: 0},
		Term{Coefficient: 0, Exponent: 1},
		Term{Coefficient: 1, Exponent: 2},
	)

	cases := []struct {
		x, want float64
	}{
		{-10, 101.5},
		{0, 1.5},
		{50, 2501.5},
	}

	for _, c := range cases {
		got, err := p.Calibrate(c.x, nil)
		require.NoError(t, err)
		require.InDelta(t, c.want, got, 1e-9)
	}
}

func TestSplineCalibrator_OrderZeroInRange(t *testing.T) {
	s := NewSpline(0, false,
		SplinePoint{Raw: 0, Calibrated: 10},
		SplinePoint{Raw: 10, Calibrated: 20},
		SplinePoint{Raw: 20, Calibrated: 40},
	)

	got, err := s.Calibrate(15, nil)
	require.NoError(t, err)
	require.Equal(t, 20.0, got)
}

func TestSplineCalibrator_OrderOneInterpolates(t *testing.T) {
	s := NewSpline(1, false,
		SplinePoint{Raw: 0, Calibrated: 0},
		SplinePoint{Raw: 10, Calibrated: 100},
	)

	got, err := s.Calibrate(5, nil)
	require.NoError(t, err)
	require.InDelta(t, 50.0, got, 1e-9)
}

func TestSplineCalibrator_EndpointExactNoError(t *testing.T) {
	s := NewSpline(1, false,
		SplinePoint{Raw: 0, Calibrated: 0},
		SplinePoint{Raw: 10, Calibrated: 100},
	)

	got, err := s.Calibrate(10, nil)
	require.NoError(t, err)
	require.InDelta(t, 100.0, got, 1e-9)
}

func TestSplineCalibrator_OutOfRangeNoExtrapolateFails(t *testing.T) {
	s := NewSpline(1, false,
		SplinePoint{Raw: 0, Calibrated: 0},
		SplinePoint{Raw: 10, Calibrated: 100},
	)

	_, err := s.Calibrate(20, nil)
	require.Error(t, err)
}

func TestSplineCalibrator_ExtrapolateOrderZero(t *testing.T) {
	s := NewSpline(0, true,
		SplinePoint{Raw: 0, Calibrated: 0},
		SplinePoint{Raw: 10, Calibrated: 100},
	)

	got, err := s.Calibrate(20, nil)
	require.NoError(t, err)
	require.Equal(t, 100.0, got)
}

func TestSplineCalibrator_ExtrapolateOrderOneExtendsSlope(t *testing.T) {
	s := NewSpline(1, true,
		SplinePoint{Raw: 0, Calibrated: 0},
		SplinePoint{Raw: 10, Calibrated: 100},
	)

	got, err := s.Calibrate(20, nil)
	require.NoError(t, err)
	require.InDelta(t, 200.0, got, 1e-9)
}

func TestSplineCalibrator_OrderAboveOneNotImplemented(t *testing.T) {
	s := NewSpline(2, false, SplinePoint{Raw: 0, Calibrated: 0})
	_, err := s.Calibrate(0, nil)
	require.Error(t, err)
}
