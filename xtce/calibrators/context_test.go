package calibrators

import (
	"testing"

	"github.com/satparse/spacepacket/ccsds"
	"github.com/satparse/spacepacket/packet"
	"github.com/stretchr/testify/require"
)

type alwaysMatch struct{ result bool }

func (a alwaysMatch) Evaluate(*packet.Packet, *packet.ParsedValue) (bool, error) {
	return a.result, nil
}

func TestContextCalibrator_AppliesOnMatch(t *testing.T) {
	pkt := packet.New(ccsds.RawPacketBytes{})
	c := ContextCalibrator{
		Criteria: alwaysMatch{result: true},
		Inner:    NewPolynomial(Term{Coefficient: 2, Exponent: 1}),
	}

	v, applied, err := c.Calibrate(5, pkt, nil)
	require.NoError(t, err)
	require.True(t, applied)
	require.Equal(t, 10.0, v)
}

func TestContextCalibrator_PassesThroughOnMismatch(t *testing.T) {
	pkt := packet.New(ccsds.RawPacketBytes{})
	c := ContextCalibrator{
		Criteria: alwaysMatch{result: false},
		Inner:    NewPolynomial(Term{Coefficient: 2, Exponent: 1}),
	}

	v, applied, err := c.Calibrate(5, pkt, nil)
	require.NoError(t, err)
	require.False(t, applied)
	require.Equal(t, 5.0, v)
}

func TestCalibratorSet_FallsBackToDefault(t *testing.T) {
	pkt := packet.New(ccsds.RawPacketBytes{})
	set := CalibratorSet{
		Contexts: []ContextCalibrator{
			{Criteria: alwaysMatch{result: false}, Inner: NewPolynomial(Term{Coefficient: 99, Exponent: 0})},
		},
		Default: NewPolynomial(Term{Coefficient: 1, Exponent: 0}, Term{Coefficient: 3, Exponent: 1}),
	}

	v, applied, err := set.Apply(2, pkt, nil)
	require.NoError(t, err)
	require.True(t, applied)
	require.Equal(t, 7.0, v)
}

func TestCalibratorSet_NoneAppliesPassesRawThrough(t *testing.T) {
	pkt := packet.New(ccsds.RawPacketBytes{})
	set := CalibratorSet{}

	v, applied, err := set.Apply(42, pkt, nil)
	require.NoError(t, err)
	require.False(t, applied)
	require.Equal(t, 42.0, v)
}
