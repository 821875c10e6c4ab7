package comparisons

import (
	"errors"
	"testing"

	"github.com/satparse/spacepacket/ccsds"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/packet"
	"github.com/stretchr/testify/require"
)

func newTestPacket() *packet.Packet {
	return packet.New(ccsds.RawPacketBytes{})
}

func TestComparison_Evaluate(t *testing.T) {
	pkt := newTestPacket()
	pkt.Set("APID", packet.Int(11, nil))

	cmp := NewComparison("APID", false, Eq, "11")
	ok, err := cmp.Evaluate(pkt, nil)
	require.NoError(t, err)
	require.True(t, ok)

	cmp2 := NewComparison("APID", false, Eq, "22")
	ok, err = cmp2.Evaluate(pkt, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestComparison_MissingParameterFallsBackToCurrent(t *testing.T) {
	pkt := newTestPacket()
	current := packet.Int(5, nil)

	cmp := NewComparison("SELF", false, Ge, "3")
	ok, err := cmp.Evaluate(pkt, &current)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestComparison_MissingParameterNoFallbackFails(t *testing.T) {
	pkt := newTestPacket()
	cmp := NewComparison("GHOST", false, Eq, "1")
	_, err := cmp.Evaluate(pkt, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrComparison))
	require.True(t, errors.Is(err, errs.ErrParameterMissing))
}

func TestComparison_LiteralCoercionFailureWrapsBothSentinels(t *testing.T) {
	pkt := newTestPacket()
	pkt.Set("APID", packet.Int(11, nil))

	cmp := NewComparison("APID", false, Eq, "not-a-number")
	_, err := cmp.Evaluate(pkt, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrComparison))
	require.True(t, errors.Is(err, errs.ErrLiteralCoercion))
}

func TestComparison_LiteralCoercionIsMemoizedAcrossEvaluations(t *testing.T) {
	pkt := newTestPacket()
	pkt.Set("APID", packet.Int(11, nil))

	cmp := NewComparison("APID", false, Eq, "11")
	for range 3 {
		ok, err := cmp.Evaluate(pkt, nil)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestBooleanExpression_AndedPropagatesChildError(t *testing.T) {
	pkt := newTestPacket()
	pkt.Set("A", packet.Int(1, nil))

	expr := BooleanExpression{
		Kind: Anded,
		Children: []MatchCriteria{
			Condition{Left: ParamRef("A", false), Operator: Eq, Right: Lit("1")},
			Condition{Left: ParamRef("MISSING", false), Operator: Eq, Right: Lit("0")},
		},
	}

	ok, err := expr.Evaluate(pkt, nil)
	require.Error(t, err)
	require.False(t, ok)
}

func TestBooleanExpression_Ored(t *testing.T) {
	pkt := newTestPacket()
	pkt.Set("A", packet.Int(1, nil))

	expr := BooleanExpression{
		Kind: Ored,
		Children: []MatchCriteria{
			Condition{Left: ParamRef("A", false), Operator: Eq, Right: Lit("99")},
			Condition{Left: ParamRef("A", false), Operator: Eq, Right: Lit("1")},
		},
	}

	ok, err := expr.Evaluate(pkt, nil)
	require.NoError(t, err)
	require.True(t, ok)
}
