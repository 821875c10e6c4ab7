package parser

import (
	"strings"
	"testing"

	"github.com/satparse/spacepacket/ccsds"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/xtce/definitions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inheritanceXML = `<?xml version="1.0"?>
<SpaceSystem xmlns="http://www.omg.org/spec/XTCE/20180204" name="Demo">
  <TelemetryMetaData>
    <ParameterTypeSet>
      <IntegerParameterType name="ApidType">
        <IntegerDataEncoding sizeInBits="16" encoding="unsigned" byteOrder="mostSignificantByteFirst"/>
      </IntegerParameterType>
      <IntegerParameterType name="ValueType">
        <IntegerDataEncoding sizeInBits="16" encoding="unsigned" byteOrder="mostSignificantByteFirst"/>
      </IntegerParameterType>
    </ParameterTypeSet>
    <ParameterSet>
      <Parameter name="Apid" parameterTypeRef="ApidType"/>
      <Parameter name="Value" parameterTypeRef="ValueType"/>
    </ParameterSet>
    <ContainerSet>
      <SequenceContainer name="CCSDSPacket" abstract="true">
        <EntryList>
          <ParameterRefEntry parameterRef="Apid"/>
        </EntryList>
      </SequenceContainer>
      <SequenceContainer name="C1">
        <EntryList>
          <ParameterRefEntry parameterRef="Value"/>
        </EntryList>
        <BaseContainer containerRef="CCSDSPacket">
          <RestrictionCriteria>
            <Comparison parameterRef="Apid" value="11" comparisonOperator="=="/>
          </RestrictionCriteria>
        </BaseContainer>
      </SequenceContainer>
      <SequenceContainer name="C2">
        <EntryList>
          <ParameterRefEntry parameterRef="Value"/>
        </EntryList>
        <BaseContainer containerRef="CCSDSPacket">
          <RestrictionCriteria>
            <Comparison parameterRef="Apid" value="22" comparisonOperator="=="/>
          </RestrictionCriteria>
        </BaseContainer>
      </SequenceContainer>
    </ContainerSet>
  </TelemetryMetaData>
</SpaceSystem>`

// buildPacket assembles one raw CCSDS packet with an 11-bit apid, zeroed
// sequence fields, and the given data field.
func buildPacket(apid uint16, data []byte) []byte {
	buf := make([]byte, 6+len(data))
	buf[0] = byte(apid >> 8 & 0x07)
	buf[1] = byte(apid & 0xFF)
	buf[2] = 0xC0
	buf[3] = 0x00

	dataLen := uint16(len(data) - 1)
	buf[4] = byte(dataLen >> 8)
	buf[5] = byte(dataLen & 0xFF)

	copy(buf[6:], data)
	return buf
}

func loadDef(t *testing.T) *definitions.Definition {
	t.Helper()
	def, err := definitions.Load(strings.NewReader(inheritanceXML))
	require.NoError(t, err)
	return def
}

func TestEngine_SelectsMatchingInheritor(t *testing.T) {
	def := loadDef(t)
	engine := &Engine{Def: def, ParseBadPackets: true}

	// data field: Apid=11, Value=42, each a 16-bit unsigned parameter.
	raw, err := ccsds.New(buildPacket(11, []byte{0x00, 0x0B, 0x00, 0x2A}))
	require.NoError(t, err)

	result := engine.Parse(raw)
	require.True(t, result.Ok())

	apid, ok := result.Packet.Get("Apid")
	require.True(t, ok)
	assert.EqualValues(t, 11, apid.IntVal)

	value, ok := result.Packet.Get("Value")
	require.True(t, ok)
	assert.EqualValues(t, 42, value.IntVal)
}

func TestEngine_NoMatchingInheritorOnAbstractFails(t *testing.T) {
	def := loadDef(t)
	engine := &Engine{Def: def, ParseBadPackets: true}

	// data field: Apid=33 (no inheritor restricts on this value), Value=42.
	raw, err := ccsds.New(buildPacket(33, []byte{0x00, 0x21, 0x00, 0x2A}))
	require.NoError(t, err)

	result := engine.Parse(raw)
	require.False(t, result.Ok())
	require.NotNil(t, result.Unrecognized)
	assert.ErrorIs(t, result.Unrecognized, errs.ErrUnrecognizedPacketType)
	assert.NotNil(t, result.Unrecognized.Partial)
}

func TestEngine_TrailingBitsWarnAndDropWhenParseBadPacketsFalse(t *testing.T) {
	def := loadDef(t)
	warned := false
	engine := &Engine{
		Def:             def,
		ParseBadPackets: false,
		OnWarning:       func(string) { warned = true },
	}

	// Extra trailing byte beyond what C1's entry list consumes.
	raw, err := ccsds.New(buildPacket(11, []byte{0x00, 0x0B, 0x00, 0x2A, 0xFF}))
	require.NoError(t, err)

	result := engine.Parse(raw)
	assert.True(t, warned)
	assert.False(t, result.Ok())
	assert.Nil(t, result.Unrecognized)
}
