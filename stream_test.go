package spacepacket

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoXML = `<?xml version="1.0"?>
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
    </ContainerSet>
  </TelemetryMetaData>
</SpaceSystem>`

func buildDemoPacket(headerApid uint16, data []byte) []byte {
	buf := make([]byte, 6+len(data))
	buf[0] = byte(headerApid >> 8 & 0x07)
	buf[1] = byte(headerApid & 0xFF)
	buf[2] = 0xC0
	dataLen := uint16(len(data) - 1)
	buf[4] = byte(dataLen >> 8)
	buf[5] = byte(dataLen & 0xFF)
	copy(buf[6:], data)
	return buf
}

func TestStream_DecodesPacketsInOrder(t *testing.T) {
	def, err := LoadDefinition(strings.NewReader(demoXML))
	require.NoError(t, err)

	var src bytes.Buffer
	src.Write(buildDemoPacket(1, []byte{0x00, 0x0B, 0x00, 0x2A}))
	src.Write(buildDemoPacket(2, []byte{0x00, 0x0B, 0x00, 0x63}))

	stream, err := NewStream(&src, def)
	require.NoError(t, err)
	defer stream.Close()

	var values []int64
	for result, err := range stream.Results() {
		require.NoError(t, err)
		require.True(t, result.Ok())
		v, ok := result.Packet.Get("Value")
		require.True(t, ok)
		values = append(values, v.IntVal)
	}

	assert.Equal(t, []int64{42, 99}, values)
}

func TestStream_UnrecognizedPacketDroppedByDefault(t *testing.T) {
	def, err := LoadDefinition(strings.NewReader(demoXML))
	require.NoError(t, err)

	src := bytes.NewReader(buildDemoPacket(1, []byte{0x00, 0x16, 0x00, 0x2A})) // Apid=22, no matching inheritor

	stream, err := NewStream(src, def)
	require.NoError(t, err)
	defer stream.Close()

	count := 0
	for range stream.Results() {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestStream_YieldUnrecognizedPacketErrors(t *testing.T) {
	def, err := LoadDefinition(strings.NewReader(demoXML))
	require.NoError(t, err)

	src := bytes.NewReader(buildDemoPacket(1, []byte{0x00, 0x16, 0x00, 0x2A}))

	stream, err := NewStream(src, def, WithYieldUnrecognizedPacketErrors(true))
	require.NoError(t, err)
	defer stream.Close()

	var results int
	for result, err := range stream.Results() {
		require.NoError(t, err)
		assert.False(t, result.Ok())
		require.NotNil(t, result.Unrecognized)
		results++
	}
	assert.Equal(t, 1, results)
}
