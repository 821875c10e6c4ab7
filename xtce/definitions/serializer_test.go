package definitions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_RoundTripsThroughLoad(t *testing.T) {
	def, err := Load(strings.NewReader(containerInheritanceXML))
	require.NoError(t, err)

	doc, err := Serialize(def)
	require.NoError(t, err)

	rendered, err := doc.WriteToString()
	require.NoError(t, err)

	reloaded, err := Load(strings.NewReader(rendered))
	require.NoError(t, err)

	assert.Equal(t, def.Metadata.SpaceSystemName, reloaded.Metadata.SpaceSystemName)
	assert.Equal(t, def.ParameterTypes.Len(), reloaded.ParameterTypes.Len())
	assert.Equal(t, def.Parameters.Len(), reloaded.Parameters.Len())
	assert.Equal(t, def.SequenceContainers.Len(), reloaded.SequenceContainers.Len())

	root, ok := reloaded.SequenceContainers.Get("Root")
	require.True(t, ok)
	assert.True(t, root.Abstract)
	assert.ElementsMatch(t, []string{"C1", "C2"}, root.Inheritors)

	c1, ok := reloaded.SequenceContainers.Get("C1")
	require.True(t, ok)
	assert.Equal(t, "Root", c1.BaseContainerName)
	require.NotNil(t, c1.RestrictionCriteria)
}
