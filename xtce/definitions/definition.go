package definitions

import (
	"github.com/satparse/spacepacket/internal/ordered"
	"github.com/satparse/spacepacket/xtce/containers"
	"github.com/satparse/spacepacket/xtce/parameters"
)

// DefaultNamespaceURI is the XTCE 1.2 namespace the loader assumes absent an
// explicit override (spec §4.7).
const DefaultNamespaceURI = "http://www.omg.org/spec/XTCE/20180204"

// DefaultRootContainerName is the conventional CCSDS root container name
// (spec §4.6).
const DefaultRootContainerName = "CCSDSPacket"

// Metadata carries the document-level facts original_source's loader reads
// from <Header> and the document's own namespace declaration, supplemented
// into the core because they are cheap and not excluded by any non-goal.
type Metadata struct {
	NamespaceURI    string
	SchemaVersion   string
	Date            string
	Author          string
	SpaceSystemName string
}

// Definition is the fully-resolved, in-memory form of one XTCE document
// (spec §3).
type Definition struct {
	ParameterTypes     *ordered.Map[string, parameters.ParameterType]
	Parameters         *ordered.Map[string, parameters.Parameter]
	SequenceContainers *ordered.Map[string, *containers.SequenceContainer]
	RootContainerName  string
	Metadata           Metadata
}

// New returns an empty Definition with the conventional root container
// name, ready for a loader to populate.
func New() *Definition {
	return &Definition{
		ParameterTypes:     ordered.NewMap[string, parameters.ParameterType](),
		Parameters:         ordered.NewMap[string, parameters.Parameter](),
		SequenceContainers: ordered.NewMap[string, *containers.SequenceContainer](),
		RootContainerName:  DefaultRootContainerName,
	}
}

// RootContainer returns the designated root SequenceContainer.
func (d *Definition) RootContainer() (*containers.SequenceContainer, bool) {
	return d.SequenceContainers.Get(d.RootContainerName)
}
