package containers

import "github.com/satparse/spacepacket/xtce/comparisons"

// EntryKind tags whether an Entry references a Parameter or a nested
// SequenceContainer.
type EntryKind uint8

const (
	ParameterEntry EntryKind = iota
	ContainerEntry
)

// Entry is one item of a SequenceContainer's entry list (spec §3).
type Entry struct {
	Kind EntryKind
	// Name is the referenced Parameter's name when Kind is ParameterEntry,
	// or the referenced SequenceContainer's name when Kind is ContainerEntry.
	Name string
}

// SequenceContainer is XTCE's packet-shape building block: an ordered entry
// list plus inheritance metadata enabling conditional polymorphism
// (spec §3).
type SequenceContainer struct {
	Name                string
	Entries             []Entry
	BaseContainerName   string
	RestrictionCriteria comparisons.MatchCriteria
	Abstract            bool
	// Inheritors lists every container whose BaseContainerName equals
	// Name, back-populated by the loader's second pass (spec §4.7, §9).
	Inheritors []string

	ShortDescription string
	LongDescription  string
}

// HasBase reports whether this container declares a base container.
func (c SequenceContainer) HasBase() bool {
	return c.BaseContainerName != ""
}
