package spacepacket

import (
	"io"

	"github.com/satparse/spacepacket/xtce/definitions"
)

// LoadDefinition reads an XTCE document from r and returns its fully
// resolved Definition. It is a thin wrapper over definitions.Load exposed
// at the root for callers that do not otherwise need the xtce/definitions
// package. opts forwards to definitions.Load unchanged, so
// definitions.WithWarningHandler works here too.
func LoadDefinition(r io.Reader, opts ...definitions.Option) (*definitions.Definition, error) {
	return definitions.Load(r, opts...)
}
