package parser

import (
	"fmt"

	"github.com/satparse/spacepacket/bitcursor"
	"github.com/satparse/spacepacket/ccsds"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/packet"
	"github.com/satparse/spacepacket/xtce/containers"
	"github.com/satparse/spacepacket/xtce/definitions"
)

// Engine walks a Definition's container-inheritance graph against one
// packet's bytes (spec §4.6).
type Engine struct {
	Def *definitions.Definition

	// RootContainerName overrides Def.RootContainerName when non-empty.
	RootContainerName string

	// ParseBadPackets controls whether a packet whose bit cursor has
	// trailing unconsumed bits after a successful parse is still yielded
	// (true) or dropped (false, the zero value; the root Stream sets it to
	// true by default).
	ParseBadPackets bool

	// OnWarning, when non-nil, receives diagnostic messages for conditions
	// that do not fail the parse outright (e.g. trailing unconsumed bits).
	OnWarning func(msg string)
}

func (e *Engine) rootName() string {
	if e.RootContainerName != "" {
		return e.RootContainerName
	}
	return e.Def.RootContainerName
}

func (e *Engine) warn(msg string) {
	if e.OnWarning != nil {
		e.OnWarning(msg)
	}
}

// Parse walks raw's packet bytes against the container graph starting at
// the configured root, returning exactly one of a populated Packet or an
// UnrecognizedError inside Result. A zero Result (neither field set) means
// the packet was dropped per ParseBadPackets.
func (e *Engine) Parse(raw ccsds.RawPacketBytes) Result {
	pkt := packet.New(raw)

	current, ok := e.Def.SequenceContainers.Get(e.rootName())
	if !ok {
		return unrecognized(pkt, fmt.Errorf("%w: root container %q not defined", errs.ErrUnresolvedRef, e.rootName()))
	}

	cursor := raw.Cursor()

	for {
		if err := walkEntries(e.Def, current, cursor, pkt); err != nil {
			return unrecognized(pkt, err)
		}

		next, terminate, err := e.selectInheritor(current, pkt)
		if err != nil {
			return unrecognized(pkt, err)
		}
		if terminate {
			break
		}
		current = next
	}

	if cursor.Remaining() > 0 {
		e.warn(fmt.Sprintf("packet for container %q has %d unconsumed bits after parse", current.Name, cursor.Remaining()))
		if !e.ParseBadPackets {
			return Result{}
		}
	}

	return Result{Packet: pkt}
}

// selectInheritor evaluates current's inheritors' restriction criteria and
// returns the single matching inheritor, or terminate=true when current is
// concrete and none match (spec §4.6 steps 2-6).
func (e *Engine) selectInheritor(current *containers.SequenceContainer, pkt *packet.Packet) (next *containers.SequenceContainer, terminate bool, err error) {
	var matched []*containers.SequenceContainer

	for _, name := range current.Inheritors {
		child, ok := e.Def.SequenceContainers.Get(name)
		if !ok {
			return nil, false, fmt.Errorf("%w: inheritor %q of %q not defined", errs.ErrUnresolvedRef, name, current.Name)
		}

		matches, evalErr := evaluateRestriction(child, pkt)
		if evalErr != nil {
			return nil, false, evalErr
		}
		if matches {
			matched = append(matched, child)
		}
	}

	switch len(matched) {
	case 1:
		return matched[0], false, nil

	case 0:
		if current.Abstract {
			return nil, false, fmt.Errorf("%w: abstract container %q matched no inheritor", errs.ErrUnrecognizedPacketType, current.Name)
		}
		return nil, true, nil

	default:
		return nil, false, fmt.Errorf("%w: container %q matched %d inheritors", errs.ErrUnrecognizedPacketType, current.Name, len(matched))
	}
}

func evaluateRestriction(child *containers.SequenceContainer, pkt *packet.Packet) (bool, error) {
	if child.RestrictionCriteria == nil {
		return true, nil
	}
	return child.RestrictionCriteria.Evaluate(pkt, nil)
}

// walkEntries parses current's entry list in order, recursing into nested
// containers' entry lists without the nested container itself consuming
// additional structure (spec §4.6 step 1).
func walkEntries(def *definitions.Definition, current *containers.SequenceContainer, cursor *bitcursor.Cursor, pkt *packet.Packet) error {
	for _, entry := range current.Entries {
		switch entry.Kind {
		case containers.ParameterEntry:
			param, ok := def.Parameters.Get(entry.Name)
			if !ok {
				return fmt.Errorf("%w: parameter %q", errs.ErrUnresolvedRef, entry.Name)
			}

			v, err := param.Type.Parse(cursor, pkt)
			if err != nil {
				return fmt.Errorf("parameter %q: %w", entry.Name, err)
			}
			pkt.Set(param.Name, v)

		case containers.ContainerEntry:
			nested, ok := def.SequenceContainers.Get(entry.Name)
			if !ok {
				return fmt.Errorf("%w: container %q", errs.ErrUnresolvedRef, entry.Name)
			}
			if err := walkEntries(def, nested, cursor, pkt); err != nil {
				return err
			}
		}
	}

	return nil
}

func unrecognized(pkt *packet.Packet, err error) Result {
	return Result{Unrecognized: &UnrecognizedError{Partial: pkt, Err: err}}
}
