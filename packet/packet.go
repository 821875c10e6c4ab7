package packet

import "github.com/satparse/spacepacket/ccsds"

// Packet is the decode pipeline's per-packet output: the framed bytes plus
// an insertion-ordered mapping from parameter name to ParsedValue, built up
// entry by entry as the container parser walks a definition's entry lists
// (spec §3, §4.6).
type Packet struct {
	Raw ccsds.RawPacketBytes

	names  []string
	values map[string]ParsedValue
}

// New constructs an empty Packet backed by raw. The mapping is populated by
// the container parser, one Set call per entry consumed.
func New(raw ccsds.RawPacketBytes) *Packet {
	return &Packet{
		Raw:    raw,
		values: make(map[string]ParsedValue),
	}
}

// Set inserts or overwrites name's value, recording insertion order for
// first-time inserts.
func (p *Packet) Set(name string, v ParsedValue) {
	if _, exists := p.values[name]; !exists {
		p.names = append(p.names, name)
	}
	p.values[name] = v
}

// Get returns name's value and whether it is present.
func (p *Packet) Get(name string) (ParsedValue, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns parameter names in insertion order.
func (p *Packet) Names() []string {
	return p.names
}

// Len returns the number of parameters parsed so far.
func (p *Packet) Len() int {
	return len(p.names)
}

// All iterates (name, value) pairs in insertion order. Intended for range
// over func in Go 1.23+ callers (for name, v := range pkt.All() { ... }).
func (p *Packet) All() func(yield func(string, ParsedValue) bool) {
	return func(yield func(string, ParsedValue) bool) {
		for _, name := range p.names {
			if !yield(name, p.values[name]) {
				return
			}
		}
	}
}
