package spacepacket

import (
	"errors"
	"io"
	"iter"

	"github.com/satparse/spacepacket/framer"
	"github.com/satparse/spacepacket/internal/options"
	"github.com/satparse/spacepacket/parser"
	"github.com/satparse/spacepacket/xtce/definitions"
)

// Stream decodes one CCSDS byte source against a Definition, yielding one
// parser.Result per logical packet (spec §4.6, §5: one packet decoded per
// step, no shared mutable state between packets).
type Stream struct {
	f      *framer.Framer
	engine *parser.Engine
	cfg    *config
}

// NewStream wraps r as a framed, container-walked decode stream over def.
// def is read-only once constructed and may be shared across concurrently
// running streams (spec §5).
func NewStream(r io.Reader, def *definitions.Definition, opts ...Option) (*Stream, error) {
	cfg := newDefaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	framerOpts := append([]framer.Option(nil), cfg.framerOpts...)
	framerOpts = append(framerOpts, framer.WithWarningHandler(cfg.onWarning))

	f, err := framer.New(r, framerOpts...)
	if err != nil {
		return nil, err
	}

	engine := &parser.Engine{
		Def:               def,
		RootContainerName: cfg.rootContainerName,
		ParseBadPackets:   cfg.parseBadPackets,
		OnWarning: func(detail string) {
			cfg.onWarning("invalid-length", detail)
		},
	}

	return &Stream{f: f, engine: engine, cfg: cfg}, nil
}

// Close releases the underlying Framer's resources. It does not close the
// byte source, which the caller owns.
func (s *Stream) Close() {
	s.f.Close()
}

// Next decodes and returns the next packet's parser.Result. Returns io.EOF
// when the byte source is exhausted. A packet dropped per
// WithParseBadPackets(false) is skipped transparently: Next keeps reading
// until it has a Result to return or the source ends.
func (s *Stream) Next() (parser.Result, error) {
	for {
		raw, err := s.f.Next()
		if err != nil {
			return parser.Result{}, err
		}

		result := s.engine.Parse(raw)

		if result.Unrecognized != nil && !s.cfg.yieldUnrecognizedErrors {
			continue
		}
		if !result.Ok() && result.Unrecognized == nil {
			// dropped per parse_bad_packets=false
			continue
		}

		return result, nil
	}
}

// Results returns a lazy iterator over (Result, error) pairs, terminating
// cleanly on io.EOF (spec §5: the stream is driven by the consumer;
// dropping the iterator releases the byte source reference).
func (s *Stream) Results() iter.Seq2[parser.Result, error] {
	return func(yield func(parser.Result, error) bool) {
		for {
			result, err := s.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(parser.Result{}, err)
				}
				return
			}
			if !yield(result, nil) {
				return
			}
		}
	}
}
