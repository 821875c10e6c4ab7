package spacepacket

import (
	"github.com/satparse/spacepacket/framer"
	"github.com/satparse/spacepacket/internal/options"
)

// config holds a Stream's resolved settings (spec §6), split between the
// fields the root facade owns directly and the framer.Option values it
// forwards to framer.New unchanged.
type config struct {
	rootContainerName       string
	parseBadPackets         bool
	yieldUnrecognizedErrors bool
	onWarning               func(kind, detail string)
	framerOpts              []framer.Option
}

func newDefaultConfig() *config {
	return &config{
		rootContainerName: "",
		parseBadPackets:   true,
		onWarning:         func(string, string) {},
	}
}

// Option represents a functional option for configuring a Stream.
type Option = options.Option[*config]

// WithRootContainerName overrides the Definition's RootContainerName for
// this stream only (default "CCSDSPacket", or the Definition's own
// configured root when left empty).
func WithRootContainerName(name string) Option {
	return options.NoError(func(c *config) {
		c.rootContainerName = name
	})
}

// WithParseBadPackets controls whether a packet whose bit cursor has
// unconsumed trailing bits after a successful container walk is still
// yielded (true, the default) or dropped (false).
func WithParseBadPackets(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.parseBadPackets = enabled
	})
}

// WithYieldUnrecognizedPacketErrors makes the stream yield a parser.Result
// carrying an UnrecognizedError in-band instead of silently skipping
// packets whose container graph walk fails, whether for lack of a unique
// inheritor or for a parameter decode error.
func WithYieldUnrecognizedPacketErrors(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.yieldUnrecognizedErrors = enabled
	})
}

// WithWarningHandler installs a callback invoked for every non-fatal
// decode diagnostic: trailing-unconsumed-bits warnings from the container
// parser, plus anything the underlying Framer reports (segment gaps,
// dropped continuations).
func WithWarningHandler(fn func(kind, detail string)) Option {
	return options.NoError(func(c *config) {
		if fn != nil {
			c.onWarning = fn
		}
	})
}

// WithFramerOptions forwards opts to framer.New unchanged, for the
// byte-level settings the Framer itself owns (skip/secondary header
// bytes, combine-segmented-packets, buffer read size, compression,
// content digest).
func WithFramerOptions(opts ...framer.Option) Option {
	return options.NoError(func(c *config) {
		c.framerOpts = append(c.framerOpts, opts...)
	})
}
