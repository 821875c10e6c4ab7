package framer

import (
	"github.com/satparse/spacepacket/compress"
	"github.com/satparse/spacepacket/internal/options"
)

// config holds a Framer's resolved settings (spec §6 decoder stream
// configuration, the Framer's share of it).
type config struct {
	skipHeaderBytes      int
	secondaryHeaderBytes int
	combineSegmented     bool
	bufferReadSize       int
	computeDigest        bool
	compression          compress.Kind
	onWarning            func(kind, detail string)
}

func newDefaultConfig() *config {
	return &config{
		onWarning: func(string, string) {},
	}
}

// Option represents a functional option for configuring a Framer.
type Option = options.Option[*config]

// WithSkipHeaderBytes sets the number of bytes discarded before each
// packet's primary header, for raw-record wrappers that prefix every
// packet with a fixed-size record header of their own.
func WithSkipHeaderBytes(n int) Option {
	return options.NoError(func(c *config) {
		c.skipHeaderBytes = n
	})
}

// WithSecondaryHeaderBytes sets the number of bytes skipped after each
// segment's primary header when concatenating segmented packets.
func WithSecondaryHeaderBytes(n int) Option {
	return options.NoError(func(c *config) {
		c.secondaryHeaderBytes = n
	})
}

// WithCombineSegmentedPackets enables reassembly of CONTINUATION/LAST
// segments into their FIRST segment before emitting.
func WithCombineSegmentedPackets(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.combineSegmented = enabled
	})
}

// WithBufferReadSize sets the chunk size read from the underlying source on
// each top-up of the rolling buffer. Zero (the default) resolves to 4096
// for streaming sources or a single whole-file read for seekable ones.
func WithBufferReadSize(n int) Option {
	return options.NoError(func(c *config) {
		c.bufferReadSize = n
	})
}

// WithContentDigest enables eager xxHash64 digest computation for every
// emitted packet (see ccsds.RawPacketBytes.Digest); otherwise the digest is
// computed lazily on first access.
func WithContentDigest(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.computeDigest = enabled
	})
}

// WithCompression wraps the source in a streaming decompressor before
// framing begins, for packet-capture files stored zstd/s2/lz4-compressed.
func WithCompression(kind compress.Kind) Option {
	return options.NoError(func(c *config) {
		c.compression = kind
	})
}

// WithWarningHandler installs a callback invoked for every non-fatal
// diagnostic the Framer emits: dropped continuation segments, sequence
// gaps in a reassembled group, and so on. kind is a short stable tag
// ("segment-gap", "sequence-gap"); detail is a human-readable message.
func WithWarningHandler(fn func(kind, detail string)) Option {
	return options.NoError(func(c *config) {
		if fn != nil {
			c.onWarning = fn
		}
	})
}
