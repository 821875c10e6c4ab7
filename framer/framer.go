package framer

import (
	"fmt"
	"io"

	"github.com/satparse/spacepacket/ccsds"
	"github.com/satparse/spacepacket/compress"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/internal/options"
	"github.com/satparse/spacepacket/internal/pool"
)

// trimThreshold is the consumed-prefix size (spec §4.2: "~20 MiB") past
// which the Framer drops already-emitted bytes from its rolling buffer.
const trimThreshold = 20 * 1024 * 1024

const defaultStreamReadSize = 4096

// textMode is implemented by sources that know they were opened for text
// (rune-decoded) rather than binary access; the Framer requires binary.
type textMode interface {
	IsTextMode() bool
}

// segmentGroup accumulates a segmented-packet reassembly in progress for a
// single APID.
type segmentGroup struct {
	firstBytes []byte
	tail       []byte
	seqCounts  []uint16
}

// Framer pulls CCSDS packets out of a byte source (spec §4.2).
//
// A Framer is not safe for concurrent use; decode one stream per goroutine
// (spec §5).
type Framer struct {
	src      io.Reader
	buf      *pool.ByteBuffer
	cur      int
	readSize int
	cfg      *config
	groups   map[uint16]*segmentGroup
	done     bool
	readErr  error
}

// New creates a Framer reading from r. r may be a seekable file, a socket,
// or an in-memory buffer (anything implementing io.Reader); if it also
// implements io.Seeker, the Framer uses its length to size the default read
// chunk as a single whole-file read.
func New(r io.Reader, opts ...Option) (*Framer, error) {
	if tm, ok := r.(textMode); ok && tm.IsTextMode() {
		return nil, errs.ErrTextModeSource
	}

	cfg := newDefaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	knownLength := -1
	if seeker, ok := r.(io.Seeker); ok {
		cur, err := seeker.Seek(0, io.SeekCurrent)
		if err == nil {
			end, err2 := seeker.Seek(0, io.SeekEnd)
			if err2 == nil {
				if _, err3 := seeker.Seek(cur, io.SeekStart); err3 == nil {
					knownLength = int(end - cur)
				}
			}
		}
	}

	src := r
	if cfg.compression != compress.None {
		wrapped, err := compress.NewReader(cfg.compression, r)
		if err != nil {
			return nil, fmt.Errorf("framer: %w", err)
		}
		src = wrapped
	}

	readSize := cfg.bufferReadSize
	if readSize <= 0 {
		if knownLength >= 0 {
			readSize = knownLength
		} else {
			readSize = defaultStreamReadSize
		}
	}
	if readSize <= 0 {
		readSize = defaultStreamReadSize
	}

	return &Framer{
		src:      src,
		buf:      pool.GetReadBuffer(),
		readSize: readSize,
		cfg:      cfg,
		groups:   make(map[uint16]*segmentGroup),
	}, nil
}

// Close releases the Framer's internal read buffer back to its pool. It
// does not close the underlying source; the caller owns that.
func (f *Framer) Close() {
	if f.buf != nil {
		pool.PutReadBuffer(f.buf)
		f.buf = nil
	}
}

// ensureAvailable tops up the rolling buffer until at least n bytes are
// available from cur onward, or the source is exhausted. Returns false if
// the source ran out before n bytes could be made available.
func (f *Framer) ensureAvailable(n int) bool {
	for f.buf.Len()-f.cur < n {
		if f.done {
			return f.buf.Len()-f.cur >= n
		}

		chunk := make([]byte, f.readSize)
		nRead, err := f.src.Read(chunk)
		if nRead > 0 {
			f.buf.MustWrite(chunk[:nRead])
		}
		if err != nil {
			f.done = true
			if err != io.EOF {
				f.readErr = fmt.Errorf("%w: %v", errs.ErrIO, err)
			}
		}
		if nRead == 0 {
			f.done = true
		}
	}

	return true
}

// nextRaw reads one physical CCSDS packet (no reassembly) from the source.
// Returns io.EOF when the source is exhausted, whether cleanly (packet
// boundary coincides with end of stream) or mid-packet (a truncated final
// packet is dropped and reported through the "truncated-packet" warning).
func (f *Framer) nextRaw() (ccsds.RawPacketBytes, error) {
	if f.cur > trimThreshold {
		f.buf.DropPrefix(f.cur)
		f.cur = 0
	}

	need := f.cfg.skipHeaderBytes + ccsds.HeaderSize
	if !f.ensureAvailable(need) {
		if f.readErr != nil {
			return ccsds.RawPacketBytes{}, f.readErr
		}
		if f.buf.Len()-f.cur > 0 {
			f.cfg.onWarning("truncated-packet", fmt.Sprintf("%v: %d byte(s) short of a primary header", errs.ErrTruncatedPacket, need-(f.buf.Len()-f.cur)))
		}
		return ccsds.RawPacketBytes{}, io.EOF
	}

	headerStart := f.cur + f.cfg.skipHeaderBytes
	h, err := ccsds.ParseHeader(f.buf.Bytes()[headerStart:])
	if err != nil {
		return ccsds.RawPacketBytes{}, err
	}

	total := h.TotalOctets()
	need = f.cfg.skipHeaderBytes + total
	if !f.ensureAvailable(need) {
		if f.readErr != nil {
			return ccsds.RawPacketBytes{}, f.readErr
		}
		f.cfg.onWarning("truncated-packet", fmt.Sprintf("%v: apid %d declared %d octets, source ended %d short",
			errs.ErrTruncatedPacket, h.Apid, total, need-(f.buf.Len()-f.cur)))
		return ccsds.RawPacketBytes{}, io.EOF
	}

	pktBytes := make([]byte, total)
	copy(pktBytes, f.buf.Bytes()[headerStart:headerStart+total])
	f.cur += need

	rp, err := ccsds.New(pktBytes)
	if err != nil {
		return ccsds.RawPacketBytes{}, err
	}

	if f.cfg.computeDigest {
		rp.Digest()
	}

	return rp, nil
}

// Next returns the next logical packet: a single physical packet, or, when
// reassembly is enabled, the result of combining a complete
// FIRST..CONTINUATION*..LAST segment group. Returns io.EOF when the source
// is exhausted.
func (f *Framer) Next() (ccsds.RawPacketBytes, error) {
	for {
		p, err := f.nextRaw()
		if err != nil {
			return ccsds.RawPacketBytes{}, err
		}

		if !f.cfg.combineSegmented || p.Header.SequenceFlags == ccsds.Unsegmented {
			return p, nil
		}

		switch p.Header.SequenceFlags {
		case ccsds.First:
			f.groups[p.Header.Apid] = &segmentGroup{
				firstBytes: append([]byte(nil), p.Bytes()...),
				seqCounts:  []uint16{p.Header.SequenceCount},
			}

		case ccsds.Continuation:
			g, ok := f.groups[p.Header.Apid]
			if !ok {
				f.cfg.onWarning("segment-gap", fmt.Sprintf(
					"%v: apid %d, dropping", errs.ErrUnknownApidState, p.Header.Apid))
				continue
			}
			g.tail = append(g.tail, segmentPayload(p, f.cfg.secondaryHeaderBytes)...)
			g.seqCounts = append(g.seqCounts, p.Header.SequenceCount)

		case ccsds.Last:
			g, ok := f.groups[p.Header.Apid]
			if !ok {
				f.cfg.onWarning("segment-gap", fmt.Sprintf(
					"%v: apid %d, dropping", errs.ErrUnknownApidState, p.Header.Apid))
				continue
			}
			g.tail = append(g.tail, segmentPayload(p, f.cfg.secondaryHeaderBytes)...)
			g.seqCounts = append(g.seqCounts, p.Header.SequenceCount)
			delete(f.groups, p.Header.Apid)

			if !contiguousMod16384(g.seqCounts) {
				f.cfg.onWarning("sequence-gap", fmt.Sprintf(
					"%v: apid %d segments %v, dropping group", errs.ErrSequenceGap, p.Header.Apid, g.seqCounts))
				continue
			}

			combined := make([]byte, 0, len(g.firstBytes)+len(g.tail))
			combined = append(combined, g.firstBytes...)
			combined = append(combined, g.tail...)

			rp, err := ccsds.NewReassembled(combined)
			if err != nil {
				return ccsds.RawPacketBytes{}, err
			}
			if f.cfg.computeDigest {
				rp.Digest()
			}

			return rp, nil
		}
	}
}

// segmentPayload returns a segment's data field with its secondary header
// (if any) stripped, for concatenation onto a reassembly group.
func segmentPayload(p ccsds.RawPacketBytes, secondaryHeaderBytes int) []byte {
	data := p.DataField()
	if secondaryHeaderBytes >= len(data) {
		return nil
	}

	return data[secondaryHeaderBytes:]
}

// contiguousMod16384 reports whether seqCounts forms a run where each
// element is exactly one more than the previous, modulo 16384 (the 14-bit
// sequence count field wraps).
func contiguousMod16384(seqCounts []uint16) bool {
	for i := 1; i < len(seqCounts); i++ {
		delta := (int(seqCounts[i]) - int(seqCounts[i-1]) + 16384) % 16384
		if delta != 1 {
			return false
		}
	}

	return true
}
