// Package pool provides a reusable growable byte buffer for the framer's
// rolling read window, pooled via sync.Pool to avoid reallocating on every
// packet source opened.
package pool

import (
	"io"
	"sync"
)

// Default sizing for the framer's rolling read buffer (spec §4.2: "Ensure
// N bytes available from cur", "once cur exceeds ~20 MiB, drop the consumed
// prefix").
const (
	ReadBufferDefaultSize  = 1024 * 16        // 16KiB initial capacity; grown on demand for larger packets
	ReadBufferMaxThreshold = 1024 * 1024      // 1MiB, buffers larger than this are not pooled
)

// ByteBuffer is a growable []byte with amortized growth, used as the
// framer's rolling read window.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// DropPrefix discards the first n bytes of the buffer, shifting the
// remainder down and resetting length accordingly. Used by the framer once
// the consumed-prefix threshold is crossed, so cur can reset to 0.
func (bb *ByteBuffer) DropPrefix(n int) {
	if n <= 0 {
		return
	}
	if n >= len(bb.B) {
		bb.B = bb.B[:0]
		return
	}

	bb.B = append(bb.B[:0], bb.B[n:]...)
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers, grow by ReadBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ReadBufferDefaultSize
	if cap(bb.B) > 4*ReadBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
// Implements io.Writer so ByteBuffer can be the destination of io.Copy.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.MustWrite(data)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var readBufferDefaultPool = NewByteBufferPool(ReadBufferDefaultSize, ReadBufferMaxThreshold)

// GetReadBuffer retrieves a ByteBuffer from the default framer read-buffer pool.
func GetReadBuffer() *ByteBuffer {
	return readBufferDefaultPool.Get()
}

// PutReadBuffer returns a ByteBuffer to the default framer read-buffer pool.
func PutReadBuffer(bb *ByteBuffer) {
	readBufferDefaultPool.Put(bb)
}
