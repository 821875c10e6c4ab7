package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func TestNewReader_None(t *testing.T) {
	src := bytes.NewReader([]byte("hello"))
	r, err := NewReader(None, src)
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "hello", string(out))
}

func TestNewReader_S2RoundTrip(t *testing.T) {
	var compressed bytes.Buffer
	w := s2.NewWriter(&compressed)
	_, err := w.Write([]byte("the quick brown fox"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewReader(S2, bytes.NewReader(compressed.Bytes()))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "the quick brown fox", string(out))
}

func TestNewReader_LZ4RoundTrip(t *testing.T) {
	var compressed bytes.Buffer
	w := lz4.NewWriter(&compressed)
	_, err := w.Write([]byte("the quick brown fox jumps"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewReader(LZ4, bytes.NewReader(compressed.Bytes()))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "the quick brown fox jumps", string(out))
}

func TestNewReader_UnknownKind(t *testing.T) {
	_, err := NewReader(Kind(99), bytes.NewReader(nil))
	require.Error(t, err)
}
