package filter

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipDecode(t *testing.T) {
	original := []byte("Global attribute entries compressed inside a CCR record.")

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(original)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	f := NewGzip(nil)
	decompressed, err := f.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestGzipRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte{0, 0, 0, 1, 'C', 'D', 'F'}, 100)
	f := NewGzip([]int32{9})
	assert.Equal(t, GZIP, f.ID())

	encoded, err := f.Encode(original)
	require.NoError(t, err)
	decoded, err := f.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestGzipDecodeGarbage(t *testing.T) {
	_, err := NewGzip(nil).Decode([]byte("not gzip"))
	assert.Error(t, err)
}

func TestRLEDecode(t *testing.T) {
	// 0x00 0x02 expands to three zeros
	input := []byte{0x41, 0x00, 0x02, 0x42, 0x00, 0x00}
	decoded, err := NewRLE(nil).Decode(input)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0, 0, 0, 0x42, 0}, decoded)
}

func TestRLERoundTrip(t *testing.T) {
	original := append(append([]byte{7}, make([]byte, 600)...), 9, 0)
	f := NewRLE(nil)

	encoded, err := f.Encode(original)
	require.NoError(t, err)
	assert.Less(t, len(encoded), len(original))

	decoded, err := f.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestRLEMissingCount(t *testing.T) {
	_, err := NewRLE(nil).Decode([]byte{0x01, 0x00})
	assert.Error(t, err)
}

func TestNewUnsupported(t *testing.T) {
	_, err := New(Huff, nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = New(Compression(77), nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	f, err := New(GZIP, []int32{6})
	require.NoError(t, err)
	assert.Equal(t, GZIP, f.ID())
	assert.Equal(t, "GZIP", f.ID().String())
}
