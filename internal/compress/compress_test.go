package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "0,0\n0,2\n2,0\n2,2\n"

func encode(t *testing.T, typ Type, data string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, typ)
	require.NoError(t, err)
	_, err = io.WriteString(w, data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	for _, typ := range []Type{None, Gzip, Zstd, LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			data := encode(t, typ, strings.Repeat(sample, 100))
			assert.Equal(t, typ, Detect(data))

			r, detected, err := NewReader(bytes.NewReader(data))
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, typ, detected)

			out, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, strings.Repeat(sample, 100), string(out))
		})
	}
}

func TestZstdDecoderReuse(t *testing.T) {
	data := encode(t, Zstd, sample)

	for i := 0; i < 3; i++ {
		r, _, err := NewReader(bytes.NewReader(data))
		require.NoError(t, err)

		out, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, sample, string(out))
		require.NoError(t, r.Close())
	}
}

func TestNewReaderShortInput(t *testing.T) {
	for _, in := range []string{"", "1", "1,2"} {
		r, typ, err := NewReader(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, None, typ)

		out, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	}
}

func TestFromName(t *testing.T) {
	tests := map[string]Type{
		"points.csv":            None,
		"points.csv.gz":         Gzip,
		"s3://b/points.ZST":     Zstd,
		"minio://b/dir/out.lz4": LZ4,
		"-":                     None,
	}

	for name, want := range tests {
		assert.Equal(t, want, FromName(name), name)
	}
}

func TestNewWriterUnknown(t *testing.T) {
	_, err := NewWriter(io.Discard, Type(42))
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, "unknown(42)", Type(42).String())
}
