package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a stream compression format.
type Type uint8

const (
	// None passes data through unchanged.
	None Type = iota
	// Gzip is RFC 1952 gzip.
	Gzip
	// Zstd is a zstandard frame.
	Zstd
	// LZ4 is an lz4 frame (not raw blocks).
	LZ4
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ErrUnknownType is returned for a Type outside the declared constants.
var ErrUnknownType = errors.New("compress: unknown type")

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect reports the format whose magic prefixes b.
func Detect(b []byte) Type {
	switch {
	case bytes.HasPrefix(b, magicZstd):
		return Zstd
	case bytes.HasPrefix(b, magicLZ4):
		return LZ4
	case bytes.HasPrefix(b, magicGzip):
		return Gzip
	default:
		return None
	}
}

// FromName maps a file or object name extension to a Type.
func FromName(name string) Type {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// zstd decoders are expensive to build and safe to reuse after Reset.
var zstdDecoderPool sync.Pool

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	_ = dec.Reset(nil)
	zstdDecoderPool.Put(dec)
}

type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	if z.dec == nil {
		return 0, io.ErrClosedPipe
	}
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	if z.dec != nil {
		putZstdDecoder(z.dec)
		z.dec = nil
	}
	return nil
}

// NewReader returns a reader yielding the decompressed content of r and the
// detected format. Uncompressed input is passed through.
//
// Closing the returned reader does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Type, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(magicZstd))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, err
	}

	t := Detect(head)

	switch t {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, t, fmt.Errorf("compress: open gzip: %w", err)
		}
		return zr, t, nil
	case Zstd:
		dec, err := getZstdDecoder(br)
		if err != nil {
			return nil, t, fmt.Errorf("compress: open zstd: %w", err)
		}
		return &zstdReadCloser{dec: dec}, t, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), t, nil
	default:
		return io.NopCloser(br), t, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w with an encoder for t. Close flushes the encoder but
// does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}
