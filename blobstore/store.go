package blobstore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// BlobStore reads and writes whole blobs.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes data as the complete content of name.
	Put(ctx context.Context, name string, data []byte) error
}

// Blob is a read-only handle to a blob.
type Blob interface {
	// ReadAt reads len(p) bytes at off. It follows io.ReaderAt semantics.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	io.Closer
}

// Mappable is implemented by blobs whose content is already in memory.
type Mappable interface {
	// Bytes returns the content. The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadChunkSize is the request size NewReader uses for remote blobs.
const ReadChunkSize = 1 << 20

// NewReader returns a sequential reader over b.
// Mappable blobs are read without copying. Other blobs are fetched in
// ReadChunkSize requests regardless of how little the caller asks for.
func NewReader(ctx context.Context, b Blob) io.Reader {
	if m, ok := b.(Mappable); ok {
		if data, err := m.Bytes(); err == nil {
			return bytes.NewReader(data)
		}
	}
	size := ReadChunkSize
	if s := b.Size(); s < int64(size) {
		size = max(int(s), 16)
	}
	return bufio.NewReaderSize(&sequentialReader{ctx: ctx, blob: b}, size)
}

type sequentialReader struct {
	ctx  context.Context
	blob Blob
	off  int64
}

func (r *sequentialReader) Read(p []byte) (int, error) {
	if r.off >= r.blob.Size() {
		return 0, io.EOF
	}
	if len(p) > ReadChunkSize {
		p = p[:ReadChunkSize]
	}

	n, err := r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)

	if errors.Is(err, io.EOF) && n > 0 {
		err = nil
	}
	return n, err
}

// ReadAll opens name in s and returns its full content.
func ReadAll(ctx context.Context, s BlobStore, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	buf := bytes.NewBuffer(make([]byte, 0, b.Size()))
	if _, err := io.Copy(buf, NewReader(ctx, b)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
