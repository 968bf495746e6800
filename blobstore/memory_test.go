package blobstore

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("hello blob")
	require.NoError(t, store.Put(ctx, "a/one", data))
	require.NoError(t, store.Put(ctx, "b/two", []byte("x")))

	data[0] = 'H'

	got, err := ReadAll(ctx, store, "a/one")
	require.NoError(t, err)
	assert.Equal(t, "hello blob", string(got), "Put must copy its input")

	assert.Equal(t, []string{"a/one"}, store.List("a/"))
	assert.Equal(t, []string{"a/one", "b/two"}, store.List(""))

	_, err = store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	blob, err := store.Open(ctx, "a/one")
	require.NoError(t, err)
	_, err = blob.ReadAt(ctx, make([]byte, 1), -1)
	assert.Error(t, err)
}

func TestNewReader_Chunked(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := bytes.Repeat([]byte("0123456789"), ReadChunkSize/5)
	require.NoError(t, store.Put(ctx, "big", data))

	blob, err := store.Open(ctx, "big")
	require.NoError(t, err)

	_, mappable := blob.(Mappable)
	require.False(t, mappable)

	got, err := io.ReadAll(NewReader(ctx, blob))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

type countingBlob struct {
	Blob
	reads int
}

func (b *countingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	b.reads++
	return b.Blob.ReadAt(ctx, p, off)
}

func TestNewReader_BatchesSmallReads(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := bytes.Repeat([]byte("0123456789"), 3*ReadChunkSize/10+10)
	require.NoError(t, store.Put(ctx, "big", data))

	blob, err := store.Open(ctx, "big")
	require.NoError(t, err)

	cb := &countingBlob{Blob: blob}

	// Callers such as csv.Reader pull through small buffers.
	got, err := io.ReadAll(bufio.NewReaderSize(NewReader(ctx, cb), 4096))
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, 4, cb.reads)
}
