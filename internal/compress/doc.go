// Package compress wraps point streams in gzip, zstd or lz4 codecs.
//
// Readers detect the format from the frame magic, so callers can hand any
// input to NewReader. Writers pick the format from the target name.
package compress
