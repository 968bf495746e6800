package blobstore

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Schemes recognized by ParseLocation.
const (
	SchemeFile  = "file"
	SchemeS3    = "s3"
	SchemeMinio = "minio"
)

// ErrInvalidLocation is returned for a location ParseLocation cannot use.
var ErrInvalidLocation = errors.New("blobstore: invalid location")

// Location names a blob: a local path, or a bucket and key in an object store.
type Location struct {
	Scheme string
	Bucket string
	// Key is the object key, or the local path for SchemeFile.
	Key string
}

// ParseLocation parses "s3://bucket/key", "minio://bucket/key" or a local
// path. "-" is returned as a file location with Key "-"; callers treat it
// as stdin or stdout.
func ParseLocation(s string) (Location, error) {
	if s == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}

	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return Location{Scheme: SchemeFile, Key: s}, nil
	}

	switch strings.ToLower(scheme) {
	case SchemeFile:
		return Location{Scheme: SchemeFile, Key: rest}, nil
	case SchemeS3, SchemeMinio:
	default:
		return Location{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocation, scheme)
	}

	u, err := url.Parse(s)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Location{}, fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidLocation, s)
	}

	return Location{Scheme: strings.ToLower(scheme), Bucket: u.Host, Key: key}, nil
}

// IsStdio reports whether l names stdin or stdout.
func (l Location) IsStdio() bool {
	return l.Scheme == SchemeFile && l.Key == "-"
}

func (l Location) String() string {
	if l.Scheme == SchemeFile {
		return l.Key
	}
	return l.Scheme + "://" + l.Bucket + "/" + l.Key
}
