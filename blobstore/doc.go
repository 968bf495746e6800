// Package blobstore abstracts where point files are read from and where
// centroid results are written to.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads through a read-only mmap
//   - MemoryStore: in-process map, for tests
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3, uploads through the transfer manager
//
// A Location names a blob independently of its store:
//
//	loc, err := blobstore.ParseLocation("s3://bucket/points.csv.gz")
//	// loc.Scheme == "s3", loc.Bucket == "bucket", loc.Key == "points.csv.gz"
//
// Blobs are read sequentially with NewReader, which serves mapped blobs
// without copying.
package blobstore
