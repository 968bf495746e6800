// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	data, err := blobstore.ReadAll(ctx, store, "points.csv.zst")
//
// Reads issue ranged GetObject requests; Put goes through the transfer
// manager, which switches to multipart uploads for large results.
package s3
