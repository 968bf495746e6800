// Package minio provides a BlobStore backed by the MinIO client.
//
// It works with MinIO and other S3-compatible servers (Ceph, SeaweedFS,
// Garage) without pulling in the AWS SDK.
//
//	client, err := minioblob.NewClient(minioblob.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "datasets", "")
//	data, err := blobstore.ReadAll(ctx, store, "points.csv")
package minio
