package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/kmeans/blobstore"
	minioblob "github.com/hupe1980/kmeans/blobstore/minio"
	s3blob "github.com/hupe1980/kmeans/blobstore/s3"
	"github.com/minio/minio-go/v7"
)

// resolveFunc returns the store holding loc and the blob name within it.
type resolveFunc func(ctx context.Context, loc blobstore.Location) (blobstore.BlobStore, string, error)

// resolver builds object store clients on first use and shares them
// between the input, join and output locations.
type resolver struct {
	opts  *options
	local *blobstore.LocalStore

	mu          sync.Mutex
	minioClient *minio.Client
	s3Stores    map[string]*s3blob.Store
}

func newResolver(opts *options) *resolver {
	return &resolver{
		opts:     opts,
		local:    blobstore.NewLocalStore(""),
		s3Stores: make(map[string]*s3blob.Store),
	}
}

func (r *resolver) resolve(ctx context.Context, loc blobstore.Location) (blobstore.BlobStore, string, error) {
	switch loc.Scheme {
	case blobstore.SchemeFile:
		return r.local, loc.Key, nil
	case blobstore.SchemeMinio:
		client, err := r.minio()
		if err != nil {
			return nil, "", err
		}
		return minioblob.NewStore(client, loc.Bucket, ""), loc.Key, nil
	case blobstore.SchemeS3:
		store, err := r.s3(ctx, loc.Bucket)
		if err != nil {
			return nil, "", err
		}
		return store, loc.Key, nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported scheme %q", blobstore.ErrInvalidLocation, loc.Scheme)
	}
}

func (r *resolver) minio() (*minio.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.minioClient != nil {
		return r.minioClient, nil
	}

	client, err := minioblob.NewClient(minioblob.Config{
		Endpoint:  r.opts.MinioEndpoint,
		AccessKey: r.opts.MinioAccessKey,
		SecretKey: r.opts.MinioSecretKey,
		Secure:    r.opts.MinioSecure,
	})
	if err != nil {
		return nil, err
	}

	r.minioClient = client
	return client, nil
}

func (r *resolver) s3(ctx context.Context, bucket string) (*s3blob.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.s3Stores[bucket]; ok {
		return s, nil
	}

	var storeOpts []s3blob.Option
	if r.opts.S3Region != "" {
		storeOpts = append(storeOpts, s3blob.WithRegion(r.opts.S3Region))
	}
	if r.opts.S3Endpoint != "" {
		storeOpts = append(storeOpts, s3blob.WithEndpoint(r.opts.S3Endpoint))
	}

	s, err := s3blob.New(ctx, bucket, storeOpts...)
	if err != nil {
		return nil, err
	}

	r.s3Stores[bucket] = s
	return s, nil
}
