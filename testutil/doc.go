// Package testutil provides testing utilities for the kmeans module.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for point sets and a brute-force
// nearest-centroid helper used as ground truth.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformVectors(100, 8)             // uniform [0, 1)
//	points := rng.ClusteredVectors(100, 8, 4, 0.05)  // gaussian blobs
//
// # Ground Truth
//
//	idx := testutil.BruteForceNearest(centroids, point)
package testutil
