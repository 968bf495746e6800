// Package model defines the data model shared by the clustering engine.
//
// # Types
//
//   - Vector: a fixed-length, contiguous sequence of float64 coordinates
//   - PointSet: the immutable input points (N vectors of dimension D)
//   - CentroidSet: the K mutable centroids (dimension D), updated in place
//   - Assignment: the point index -> cluster index mapping
//
// All vectors of a run share the same dimension. Constructors reject
// inconsistent input with a *DimensionMismatchError.
package model
