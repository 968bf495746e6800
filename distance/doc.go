// Package distance provides the Euclidean distance used by the clustering engine.
//
// Both operands must have the same dimension. A mismatch is reported as a
// *model.DimensionMismatchError rather than tolerated.
//
// # Usage
//
//	d, err := distance.Euclidean(a, b)
//	sq, err := distance.SquaredEuclidean(a, b)
package distance
