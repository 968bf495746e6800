// Package kmeans implements the Lloyd iteration behind the public Fit API.
//
// A Clusterer borrows a read-only PointSet and exclusively owns a
// CentroidSet and an Assignment for the duration of one run. Each iteration
// rebuilds the Assignment from the current centroids, then moves every
// centroid to the mean of its members. The run stops once the largest
// centroid movement of an iteration is at most epsilon, or after
// MaxIterations iterations.
package kmeans
