// Package binding adapts host-language values to the clustering engine.
//
// Hosts hand over points and seed centroids as nested sequences, usually
// decoded from a wire format into []any trees. The binding validates shape
// (rectangular, N and K matching the declared counts) and element types
// (finite numbers only) before anything reaches the engine, and converts the
// resulting centroids back into nested sequences.
//
// # Usage
//
//	resp, err := binding.Fit(ctx, binding.Request{
//	    N: 4, K: 2,
//	    Points:    []any{[]any{0.0, 0.0}, []any{0.0, 2.0}, []any{2.0, 0.0}, []any{2.0, 2.0}},
//	    Centroids: []any{[]any{0.0, 0.0}, []any{0.0, 2.0}},
//	})
//
// Handle runs the same flow on encoded bytes and reports failures inside the
// encoded Response instead of as a Go error.
package binding
