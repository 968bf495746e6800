package binding

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/codec"
)

const (
	// MinClusters is the smallest accepted K.
	MinClusters = 2

	// MaxIterationsLimit is the exclusive upper bound on max_iterations.
	MaxIterationsLimit = 1000
)

// Request is one fit call as issued by a host.
//
// MaxIterations and Epsilon are optional; nil selects the library defaults.
type Request struct {
	N             int      `json:"n" msgpack:"n"`
	K             int      `json:"k" msgpack:"k"`
	MaxIterations *int     `json:"max_iterations,omitempty" msgpack:"max_iterations,omitempty"`
	Epsilon       *float64 `json:"epsilon,omitempty" msgpack:"epsilon,omitempty"`
	Points        any      `json:"points" msgpack:"points"`
	Centroids     any      `json:"centroids" msgpack:"centroids"`
}

// Response carries the final centroids, or an error description when the
// fit failed.
type Response struct {
	Centroids [][]float64 `json:"centroids" msgpack:"centroids"`
	Error     string      `json:"error,omitempty" msgpack:"error,omitempty"`
	Kind      ErrorKind   `json:"kind,omitempty" msgpack:"kind,omitempty"`
}

// ErrorKind classifies a failure for hosts that cannot inspect Go errors.
type ErrorKind string

const (
	KindConfiguration     ErrorKind = "configuration"
	KindInputFormat       ErrorKind = "input_format"
	KindDimensionMismatch ErrorKind = "dimension_mismatch"
	KindAllocation        ErrorKind = "allocation"
	KindInternal          ErrorKind = "internal"
)

// Classify maps err onto an ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, kmeans.ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, kmeans.ErrInputFormat), errors.Is(err, kmeans.ErrEmptyPointSet):
		return KindInputFormat
	case errors.Is(err, kmeans.ErrDimensionMismatch):
		return KindDimensionMismatch
	case errors.Is(err, kmeans.ErrAllocation):
		return KindAllocation
	default:
		return KindInternal
	}
}

// Validate checks req and returns its points and centroids as rows.
func Validate(req Request) (points, centroids [][]float64, err error) {
	if req.K < MinClusters {
		return nil, nil, &kmeans.ConfigurationError{Field: "k", Value: req.K, Reason: fmt.Sprintf("must be at least %d", MinClusters)}
	}
	if req.MaxIterations != nil {
		if it := *req.MaxIterations; it <= 1 || it >= MaxIterationsLimit {
			return nil, nil, &kmeans.ConfigurationError{Field: "max_iterations", Value: it, Reason: fmt.Sprintf("must be in (1, %d)", MaxIterationsLimit)}
		}
	}
	if req.Epsilon != nil && !(*req.Epsilon >= 0) {
		return nil, nil, &kmeans.ConfigurationError{Field: "epsilon", Value: *req.Epsilon, Reason: "must be a non-negative number"}
	}

	points, err = FromNested(req.Points, "points")
	if err != nil {
		return nil, nil, err
	}
	centroids, err = FromNested(req.Centroids, "centroids")
	if err != nil {
		return nil, nil, err
	}

	if len(points) != req.N {
		return nil, nil, &kmeans.ConfigurationError{Field: "n", Value: req.N, Reason: fmt.Sprintf("got %d points", len(points))}
	}
	if len(centroids) != req.K {
		return nil, nil, &kmeans.ConfigurationError{Field: "k", Value: req.K, Reason: fmt.Sprintf("got %d centroids", len(centroids))}
	}
	if req.K >= req.N {
		return nil, nil, &kmeans.ConfigurationError{Field: "k", Value: req.K, Reason: fmt.Sprintf("must be less than n=%d", req.N)}
	}
	if len(points[0]) != len(centroids[0]) {
		return nil, nil, &kmeans.DimensionMismatchError{Expected: len(points[0]), Actual: len(centroids[0]), Index: -1}
	}

	return points, centroids, nil
}

// Fit validates req and runs the clustering.
// optFns are applied before the request's own parameters.
func Fit(ctx context.Context, req Request, optFns ...kmeans.Option) (Response, error) {
	points, centroids, err := Validate(req)
	if err != nil {
		return Response{}, err
	}

	opts := append([]kmeans.Option{}, optFns...)
	if req.MaxIterations != nil {
		opts = append(opts, kmeans.WithMaxIterations(*req.MaxIterations))
	}
	if req.Epsilon != nil {
		opts = append(opts, kmeans.WithEpsilon(*req.Epsilon))
	}

	out, err := kmeans.FitCentroids(ctx, points, centroids, opts...)
	if err != nil {
		return Response{}, err
	}
	return Response{Centroids: out}, nil
}

// Handle decodes a Request with c, runs Fit and encodes the Response.
//
// Failures of the fit are reported in Response.Error and Response.Kind;
// the returned error is non-nil only if the response cannot be encoded.
func Handle(ctx context.Context, c codec.Codec, data []byte, optFns ...kmeans.Option) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}

	var (
		resp Response
		req  Request
	)

	if err := c.Unmarshal(data, &req); err != nil {
		err = kmeans.NewInputFormatError(0, 0, "decode "+c.Name()+" request", err)
		resp = Response{Error: err.Error(), Kind: Classify(err)}
	} else if out, err := Fit(ctx, req, optFns...); err != nil {
		resp = Response{Error: err.Error(), Kind: Classify(err)}
	} else {
		resp = out
	}

	return c.Marshal(resp)
}
