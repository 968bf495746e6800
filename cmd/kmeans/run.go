package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/blobstore"
	"github.com/hupe1980/kmeans/internal/compress"
	"github.com/hupe1980/kmeans/internal/pointio"
	"github.com/hupe1980/kmeans/metric"
	flags "github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Diagnostics printed on stdout before a non-zero exit.
const (
	msgClusters   = "Invalid number of clusters!"
	msgIterations = "Invalid maximum iteration!"
	msgGeneric    = "An Error Has Occurred"
)

// epsilon is fixed for the command line; library callers choose their own.
const epsilon = 0.001

// maxIterationsLimit is the exclusive upper bound for the iterations argument.
const maxIterationsLimit = 1000

// usageError carries the diagnostic line a failure is reported with.
type usageError struct {
	msg string
	err error
}

func (e *usageError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *usageError) Unwrap() error { return e.err }

func diagnostic(err error) string {
	var ue *usageError
	if errors.As(err, &ue) {
		return ue.msg
	}
	return msgGeneric
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// resolve maps a location to a store and a blob name; nil selects the
	// resolver built from the parsed options.
	resolve resolveFunc
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	return c.run(ctx, args)
}

func (c *cli) run(ctx context.Context, args []string) int {
	var opts options

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] K [iterations]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			fmt.Fprintln(c.stdout, fe.Message)
			return 0
		}
		fmt.Fprintln(c.stderr, err)
		fmt.Fprintln(c.stdout, msgGeneric)
		return 1
	}

	logger := newLogger(c.stderr, opts.LogFormat, opts.level())

	if len(rest) > 0 {
		logger.Error("unexpected arguments", "args", rest)
		fmt.Fprintln(c.stdout, msgGeneric)
		return 1
	}

	if err := c.execute(ctx, &opts, logger); err != nil {
		logger.Error("run failed", "error", err)
		fmt.Fprintln(c.stdout, diagnostic(err))
		return 1
	}
	return 0
}

func newLogger(w io.Writer, format string, level slog.Level) *kmeans.Logger {
	ho := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return kmeans.NewLogger(slog.NewJSONHandler(w, ho))
	}
	return kmeans.NewLogger(slog.NewTextHandler(w, ho))
}

// parseArgs validates the positional arguments.
func parseArgs(opts *options) (k, iterations int, err error) {
	k = leadingInt(opts.Args.K)
	if k <= 1 {
		return 0, 0, &usageError{msg: msgClusters, err: fmt.Errorf("k %q", opts.Args.K)}
	}

	iterations = kmeans.DefaultMaxIterations
	if opts.Args.Iterations != "" {
		iterations = leadingInt(opts.Args.Iterations)
		if iterations <= 1 || iterations >= maxIterationsLimit {
			return 0, 0, &usageError{msg: msgIterations, err: fmt.Errorf("iterations %q", opts.Args.Iterations)}
		}
	}

	return k, iterations, nil
}

// leadingInt parses the optionally signed decimal prefix of s after
// leading white space and ignores the rest, so "3abc" is 3. A missing or
// overflowing prefix yields 0, which every range check rejects.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func (c *cli) execute(ctx context.Context, opts *options, logger *kmeans.Logger) error {
	k, iterations, err := parseArgs(opts)
	if err != nil {
		return err
	}

	resolve := c.resolve
	if resolve == nil {
		resolve = newResolver(opts).resolve
	}

	points, err := c.loadPoints(ctx, opts, resolve)
	if err != nil {
		return err
	}

	if k >= len(points) {
		return &usageError{msg: msgClusters, err: fmt.Errorf("k=%d with %d points", k, len(points))}
	}

	fitOpts := []kmeans.Option{
		kmeans.WithMaxIterations(iterations),
		kmeans.WithEpsilon(epsilon),
		kmeans.WithLogger(logger),
	}

	var reg *prometheus.Registry
	if opts.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		fitOpts = append(fitOpts, kmeans.WithMetricsCollector(metric.NewPrometheusCollector(reg, "")))
	}

	res, fitErr := kmeans.Fit(ctx, points, points[:k], fitOpts...)

	// Metrics are written for failed runs too.
	if reg != nil {
		if err := metric.WriteTextfile(reg, opts.MetricsFile); err != nil {
			logger.Warn("write metrics", "path", opts.MetricsFile, "error", err)
		}
	}

	if fitErr != nil {
		return fitErr
	}

	var buf bytes.Buffer
	if err := pointio.Format(&buf, res.Centroids); err != nil {
		return err
	}

	return c.writeOutput(ctx, opts.Output, buf.Bytes(), resolve)
}

// loadPoints reads --input and, if given, --join concurrently and returns
// the joined table.
func (c *cli) loadPoints(ctx context.Context, opts *options, resolve resolveFunc) ([][]float64, error) {
	if opts.Join == "" {
		return c.readPoints(ctx, opts.Input, resolve)
	}

	if opts.Input == "-" && opts.Join == "-" {
		return nil, errors.New("stdin can be used for only one of --input and --join")
	}

	var left, right [][]float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		left, err = c.readPoints(gctx, opts.Input, resolve)
		return err
	})
	g.Go(func() error {
		var err error
		right, err = c.readPoints(gctx, opts.Join, resolve)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pointio.Join(left, right)
}

func (c *cli) readPoints(ctx context.Context, location string, resolve resolveFunc) ([][]float64, error) {
	loc, err := blobstore.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	var src io.Reader

	if loc.IsStdio() {
		src = c.stdin
	} else {
		store, name, err := resolve(ctx, loc)
		if err != nil {
			return nil, err
		}
		blob, err := store.Open(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", loc, err)
		}
		defer blob.Close()

		src = blobstore.NewReader(ctx, blob)
	}

	r, _, err := compress.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", loc, err)
	}
	defer r.Close()

	points, err := pointio.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", loc, err)
	}
	return points, nil
}

func (c *cli) writeOutput(ctx context.Context, location string, data []byte, resolve resolveFunc) error {
	loc, err := blobstore.ParseLocation(location)
	if err != nil {
		return err
	}

	if loc.IsStdio() {
		_, err := c.stdout.Write(data)
		return err
	}

	var buf bytes.Buffer

	w, err := compress.NewWriter(&buf, compress.FromName(loc.Key))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	store, name, err := resolve(ctx, loc)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", loc, err)
	}
	return nil
}
