package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/kmeans/blobstore"
	"github.com/hupe1980/kmeans/internal/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = "0,0\n0,2\n2,0\n2,2\n"

const squareCentroids = "1.0000,0.0000\n1.0000,2.0000\n"

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRun_Square(t *testing.T) {
	code, out, _ := runCLI(t, square, "2", "10")
	assert.Equal(t, 0, code)
	assert.Equal(t, squareCentroids, out)
}

func TestRun_DefaultIterations(t *testing.T) {
	code, out, _ := runCLI(t, square, "2")
	assert.Equal(t, 0, code)
	assert.Equal(t, squareCentroids, out)
}

func TestRun_NumericPrefixArgs(t *testing.T) {
	code, out, _ := runCLI(t, square, "2abc", "10x")
	assert.Equal(t, 0, code)
	assert.Equal(t, squareCentroids, out)
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"3abc", 3},
		{" 42", 42},
		{"+7", 7},
		{"-5", -5},
		{"two", 0},
		{"", 0},
		{"+", 0},
		{"99999999999999999999999", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, leadingInt(tt.in), tt.in)
	}
}

func TestRun_Diagnostics(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"KOne", square, []string{"1"}, msgClusters},
		{"KNotInteger", square, []string{"two"}, msgClusters},
		{"KEqualsN", square, []string{"4"}, msgClusters},
		{"KAboveN", square, []string{"9", "10"}, msgClusters},
		{"IterationsOne", square, []string{"2", "1"}, msgIterations},
		{"IterationsLimit", square, []string{"2", "1000"}, msgIterations},
		{"IterationsNotInteger", square, []string{"2", "ten"}, msgIterations},
		{"NoArgs", square, nil, msgGeneric},
		{"TooManyArgs", square, []string{"2", "10", "extra"}, msgGeneric},
		{"UnknownFlag", square, []string{"--nope", "2"}, msgGeneric},
		{"NonNumeric", "0,0\n0,x\n2,0\n", []string{"2"}, msgGeneric},
		{"RaggedInput", "0,0\n0,2,1\n2,0\n", []string{"2"}, msgGeneric},
		{"EmptyInput", "", []string{"2"}, msgGeneric},
		{"MissingFile", "", []string{"--input", "/does/not/exist.csv", "2"}, msgGeneric},
		{"BadScheme", "", []string{"--input", "ftp://host/p.csv", "2"}, msgGeneric},
		{"BothStdin", square, []string{"--join", "-", "2"}, msgGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, 1, code)
			assert.Equal(t, tt.want+"\n", out, "only the diagnostic line may be printed")
		})
	}
}

func TestRun_FileInputAndOutput(t *testing.T) {
	in := writeFile(t, "points.csv", []byte(square))
	out := filepath.Join(t.TempDir(), "centroids.csv.gz")

	code, stdout, _ := runCLI(t, "", "--input", in, "--output", out, "2")
	require.Equal(t, 0, code)
	assert.Empty(t, stdout)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	r, typ, err := compress.NewReader(f)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, compress.Gzip, typ)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, squareCentroids, string(data))
}

func TestRun_CompressedInput(t *testing.T) {
	var buf bytes.Buffer
	w, err := compress.NewWriter(&buf, compress.Zstd)
	require.NoError(t, err)
	_, err = w.Write([]byte(square))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	code, out, _ := runCLI(t, buf.String(), "2", "10")
	assert.Equal(t, 0, code)
	assert.Equal(t, squareCentroids, out)
}

func TestRun_Join(t *testing.T) {
	// Keys are out of order and one key exists only on the left.
	left := writeFile(t, "left.csv", []byte("3,2\n1,0\n4,2\n2,0\n9,5\n"))
	right := writeFile(t, "right.csv", []byte("2,2\n4,2\n1,0\n3,0\n"))

	code, out, _ := runCLI(t, "", "--input", left, "--join", right, "2", "10")
	require.Equal(t, 0, code)
	// Joined and sorted: (0,0) (0,2) (2,0) (2,2).
	assert.Equal(t, squareCentroids, out)
}

func TestRun_JoinWithStdin(t *testing.T) {
	right := writeFile(t, "right.csv", []byte("2,2\n4,2\n1,0\n3,0\n"))

	code, out, _ := runCLI(t, "3,2\n1,0\n4,2\n2,0\n", "--join", right, "2", "10")
	require.Equal(t, 0, code)
	assert.Equal(t, squareCentroids, out)
}

func TestRun_ObjectStore(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, "data/points.csv", []byte(square)))

	var resolved []string
	c := &cli{
		stdin:  strings.NewReader(""),
		stdout: io.Discard,
		stderr: io.Discard,
		resolve: func(_ context.Context, loc blobstore.Location) (blobstore.BlobStore, string, error) {
			resolved = append(resolved, loc.Scheme)
			return mem, loc.Bucket + "/" + loc.Key, nil
		},
	}

	code := c.run(ctx, []string{"--input", "s3://data/points.csv", "--output", "minio://results/out.csv", "2", "10"})
	require.Equal(t, 0, code)
	assert.Equal(t, []string{"s3", "minio"}, resolved)

	got, err := blobstore.ReadAll(ctx, mem, "results/out.csv")
	require.NoError(t, err)
	assert.Equal(t, squareCentroids, string(got))
}

func TestRun_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kmeans.prom")

	code, out, _ := runCLI(t, square, "--metrics-file", path, "2", "10")
	require.Equal(t, 0, code)
	assert.Equal(t, squareCentroids, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `kmeans_fits_total{status="ok"} 1`)
	assert.Contains(t, string(data), "kmeans_iterations_total 2")
}

func TestRun_Logging(t *testing.T) {
	code, out, stderr := runCLI(t, square, "--log-level", "debug", "--log-format", "json", "2", "10")
	require.Equal(t, 0, code)
	assert.Equal(t, squareCentroids, out)
	assert.Contains(t, stderr, `"msg":"fit completed"`)
	assert.Contains(t, stderr, `"msg":"iteration completed"`)

	code, _, stderr = runCLI(t, "0,x\n", "2")
	require.Equal(t, 1, code)
	assert.Contains(t, stderr, "run failed")
}

func TestRun_Help(t *testing.T) {
	code, out, _ := runCLI(t, "", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "K [iterations]")
	assert.Contains(t, out, "--input")
}

func TestDiagnostic(t *testing.T) {
	assert.Equal(t, msgGeneric, diagnostic(io.EOF))
	assert.Equal(t, msgClusters, diagnostic(&usageError{msg: msgClusters}))
}
