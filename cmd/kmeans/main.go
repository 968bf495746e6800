// Command kmeans clusters points read from stdin, a file or an object store
// and prints the final centroids.
//
// Usage:
//
//	kmeans [OPTIONS] K [iterations] < points.csv
//
// Points are one per line with comma-separated coordinates. The first K
// points seed the centroids. Centroids are printed one per line with four
// decimal digits.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
