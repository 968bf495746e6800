package main

import (
	"log/slog"
	"strings"
)

type options struct {
	Input  string `short:"i" long:"input" default:"-" description:"points to cluster: '-' for stdin, a path, s3://bucket/key or minio://bucket/key"`
	Join   string `short:"j" long:"join" description:"second point table, inner-joined with --input on the first column"`
	Output string `short:"o" long:"output" default:"-" description:"where to write centroids: '-' for stdout, a path or a bucket URL"`

	MinioEndpoint  string `long:"minio-endpoint" env:"MINIO_ENDPOINT" description:"MinIO server host:port"`
	MinioAccessKey string `long:"minio-access-key" env:"MINIO_ACCESS_KEY" description:"MinIO access key"`
	MinioSecretKey string `long:"minio-secret-key" env:"MINIO_SECRET_KEY" description:"MinIO secret key"`
	MinioSecure    bool   `long:"minio-secure" description:"use TLS for MinIO"`

	S3Region   string `long:"s3-region" env:"AWS_REGION" description:"AWS region for s3:// locations"`
	S3Endpoint string `long:"s3-endpoint" env:"S3_ENDPOINT" description:"custom S3 endpoint, path-style addressing"`

	MetricsFile string `long:"metrics-file" description:"write Prometheus metrics of the run to this file"`

	LogLevel  string `long:"log-level" default:"error" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"log level"`
	LogFormat string `long:"log-format" default:"text" choice:"text" choice:"json" description:"log format"`

	Args struct {
		K          string `positional-arg-name:"K" required:"yes" description:"number of clusters"`
		Iterations string `positional-arg-name:"iterations" description:"maximum number of iterations (default 200)"`
	} `positional-args:"yes"`
}

func (o *options) level() slog.Level {
	switch strings.ToLower(o.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
