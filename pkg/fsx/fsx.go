// Package fsx abstracts blob storage so documents and snapshots can live on
// local disk or in S3.
package fsx

import (
	"context"
	"io"
)

type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
}

type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

type FileSystem interface {
	FileReader
	FileWriter

	// Join builds a storage path from slash separated parts.
	Join(parts ...string) string
}
