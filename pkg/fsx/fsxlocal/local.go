package fsxlocal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/fsx"
)

// LocalFileSystem stores files below a root directory.
type LocalFileSystem struct {
	root string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

func NewLocalFileSystem(root string) *LocalFileSystem {
	return &LocalFileSystem{root: root}
}

func (l *LocalFileSystem) Join(parts ...string) string {
	return path.Join(parts...)
}

// resolve keeps every path inside root.
func (l *LocalFileSystem) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" || strings.Contains(p, "\x00") {
		return "", fsx.ErrInvalidPath(p)
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fsx.ErrFileNotFound(p)
	}
	if err != nil {
		return nil, errx.Wrap(err, "failed to read file", errx.TypeInternal)
	}
	return data, nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, p string) (bool, error) {
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errx.Wrap(err, "failed to stat file", errx.TypeInternal)
	}
	return true, nil
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	return l.WriteFileStream(ctx, p, bytes.NewReader(data))
}

// WriteFileStream writes through a temp file and renames, so readers never
// see a partial file.
func (l *LocalFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errx.Wrap(err, "failed to create directory", errx.TypeInternal)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".tmp-*")
	if err != nil {
		return errx.Wrap(err, "failed to create temp file", errx.TypeInternal)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return errx.Wrap(err, "failed to write file", errx.TypeInternal)
	}
	if err := tmp.Close(); err != nil {
		return errx.Wrap(err, "failed to write file", errx.TypeInternal)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return errx.Wrap(err, "failed to move file into place", errx.TypeInternal)
	}
	return nil
}

// DeleteFile is a no-op for missing files.
func (l *LocalFileSystem) DeleteFile(ctx context.Context, p string) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errx.Wrap(err, "failed to delete file", errx.TypeInternal)
	}
	return nil
}
