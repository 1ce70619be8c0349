package fsxlocal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileSystem(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	lfs := NewLocalFileSystem(root)

	p := lfs.Join("documents", "alice", "cv.pdf")
	assert.Equal(t, "documents/alice/cv.pdf", p)

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, lfs.WriteFile(ctx, p, []byte("hello")))
		data, err := lfs.ReadFile(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))

		ok, err := lfs.Exists(ctx, p)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("stream overwrites", func(t *testing.T) {
		require.NoError(t, lfs.WriteFileStream(ctx, p, strings.NewReader("v2")))
		data, err := lfs.ReadFile(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "v2", string(data))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, lfs.DeleteFile(ctx, p))
		require.NoError(t, lfs.DeleteFile(ctx, p))

		ok, err := lfs.Exists(ctx, p)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = lfs.ReadFile(ctx, p)
		assert.True(t, errx.IsCode(err, fsx.CodeFileNotFound))
	})

	t.Run("paths stay under root", func(t *testing.T) {
		require.NoError(t, lfs.WriteFile(ctx, "../../escape.txt", []byte("x")))
		_, err := os.Stat(filepath.Join(root, "escape.txt"))
		assert.NoError(t, err)

		err = lfs.WriteFile(ctx, "/", []byte("x"))
		assert.True(t, errx.IsCode(err, fsx.CodeInvalidPath))
	})
}
