package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-labs/daybook/internal/core/domain"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	return New(t.TempDir())
}

func TestWriteAndRead(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Write(ctx, "Daily/2026-03-01.md", "# Entry\n"))

	contents, err := v.Read(ctx, "Daily/2026-03-01.md")
	require.NoError(t, err)
	assert.Equal(t, "# Entry\n", contents)
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Write(ctx, "Journal/2026/march.md", "x"))

	exists, err := v.Exists(ctx, "Journal/2026/march.md")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReadMissingFile(t *testing.T) {
	v := newTestVault(t)

	_, err := v.Read(context.Background(), "nope.md")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFiltersByExtension(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Write(ctx, "Daily/a.md", "a"))
	require.NoError(t, v.Write(ctx, "Daily/sub/b.md", "b"))
	require.NoError(t, v.Write(ctx, "Daily/c.txt", "c"))
	require.NoError(t, v.Write(ctx, "Other/d.md", "d"))

	files, err := v.List(ctx, "Daily", ".md")
	require.NoError(t, err)

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	assert.ElementsMatch(t, []string{"Daily/a.md", "Daily/sub/b.md"}, paths)
}

func TestListMissingFolder(t *testing.T) {
	v := newTestVault(t)

	_, err := v.List(context.Background(), "absent", ".md")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Write(ctx, "Daily/a.md", "a"))
	require.NoError(t, v.Delete(ctx, "Daily/a.md"))

	exists, err := v.Exists(ctx, "Daily/a.md")
	require.NoError(t, err)
	assert.False(t, exists)

	require.ErrorIs(t, v.Delete(ctx, "Daily/a.md"), domain.ErrNotFound)
}

func TestMkdirAll(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.MkdirAll(ctx, "Journal/2026"))
	require.NoError(t, v.MkdirAll(ctx, "Journal/2026"))

	info, err := os.Stat(filepath.Join(v.Root(), "Journal", "2026"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPathEscapeRejected(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	tests := []string{"../outside.md", "a/../../outside.md", "/etc/passwd"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := v.Read(ctx, path)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
