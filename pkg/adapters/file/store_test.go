package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stevie1mat/flowdsl/pkg/adapters/file"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stevie1mat/flowdsl/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunWorkflowStoreContract(t, store)
}

func TestFileStore_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, &domain.Definition{ID: "wf", Name: "again"}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wf.json", entries[0].Name())
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crash-123.tmp"), []byte("{"), 0644))
	require.NoError(t, store.Save(ctx, &domain.Definition{ID: "b"}))
	require.NoError(t, store.Save(ctx, &domain.Definition{ID: "a"}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "a/b", `a\b`} {
		err := store.Save(ctx, &domain.Definition{ID: id})
		assert.ErrorIs(t, err, file.ErrInvalidID, "id %q", id)
	}
}
