package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	root := t.TempDir()
	storage, err := NewLocalStorage(root)
	require.NoError(t, err)

	full, err := storage.Save(context.Background(), "tests/e2e/test_login.spec.ts", "test('x', () => {});")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "tests", "e2e", "test_login.spec.ts"), full)

	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "test('x', () => {});", string(data))

	resolved, err := storage.Resolve("tests/e2e/test_login.spec.ts")
	require.NoError(t, err)
	assert.Equal(t, full, resolved)
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save(context.Background(), "a.txt", "first")
	require.NoError(t, err)
	_, err = storage.Save(context.Background(), "a.txt", "second")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(storage.Root(), "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestLocalStorage_RejectsInvalidPaths(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"absolute", "/etc/passwd"},
		{"parent", "../outside.txt"},
		{"nested traversal", "a/../../outside.txt"},
		{"root itself", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.Save(context.Background(), tt.path, "x")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPath), "got %v", err)
		})
	}
}

func TestLocalStorage_InnerDotDotStaysInside(t *testing.T) {
	root := t.TempDir()
	storage, err := NewLocalStorage(root)
	require.NoError(t, err)

	full, err := storage.Save(context.Background(), "a/../b.txt", "ok")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "b.txt"), full)
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = storage.Save(ctx, "a.txt", "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalStorage_DefaultsToWorkingDir(t *testing.T) {
	storage, err := NewLocalStorage("")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, storage.Root())
}
