package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorageStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	url, err := s.Store(context.Background(), "report.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	require.True(t, strings.HasSuffix(url, ".pdf"))

	name := strings.TrimPrefix(url, "/uploads/")
	require.NotEqual(t, "report.pdf", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, "content", string(data))
}

func TestLocalStorageUniqueNames(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	first, err := s.Store(context.Background(), "a.txt", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := s.Store(context.Background(), "a.txt", strings.NewReader("two"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestLocalStorageCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
