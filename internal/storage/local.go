package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadStorage stores an uploaded file and returns the URL it is served
// under.
type UploadStorage interface {
	Store(ctx context.Context, filename string, body io.Reader) (string, error)
}

// LocalStorage writes uploads to a local directory under generated unique
// names. Files are served back via the static /uploads mount.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Store saves the file under a uuid-based name keeping the original
// extension, and returns its URL.
func (s *LocalStorage) Store(ctx context.Context, filename string, body io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}
