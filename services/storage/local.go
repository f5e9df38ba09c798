package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploads on local disk under basePath, served back as
// {baseURL}/uploads/<folder>/<filename>.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates a local disk store rooted at basePath.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the file to disk and returns its public URL.
func (s *LocalStore) Save(ctx context.Context, folder, filename string, data io.Reader, contentType string) (string, error) {
	dir := filepath.Join(s.basePath, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, filename), nil
}

// Delete removes the file the URL points at.
func (s *LocalStore) Delete(ctx context.Context, fileURL string) error {
	idx := strings.Index(fileURL, "/uploads/")
	if idx < 0 {
		return fmt.Errorf("not an uploads URL: %s", fileURL)
	}
	rel := fileURL[idx+len("/uploads/"):]
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid upload path: %s", fileURL)
	}
	return os.Remove(filepath.Join(s.basePath, filepath.FromSlash(rel)))
}
