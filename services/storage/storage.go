// Package storage abstracts where uploaded files live: local disk exposed
// under /uploads, or an S3-compatible object store.
package storage

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
)

// Store saves uploaded files and deletes replaced ones.
type Store interface {
	// Save writes the file under the given folder and returns its public URL.
	Save(ctx context.Context, folder, filename string, data io.Reader, contentType string) (string, error)
	// Delete removes the file a previously returned URL points at.
	Delete(ctx context.Context, fileURL string) error
}

// ObjectName builds a collision-free stored name keeping the original
// extension.
func ObjectName(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}

// SaveUpload stores a multipart file and returns its public URL.
func SaveUpload(ctx context.Context, store Store, folder string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	return store.Save(ctx, folder, ObjectName(file.Filename), src, contentType)
}

// DeleteQuietly removes a replaced file best-effort. Deletion failures are
// logged, never propagated as request failures.
func DeleteQuietly(ctx context.Context, store Store, fileURL string) {
	if fileURL == "" {
		return
	}
	if err := store.Delete(ctx, fileURL); err != nil {
		log.Printf("storage: failed to delete replaced file %s: %v", fileURL, err)
	}
}
