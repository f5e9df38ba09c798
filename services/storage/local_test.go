package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080")
	if err != nil {
		t.Fatal(err)
	}

	url, err := store.Save(context.Background(), "universities", "logo.png",
		strings.NewReader("fake image bytes"), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if url != "http://localhost:8080/uploads/universities/logo.png" {
		t.Errorf("unexpected URL %s", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "universities", "logo.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("file content mismatch: %q", data)
	}

	if err := store.Delete(context.Background(), url); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "universities", "logo.png")); !os.IsNotExist(err) {
		t.Error("file should be gone after delete")
	}
}

func TestLocalStoreDeleteRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(context.Background(), "http://localhost:8080/uploads/../secrets"); err == nil {
		t.Error("path traversal should be rejected")
	}
	if err := store.Delete(context.Background(), "http://elsewhere/file.png"); err == nil {
		t.Error("non-uploads URL should be rejected")
	}
}

func TestObjectName(t *testing.T) {
	name := ObjectName("brochure.PDF")
	if !strings.HasSuffix(name, ".PDF") {
		t.Errorf("extension should be kept, got %s", name)
	}
	if name == ObjectName("brochure.PDF") {
		t.Error("object names should not collide")
	}
}
