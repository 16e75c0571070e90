package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("unexpected error creating storage: %v", err)
	}

	key, err := store.Save(context.Background(), []byte("payload"), SaveOptions{Category: "Avatars", Extension: "PNG"})
	if err != nil {
		t.Fatalf("unexpected error saving file: %v", err)
	}
	if !strings.HasPrefix(key, "avatars/") {
		t.Fatalf("expected key under avatars/, got %s", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("expected .png suffix, got %s", key)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("unexpected error reading saved file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("expected payload, got %s", string(data))
	}
}

func TestLocalStorageSaveRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating storage: %v", err)
	}
	if _, err := store.Save(context.Background(), nil, SaveOptions{Category: "avatars"}); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestBuildObjectPathSanitizesSegments(t *testing.T) {
	key := buildObjectPath("My Photos!", "head shot", "JPG")
	if !strings.HasPrefix(key, "myphotos/") {
		t.Fatalf("expected sanitized category prefix, got %s", key)
	}
	if !strings.HasSuffix(key, "head-shot.jpg") {
		t.Fatalf("expected sanitized file name, got %s", key)
	}
}

func TestJoinPrefix(t *testing.T) {
	if got := joinPrefix(" /uploads/ ", "/avatars/a.png"); got != "uploads/avatars/a.png" {
		t.Fatalf("unexpected joined key: %s", got)
	}
	if got := joinPrefix("", "avatars/a.png"); got != "avatars/a.png" {
		t.Fatalf("unexpected joined key without prefix: %s", got)
	}
}
