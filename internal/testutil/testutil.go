// Package testutil provides shared test helpers for vocabulary stores,
// vocabulary files and services.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/eotext/internal/translator"
	"github.com/starford/eotext/internal/vocabstore"
)

// TestStore creates a temporary SQLite vocabulary store that is automatically cleaned up.
func TestStore(t *testing.T) *vocabstore.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "eotext-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := vocabstore.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// WriteVocabularyFile writes a vocabulary YAML file listing words and returns its path.
func WriteVocabularyFile(t *testing.T, dir string, words ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("version: 1\nwords:\n")
	for _, w := range words {
		b.WriteString("  - " + w + "\n")
	}
	path := filepath.Join(dir, "vocabulary.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestService creates a service backed by a temporary store.
func TestService(t *testing.T, opts ...translator.Option) *translator.Service {
	t.Helper()
	opts = append([]translator.Option{translator.WithStore(TestStore(t))}, opts...)
	svc, err := translator.NewService(context.Background(), opts...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}
