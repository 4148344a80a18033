package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content, creating parent
// directories as needed. Fails the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteELF creates a file that starts with the ELF magic, standing in
// for a dynamically linked artifact in tests.
func WriteELF(t *testing.T, path string) {
	t.Helper()

	WriteFile(t, path, "\x7fELF\x02\x01\x01\x00padding")
}

// MakeTree creates a distribution-shaped directory tree rooted at a
// temp dir and returns the root.
func MakeTree(t *testing.T, dirs ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	return root
}
