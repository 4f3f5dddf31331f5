package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates the target path with the provided content, creating
// parent directories as needed.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteWatchFile drops a file with the given name into the config's watch
// directory and returns its path.
func WriteWatchFile(t testing.TB, watchDir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(watchDir, name)
	WriteFile(t, path, content)
	return path
}
