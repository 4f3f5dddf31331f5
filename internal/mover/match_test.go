package mover

import (
	"os"
	"path/filepath"
	"testing"

	"curator/internal/config"
)

func matcherConfig(enabled bool, threshold float64, excluded ...string) config.Matcher {
	return config.Matcher{
		Enabled:             enabled,
		SimilarityThreshold: threshold,
		ExcludedFolders:     excluded,
	}
}

func makeDirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMatchPicksSimilarFolder(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "Tax Documents", "Recipes")

	m := NewMatcher(matcherConfig(true, 0.5))
	got := m.Match(root, "tax-documents-2025.pdf")
	if want := filepath.Join(root, "Tax Documents"); got != want {
		t.Fatalf("Match = %q, want %q", got, want)
	}
}

func TestMatchBelowThresholdUsesRoot(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "Recipes")

	m := NewMatcher(matcherConfig(true, 0.5))
	if got := m.Match(root, "quarterly-report.pdf"); got != root {
		t.Fatalf("Match = %q, want root", got)
	}
}

func TestMatchDisabled(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "Quarterly Report")

	m := NewMatcher(matcherConfig(false, 0.5))
	if got := m.Match(root, "quarterly report.pdf"); got != root {
		t.Fatalf("Match = %q, want root when disabled", got)
	}
}

func TestMatchExcludedFolders(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "Screenshots")

	m := NewMatcher(matcherConfig(true, 0.5, "screenshots"))
	if got := m.Match(root, "screenshots batch.png"); got != root {
		t.Fatalf("Match = %q, want root for excluded folder", got)
	}
}

func TestMatchSkipsHiddenAndFiles(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, ".git")
	if err := os.WriteFile(filepath.Join(root, "git notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewMatcher(matcherConfig(true, 0.1))
	if got := m.Match(root, "git notes.txt"); got != root {
		t.Fatalf("Match = %q, want root", got)
	}
}

func TestMatchBestOfSeveral(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "Project Alpha", "Project Alpha Reports")

	m := NewMatcher(matcherConfig(true, 0.5))
	got := m.Match(root, "project alpha reports summary.pdf")
	if want := filepath.Join(root, "Project Alpha Reports"); got != want {
		t.Fatalf("Match = %q, want %q", got, want)
	}
}

func TestMatchMissingRoot(t *testing.T) {
	m := NewMatcher(matcherConfig(true, 0.5))
	root := filepath.Join(t.TempDir(), "absent")
	if got := m.Match(root, "anything.txt"); got != root {
		t.Fatalf("Match = %q, want root passthrough", got)
	}
}

func TestSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"tax documents", "tax documents", 1},
		{"tax documents 2025", "tax documents", 0.8},
		{"recipes", "invoices", 0},
	}
	for _, tc := range cases {
		got := similarity(tokenize(tc.a), tokenize(tc.b))
		if got != tc.want {
			t.Errorf("similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
