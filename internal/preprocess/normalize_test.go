package preprocess

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "report.pdf", "report.pdf"},
		{"trailing spaces", "report.pdf  ", "report.pdf"},
		{"leading dots", "..hidden.txt", "hidden.txt"},
		{"control chars", "bad\x00name\x1f.txt", "badname.txt"},
		{"copy suffix kept", "photo (1).jpg", "photo (1).jpg"},
		{"nfd to nfc", norm.NFD.String("café.txt"), "café.txt"},
		{"everything stripped keeps original", " .. ", " .. "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanName(tc.in); got != tc.want {
				t.Fatalf("cleanName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizerApplies(t *testing.T) {
	n := NewNormalizer()
	if n.Applies("/tmp/report.pdf") {
		t.Fatal("clean name should not apply")
	}
	if !n.Applies("/tmp/report.pdf ") {
		t.Fatal("trailing space should apply")
	}
}

func TestNormalizerTransform(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report.pdf ")
	if err := os.WriteFile(src, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	n := NewNormalizer()
	got, err := n.Transform(context.Background(), src)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if want := filepath.Join(dir, "report.pdf"); got != want {
		t.Fatalf("Transform = %q, want %q", got, want)
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(src); err == nil {
		t.Fatal("original path should be gone")
	}
}

func TestNormalizerTransformConflict(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "report.pdf"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "report.pdf ")
	if err := os.WriteFile(src, []byte("incoming"), 0o644); err != nil {
		t.Fatal(err)
	}

	n := NewNormalizer()
	got, err := n.Transform(context.Background(), src)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if want := filepath.Join(dir, "report (1).pdf"); got != want {
		t.Fatalf("Transform = %q, want %q", got, want)
	}
	existing, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if string(existing) != "existing" {
		t.Fatal("existing file was overwritten")
	}
}
