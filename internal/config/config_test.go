package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"curator/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.WatchDir != filepath.Join(tempHome, "Downloads") {
		t.Fatalf("unexpected watch dir: %q", cfg.Paths.WatchDir)
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, ".local", "share", "curator") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Categories.Documents != filepath.Join(tempHome, "Documents") {
		t.Fatalf("unexpected documents root: %q", cfg.Categories.Documents)
	}
	if !cfg.Preprocess.NormalizeFilenames {
		t.Fatal("filename normalization should default on")
	}
	if !cfg.Matcher.Enabled {
		t.Fatal("subfolder matcher should default on")
	}
	if cfg.Matcher.SimilarityThreshold != 0.5 {
		t.Fatalf("unexpected similarity threshold: %v", cfg.Matcher.SimilarityThreshold)
	}
	if cfg.Workflow.Workers != 2 {
		t.Fatalf("unexpected worker count: %d", cfg.Workflow.Workers)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
watch_dir = "~/Incoming"

[matcher]
enabled = true
similarity_threshold = 0.7
excluded_folders = ["Screenshots"]

[workflow]
workers = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Paths.WatchDir != filepath.Join(tempHome, "Incoming") {
		t.Fatalf("watch dir not expanded: %q", cfg.Paths.WatchDir)
	}
	if !cfg.Matcher.Enabled || cfg.Matcher.SimilarityThreshold != 0.7 {
		t.Fatalf("matcher settings not applied: %+v", cfg.Matcher)
	}
	if cfg.Workflow.Workers != 4 {
		t.Fatalf("workers = %d, want 4", cfg.Workflow.Workers)
	}
	// Untouched sections keep their defaults.
	if cfg.Categories.Images != filepath.Join(tempHome, "Pictures") {
		t.Fatalf("images root = %q", cfg.Categories.Images)
	}
}

func TestValidateRejectsWatchDirAsCategoryRoot(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[categories]
documents = "~/Downloads"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("category root equal to watch dir must be rejected")
	}
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[matcher]
similarity_threshold = 1.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("out-of-range threshold must be rejected")
	}
}

func TestSampleConfigRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	target := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(target); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := config.WriteSample(target); err == nil {
		t.Fatal("WriteSample should refuse to overwrite")
	}

	raw, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "[paths]") {
		t.Fatal("sample should document the [paths] section")
	}

	var cfg config.Config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if _, _, _, err := config.Load(target); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path, err := config.DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if path != filepath.Join(tempHome, ".config", "curator", "config.toml") {
		t.Fatalf("unexpected default path: %q", path)
	}
}
