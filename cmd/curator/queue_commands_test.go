package main

import (
	"strings"
	"testing"

	"curator/internal/queue"
	"curator/internal/testsupport"
)

func TestRenderQueueTable(t *testing.T) {
	items := []*queue.Item{
		{ID: 7, SourcePath: "/watch/notes.txt", Status: queue.StatusCompleted, TypeLabel: "txt", Category: "Documents", FinalPath: "/docs/notes.txt"},
		{ID: 8, SourcePath: "/watch/gone.png", Status: queue.StatusSkipped, ErrorMessage: "source vanished"},
	}
	out := renderQueueTable(items)
	for _, want := range []string{"ID", "File", "notes.txt", "completed", "Documents", "/docs/notes.txt", "source vanished"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestQueueListEmpty(t *testing.T) {
	path := writeConfigFile(t)
	out, err := runCommand(t, "--config", path, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "Queue is empty.") {
		t.Fatalf("output = %q, want empty-queue notice", out)
	}
}

func TestOrganizeThenQueueList(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutPreprocess())
	path := writeConfigTo(t, cfg)
	src := testsupport.WriteWatchFile(t, cfg.Paths.WatchDir, "notes.txt", []byte("plain text"))

	out, err := runCommand(t, "--config", path, "organize", src)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	if !strings.Contains(out, "Moved ") {
		t.Fatalf("organize output = %q", out)
	}

	out, err = runCommand(t, "--config", path, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "notes.txt") || !strings.Contains(out, "completed") {
		t.Fatalf("queue list output = %q", out)
	}

	out, err = runCommand(t, "--config", path, "queue", "clear")
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	if !strings.Contains(out, "Removed 1 queue entries.") {
		t.Fatalf("queue clear output = %q", out)
	}
}

func TestOrganizeMissingFile(t *testing.T) {
	path := writeConfigFile(t)
	out, err := runCommand(t, "--config", path, "organize", "/nonexistent/file.txt")
	if err != nil {
		t.Fatalf("organize vanished file should not error: %v", err)
	}
	if !strings.Contains(out, "Skipped ") {
		t.Fatalf("output = %q, want skip notice", out)
	}
}
