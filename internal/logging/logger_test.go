package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"curator/internal/services"
)

func newBufferLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(level)
	return slog.New(newConsoleHandler(&buf, lvl, false)), &buf
}

func TestConsoleHandlerFormat(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelInfo)
	logger = NewComponentLogger(logger, "mover")

	logger.Info("file moved", String("final_path", "/dest/a.txt"), Bool("renamed", false))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO mover: file moved") {
		t.Fatalf("line = %q, want component-prefixed message", line)
	}
	if !strings.Contains(line, "final_path=/dest/a.txt") {
		t.Fatalf("line = %q, want k=v attrs", line)
	}
	if !strings.Contains(line, "renamed=false") {
		t.Fatalf("line = %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelInfo)
	logger.Info("msg", String("path", "/tmp/with space/file.txt"))

	if !strings.Contains(buf.String(), `path="/tmp/with space/file.txt"`) {
		t.Fatalf("output = %q, want quoted value", buf.String())
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelWarn)
	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info record should be filtered, got %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn record missing from %q", out)
	}
}

func TestConsoleHandlerError(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelInfo)
	logger.Error("stage failed", Error(errors.New("copy hash mismatch")))

	if !strings.Contains(buf.String(), `error="copy hash mismatch"`) {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestWithContextCarriesItemFields(t *testing.T) {
	logger, buf := newBufferLogger(slog.LevelInfo)

	ctx := services.WithItemID(context.Background(), 7)
	ctx = services.WithStage(ctx, "classify")
	WithContext(ctx, logger).Info("stage started")

	out := buf.String()
	if !strings.Contains(out, "item_id=7") {
		t.Fatalf("output = %q, want item_id", out)
	}
	if !strings.Contains(out, "stage=classify") {
		t.Fatalf("output = %q, want stage", out)
	}
}

func TestResolveFormat(t *testing.T) {
	if got := ResolveFormat("json"); got != "json" {
		t.Fatalf("ResolveFormat(json) = %q", got)
	}
	if got := ResolveFormat("console"); got != "console" {
		t.Fatalf("ResolveFormat(console) = %q", got)
	}
	got := ResolveFormat("auto")
	if got != "console" && got != "json" {
		t.Fatalf("ResolveFormat(auto) = %q", got)
	}
}

func TestNewWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "curator.log")
	logger, err := New(Options{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello", String("k", "v"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"hello"`) {
		t.Fatalf("log content = %q", content)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	oldLog := filepath.Join(dir, "curator-old.log")
	newLog := filepath.Join(dir, "curator-new.log")
	for _, path := range []string{oldLog, newLog} {
		if err := os.WriteFile(path, []byte("log"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().Add(-40 * 24 * time.Hour)
	if err := os.Chtimes(oldLog, stale, stale); err != nil {
		t.Fatal(err)
	}

	CleanupOldLogs(NewNop(), 30, RetentionTarget{Dir: dir, Pattern: "curator-*.log", Exclude: []string{newLog}})

	if _, err := os.Stat(oldLog); err == nil {
		t.Fatal("stale log should be removed")
	}
	if _, err := os.Stat(newLog); err != nil {
		t.Fatalf("recent log should remain: %v", err)
	}
}
