package mover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"curator/internal/fileutil"
	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/services"
)

const maxConflictAttempts = 10000

var (
	osRename         = os.Rename
	copyFileVerified = fileutil.CopyFileVerified
)

// Outcome describes where a file ended up and how it got there.
type Outcome struct {
	FinalPath    string
	Kind         queue.MoveKind
	RenameSuffix string
}

// Engine moves files into destination directories with conflict resolution
// and a verified copy fallback for cross-device destinations.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{logger: logger.With(logging.String(logging.FieldComponent, "mover"))}
}

// Relocate moves src into destDir, resolving name conflicts with numbered
// suffixes. The source file is never lost: every failure path leaves src in
// place and removes any partial destination state.
func (e *Engine) Relocate(ctx context.Context, src, destDir string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Outcome{}, services.Wrap(services.ErrVanished, "moving", "stat source", "Source file disappeared before the move", err)
		}
		return Outcome{}, services.Wrap(services.ErrTransient, "moving", "stat source", "Unable to stat source file", err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Outcome{}, services.Wrap(services.ErrDestination, "moving", "ensure destination", "Failed to create destination directory", err)
	}

	target, suffix, err := e.claimTarget(destDir, filepath.Base(src))
	if err != nil {
		return Outcome{}, err
	}

	kind, err := e.moveOnto(src, target, destDir)
	if err != nil {
		_ = os.Remove(target)
		return Outcome{}, err
	}
	return Outcome{FinalPath: target, Kind: kind, RenameSuffix: suffix}, nil
}

// claimTarget reserves the first free candidate name in destDir with an
// exclusive create. The returned path holds a zero-length placeholder the
// caller must rename over or remove.
func (e *Engine) claimTarget(destDir, base string) (string, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for attempt := 0; attempt < maxConflictAttempts; attempt++ {
		suffix := ""
		if attempt > 0 {
			suffix = fmt.Sprintf(" (%d)", attempt)
		}
		candidate := filepath.Join(destDir, stem+suffix+ext)
		err := fileutil.ClaimPath(candidate)
		if err == nil {
			if attempt > 0 {
				e.logger.Info("destination name taken, renamed",
					logging.String("target", candidate),
					logging.String(logging.FieldEventType, "move_conflict_renamed"))
			}
			return candidate, suffix, nil
		}
		if fileutil.IsExist(err) {
			continue
		}
		return "", "", services.Wrap(services.ErrDestination, "moving", "claim destination", "Failed to create destination file", err)
	}
	return "", "", services.Wrap(services.ErrConflictExhausted, "moving", "claim destination",
		fmt.Sprintf("No free name for %q after %d attempts", base, maxConflictAttempts), nil)
}

// moveOnto replaces the placeholder at target with the content of src. Rename
// is tried first; EXDEV falls back to copy-verify-rename-delete through a
// temporary file in the destination directory.
func (e *Engine) moveOnto(src, target, destDir string) (queue.MoveKind, error) {
	renameErr := osRename(src, target)
	if renameErr == nil {
		return queue.MoveKindAtomic, nil
	}
	if errors.Is(renameErr, fs.ErrNotExist) {
		return "", services.Wrap(services.ErrVanished, "moving", "rename", "Source file disappeared during the move", renameErr)
	}

	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return "", services.Wrap(services.ErrTransient, "moving", "rename", "Failed to move file into destination", renameErr)
	}

	tmp, err := os.CreateTemp(destDir, ".curator-copy-*")
	if err != nil {
		return "", services.Wrap(services.ErrDestination, "moving", "create temp", "Failed to create temporary copy target", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", services.Wrap(services.ErrDestination, "moving", "create temp", "Failed to prepare temporary copy target", err)
	}

	if err := copyFileVerified(src, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", services.Wrap(services.ErrVerifyFailed, "moving", "copy", "Cross-device copy did not verify, source retained", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return "", services.Wrap(services.ErrDestination, "moving", "finalize copy", "Failed to finalize copied file", err)
	}
	if err := os.Remove(src); err != nil {
		e.logger.Warn("failed to remove source after verified copy; duplicate remains",
			logging.Error(err),
			logging.String("source", src),
			logging.String(logging.FieldEventType, "move_source_cleanup_failed"),
			logging.String(logging.FieldErrorHint, "delete the original manually"))
	}
	return queue.MoveKindCopy, nil
}
