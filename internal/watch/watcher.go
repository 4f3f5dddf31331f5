package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/queue"
)

// Watcher monitors a directory and enqueues settled files.
type Watcher struct {
	dir    string
	settle time.Duration
	store  *queue.Store
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingFile
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type pendingFile struct {
	timer *time.Timer
	size  int64
}

// NewWatcher constructs a watcher over the configured watch directory.
func NewWatcher(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	settle := time.Duration(cfg.Workflow.SettleSeconds) * time.Second
	if settle <= 0 {
		settle = 2 * time.Second
	}
	return &Watcher{
		dir:     cfg.Paths.WatchDir,
		settle:  settle,
		store:   store,
		logger:  logging.NewComponentLogger(logger, "watcher"),
		pending: make(map[string]*pendingFile),
	}
}

// Start begins watching. Files already present in the directory are
// scheduled as if they had just arrived, so a backlog from downtime is
// picked up on startup.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		w.mu.Unlock()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	go w.run(runCtx, fsw)

	w.scanExisting(runCtx)
	w.logger.Info("watching directory", logging.String("dir", w.dir))
	return nil
}

// Stop terminates watching and cancels pending settle timers.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.cancel = nil
	for path, pending := range w.pending {
		pending.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	cancel()
	w.wg.Wait()
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "watch_error"),
			)
		}
	}
}

func (w *Watcher) scanExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("initial directory scan failed", logging.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.schedule(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// schedule arms or re-arms the settle timer for path. Every event for the
// path pushes enqueueing out by a full settle window.
func (w *Watcher) schedule(ctx context.Context, path string) {
	if ignored(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if pending, ok := w.pending[path]; ok {
		pending.size = info.Size()
		pending.timer.Reset(w.settle)
		return
	}
	pending := &pendingFile{size: info.Size()}
	pending.timer = time.AfterFunc(w.settle, func() {
		w.settled(ctx, path)
	})
	w.pending[path] = pending
}

// settled fires after the settle window. The file is enqueued only when it
// still exists and its size matches the last observed one; growth re-arms
// the timer instead.
func (w *Watcher) settled(ctx context.Context, path string) {
	w.mu.Lock()
	pending, ok := w.pending[path]
	if !ok {
		w.mu.Unlock()
		return
	}
	lastSize := pending.size

	info, err := os.Stat(path)
	if err != nil {
		delete(w.pending, path)
		w.mu.Unlock()
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn("cannot stat settled file", logging.Error(err), logging.String("path", path))
		}
		return
	}
	if info.Size() != lastSize {
		pending.size = info.Size()
		pending.timer.Reset(w.settle)
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	item, err := w.store.NewFile(ctx, path)
	if err != nil {
		w.logger.Error("failed to enqueue file",
			logging.Error(err),
			logging.String("path", path),
			logging.String(logging.FieldEventType, "enqueue_failed"),
			logging.String(logging.FieldErrorHint, "check queue database access"),
		)
		return
	}
	w.logger.Info("file enqueued",
		logging.Int64(logging.FieldItemID, item.ID),
		logging.String("path", path),
		logging.String(logging.FieldEventType, "file_enqueued"),
	)
}

// ignored filters dotfiles, our own copy temporaries, and common in-progress
// download extensions.
func ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".part", ".crdownload", ".download", ".tmp":
		return true
	}
	return false
}
