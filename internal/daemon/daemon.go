package daemon

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/organizer"
	"curator/internal/queue"
	"curator/internal/stage"
	"curator/internal/watch"
)

// Daemon coordinates the watcher and organizer and enforces single-instance
// execution.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *queue.Store
	manager   *organizer.Manager
	watcher   *watch.Watcher
	lockPath  string
	lock      *flock.Flock
	running   atomic.Bool
	cancelRun context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	WatchDir     string
	QueueDBPath  string
	LockFilePath string
	Queue        queue.HealthSummary
	Stages       []stage.Health
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger, manager *organizer.Manager, watcher *watch.Watcher) (*Daemon, error) {
	if cfg == nil || store == nil || manager == nil || watcher == nil {
		return nil, errors.New("daemon requires config, store, organizer, and watcher")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.StateDir, "curator.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		manager:  manager,
		watcher:  watcher,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the organizer and watcher.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another curator instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.manager.Start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start organizer: %w", err)
	}
	if err := d.watcher.Start(runCtx); err != nil {
		d.manager.Stop()
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start watcher: %w", err)
	}
	d.cancelRun = cancel

	d.running.Store(true)
	d.logger.Info("curator daemon started",
		logging.String("watch_dir", d.cfg.Paths.WatchDir),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Stop stops the watcher first so nothing new is enqueued, then lets the
// organizer finish its in-flight stages and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.watcher.Stop()
	d.manager.Stop()
	if d.cancelRun != nil {
		d.cancelRun()
		d.cancelRun = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("curator daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports a point-in-time snapshot of the daemon.
func (d *Daemon) Status(ctx context.Context) (Status, error) {
	summary, err := d.store.Health(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Running:      d.running.Load(),
		WatchDir:     d.cfg.Paths.WatchDir,
		QueueDBPath:  d.store.Path(),
		LockFilePath: d.lockPath,
		Queue:        summary,
		Stages:       d.manager.Health(ctx),
	}, nil
}
