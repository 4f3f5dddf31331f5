package organizer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/stage"
)

// Manager coordinates queue processing with a pool of workers.
type Manager struct {
	cfg           *config.Config
	store         *queue.Store
	logger        *slog.Logger
	stages        []pipelineStage
	byReady       map[queue.Status]pipelineStage
	readyStatuses []queue.Status
	pollInterval  time.Duration
	errorRetry    time.Duration
	workers       int

	mu       sync.RWMutex
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	lastErr  error
	lastItem *queue.Item
}

// NewManager constructs the organizer manager and its stage chain.
func NewManager(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Manager, error) {
	stages, err := newStages(cfg, logger)
	if err != nil {
		return nil, err
	}
	return newManagerWithStages(cfg, store, logger, stages), nil
}

func newManagerWithStages(cfg *config.Config, store *queue.Store, logger *slog.Logger, stages []pipelineStage) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	byReady := make(map[queue.Status]pipelineStage, len(stages))
	ready := make([]queue.Status, 0, len(stages))
	for _, st := range stages {
		byReady[st.ready] = st
		ready = append(ready, st.ready)
	}
	workers := cfg.Workflow.Workers
	if workers < 1 {
		workers = 1
	}
	return &Manager{
		cfg:           cfg,
		store:         store,
		logger:        logging.NewComponentLogger(logger, "organizer"),
		stages:        stages,
		byReady:       byReady,
		readyStatuses: ready,
		pollInterval:  time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		errorRetry:    time.Duration(cfg.Workflow.ErrorRetryInterval) * time.Second,
		workers:       workers,
	}
}

// Start begins background processing.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("organizer already running")
	}
	if len(m.stages) == 0 {
		m.mu.Unlock()
		return errors.New("organizer stages not configured")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(m.workers)
	m.mu.Unlock()

	for i := 0; i < m.workers; i++ {
		go m.runWorker(runCtx)
	}
	return nil
}

// Stop terminates background processing and waits for in-flight stages.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) runWorker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		item, err := m.store.NextForStatuses(ctx, m.readyStatuses...)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.setLastError(err)
			m.logger.Error("failed to fetch next queue item",
				logging.Error(err),
				logging.String(logging.FieldEventType, "queue_fetch_failed"),
				logging.String(logging.FieldErrorHint, "check queue database access"),
			)
			m.sleep(ctx, m.errorRetry)
			continue
		}
		if item == nil {
			m.sleep(ctx, m.pollInterval)
			continue
		}

		if err := m.processItem(ctx, item); err != nil && errors.Is(err, context.Canceled) {
			return
		}
	}
}

func (m *Manager) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Health reports per-stage readiness.
func (m *Manager) Health(ctx context.Context) []stage.Health {
	checks := make([]stage.Health, 0, len(m.stages))
	for _, st := range m.stages {
		checks = append(checks, st.handler.HealthCheck(ctx))
	}
	return checks
}

// LastError returns the most recent processing error, if any.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// LastItem returns a copy of the most recently completed item.
func (m *Manager) LastItem() *queue.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lastItem == nil {
		return nil
	}
	copied := *m.lastItem
	return &copied
}

func (m *Manager) setLastError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

func (m *Manager) setLastItem(item *queue.Item) {
	m.mu.Lock()
	copied := *item
	m.lastItem = &copied
	m.mu.Unlock()
}
