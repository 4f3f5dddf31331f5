package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/services"
)

func (m *Manager) processItem(ctx context.Context, item *queue.Item) error {
	st, ok := m.byReady[item.Status]
	if !ok {
		m.logger.Warn("no stage configured for status", logging.String("status", string(item.Status)))
		m.sleep(ctx, m.pollInterval)
		return nil
	}

	claimed, err := m.store.Transition(ctx, item.ID, st.ready, st.processing)
	if err != nil {
		m.setLastError(err)
		m.logger.Error("failed to claim queue item", logging.Error(err))
		return err
	}
	if !claimed {
		// Another worker won the claim. Refresh the item so callers do
		// not retry against the stale ready status.
		current, err := m.store.GetByID(ctx, item.ID)
		if err != nil {
			return err
		}
		if current != nil {
			*item = *current
		}
		return nil
	}
	item.Status = st.processing

	stageCtx := services.WithRequestID(ctx, uuid.NewString())
	stageCtx = services.WithItemID(stageCtx, item.ID)
	stageCtx = services.WithStage(stageCtx, st.name)
	stageLogger := logging.WithContext(stageCtx, m.logger)

	return m.executeStage(stageCtx, stageLogger, st, item)
}

func (m *Manager) executeStage(ctx context.Context, stageLogger *slog.Logger, st pipelineStage, item *queue.Item) error {
	stageStart := time.Now()
	stageLogger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("source_file", item.SourcePath),
	)

	if err := st.handler.Prepare(ctx, item); err != nil {
		m.handleStageFailure(ctx, st.name, item, err)
		return err
	}
	if err := m.store.Update(ctx, item); err != nil {
		wrapped := fmt.Errorf("persist stage preparation: %w", err)
		stageLogger.Error("failed to persist stage preparation", logging.Error(wrapped))
		m.setLastError(wrapped)
		return wrapped
	}

	if err := st.handler.Execute(ctx, item); err != nil {
		if errors.Is(err, context.Canceled) {
			stageLogger.Debug("stage interrupted by shutdown")
			return err
		}
		m.handleStageFailure(ctx, st.name, item, err)
		return err
	}

	if item.Status == st.processing {
		item.Status = st.done
	}
	if err := m.store.Update(ctx, item); err != nil {
		wrapped := fmt.Errorf("persist stage result: %w", err)
		stageLogger.Error("failed to persist stage result", logging.Error(wrapped))
		m.setLastError(wrapped)
		return wrapped
	}

	stageLogger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("next_status", string(item.Status)),
		logging.Duration("stage_duration", time.Since(stageStart)),
	)
	if item.Status == queue.StatusCompleted {
		stageLogger.Info("file organized",
			logging.String(logging.FieldEventType, "file_organized"),
			logging.String("source_file", item.SourcePath),
			logging.String("final_path", item.FinalPath),
			logging.String("category", item.Category),
			logging.String("type", item.TypeLabel),
			logging.String("move_kind", string(item.MoveKind)),
		)
	}
	m.setLastItem(item)
	return nil
}

// handleStageFailure records a terminal outcome for the item. A vanished
// source becomes skipped, every other failure becomes failed; either way the
// worker keeps running.
func (m *Manager) handleStageFailure(ctx context.Context, stageName string, item *queue.Item, stageErr error) {
	m.setLastError(stageErr)
	status := services.FailureStatus(stageErr)
	item.Status = status
	item.ErrorMessage = stageErr.Error()

	logger := logging.WithContext(ctx, m.logger)
	if status == queue.StatusSkipped {
		logger.Info("file skipped",
			logging.String(logging.FieldEventType, "file_skipped"),
			logging.String("source_file", item.SourcePath),
			logging.Error(stageErr),
		)
	} else {
		logger.Error("stage failed",
			logging.String(logging.FieldEventType, "stage_failed"),
			logging.String("stage", stageName),
			logging.String("source_file", item.SourcePath),
			logging.Error(stageErr),
		)
	}

	if err := m.store.Update(ctx, item); err != nil {
		logger.Error("failed to persist stage failure", logging.Error(err))
	}
}
