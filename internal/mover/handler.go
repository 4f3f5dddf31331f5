package mover

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/services"
	"curator/internal/stage"
)

// Handler is the stage handler that relocates a classified file into its
// category destination.
type Handler struct {
	engine  *Engine
	matcher *Matcher
	logger  *slog.Logger
}

func NewHandler(cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		engine:  NewEngine(logger),
		matcher: NewMatcher(cfg.Matcher),
		logger:  logging.NewComponentLogger(logger, "mover"),
	}
}

func (h *Handler) Prepare(ctx context.Context, item *queue.Item) error {
	if item.Destination == "" {
		return services.Wrap(services.ErrValidation, "moving", "prepare", "Item has no destination directory", nil)
	}
	item.ErrorMessage = ""
	return nil
}

func (h *Handler) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, h.logger)

	src := item.WorkingPath
	if src == "" {
		src = item.SourcePath
	}
	destDir := h.matcher.Match(item.Destination, filepath.Base(src))
	if destDir != item.Destination {
		logger.Info("matched existing subfolder",
			logging.String("destination", destDir),
		)
	}

	outcome, err := h.engine.Relocate(ctx, src, destDir)
	if err != nil {
		return err
	}

	item.FinalPath = outcome.FinalPath
	item.MoveKind = outcome.Kind
	item.RenameSuffix = outcome.RenameSuffix

	logger.Info("file moved",
		logging.String("final_path", outcome.FinalPath),
		logging.String("move_kind", string(outcome.Kind)),
		logging.Bool("renamed", outcome.RenameSuffix != ""),
	)
	return nil
}

// HealthCheck verifies the working area is usable by probing the temp dir.
func (h *Handler) HealthCheck(ctx context.Context) stage.Health {
	const name = "mover"
	probe, err := os.CreateTemp("", "curator-mover-*")
	if err != nil {
		return stage.Unhealthy(name, "cannot create temporary files: "+err.Error())
	}
	probe.Close()
	os.Remove(probe.Name())
	return stage.Healthy(name)
}
