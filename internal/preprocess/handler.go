package preprocess

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/services"
	"curator/internal/stage"
)

// Handler is the stage handler that runs the preprocessing pipeline and
// records the file's resulting working path.
type Handler struct {
	pipeline *Pipeline
	logger   *slog.Logger
}

func NewHandler(cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		pipeline: NewPipeline(cfg, logger),
		logger:   logging.NewComponentLogger(logger, "preprocess"),
	}
}

func (h *Handler) Prepare(ctx context.Context, item *queue.Item) error {
	item.ErrorMessage = ""
	return nil
}

func (h *Handler) Execute(ctx context.Context, item *queue.Item) error {
	path := item.WorkingPath
	if path == "" {
		path = item.SourcePath
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrVanished, "preprocess", "stat file", "File disappeared before preprocessing", err)
		}
		return services.Wrap(services.ErrTransient, "preprocess", "stat file", "Cannot access file for preprocessing", err)
	}

	item.WorkingPath = h.pipeline.Run(ctx, path)
	return nil
}

// HealthCheck reports the configured stage chain. The pipeline degrades per
// stage at runtime, so a missing tool never makes it unhealthy.
func (h *Handler) HealthCheck(ctx context.Context) stage.Health {
	const name = "preprocess"
	health := stage.Healthy(name)
	health.Detail = "stages: " + strings.Join(h.pipeline.Stages(), ", ")
	if len(h.pipeline.stages) == 0 {
		health.Detail = "no stages enabled"
	}
	return health
}
