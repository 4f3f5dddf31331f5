package preprocess

import (
	"context"
	"log/slog"

	"curator/internal/config"
	"curator/internal/logging"
)

// Stage is one ordered preprocessing transformation. Applies decides from
// the current path whether the stage should run at all; Transform returns
// the path the file lives at afterwards, which may be unchanged.
type Stage interface {
	Name() string
	Applies(path string) bool
	Transform(ctx context.Context, path string) (string, error)
}

// Pipeline applies stages in order. A stage failure is logged and the file
// continues through the remaining stages on its pre-failure path.
type Pipeline struct {
	stages []Stage
	logger *slog.Logger
}

// NewPipeline builds the pipeline from configuration. Stage order is fixed:
// normalization first so later stages and the final destination see the
// cleaned name, conversion second.
func NewPipeline(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	var stages []Stage
	if cfg.Preprocess.NormalizeFilenames {
		stages = append(stages, NewNormalizer())
	}
	if cfg.Preprocess.ConvertHeic {
		stages = append(stages, NewHeicConverter(cfg.Preprocess.HeicTool))
	}
	return &Pipeline{
		stages: stages,
		logger: logging.NewComponentLogger(logger, "preprocess"),
	}
}

func newPipeline(logger *slog.Logger, stages ...Stage) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// Run pushes path through every applicable stage and returns the final path.
func (p *Pipeline) Run(ctx context.Context, path string) string {
	logger := logging.WithContext(ctx, p.logger)
	current := path
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return current
		}
		if !stage.Applies(current) {
			continue
		}
		next, err := stage.Transform(ctx, current)
		if err != nil {
			logger.Warn("preprocessing stage failed, continuing",
				logging.String("preprocess_stage", stage.Name()),
				logging.Error(err),
			)
			continue
		}
		if next != current {
			logger.Info("preprocessing stage applied",
				logging.String("preprocess_stage", stage.Name()),
				logging.String("path", next),
			)
			current = next
		}
	}
	return current
}

// Stages lists the configured stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, stage := range p.stages {
		names = append(names, stage.Name())
	}
	return names
}
