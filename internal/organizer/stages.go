package organizer

import (
	"log/slog"

	"curator/internal/classify"
	"curator/internal/config"
	"curator/internal/mover"
	"curator/internal/preprocess"
	"curator/internal/queue"
	"curator/internal/stage"
)

// pipelineStage binds a stage handler to its place in the status chain.
type pipelineStage struct {
	name       string
	ready      queue.Status
	processing queue.Status
	done       queue.Status
	handler    stage.Handler
}

// newStages builds the ordered stage chain from configuration.
func newStages(cfg *config.Config, logger *slog.Logger) ([]pipelineStage, error) {
	classifier, err := classify.NewClassifier(cfg, logger)
	if err != nil {
		return nil, err
	}
	return []pipelineStage{
		{
			name:       "preprocess",
			ready:      queue.StatusPending,
			processing: queue.StatusPreprocessing,
			done:       queue.StatusPreprocessed,
			handler:    preprocess.NewHandler(cfg, logger),
		},
		{
			name:       "classify",
			ready:      queue.StatusPreprocessed,
			processing: queue.StatusClassifying,
			done:       queue.StatusClassified,
			handler:    classifier,
		},
		{
			name:       "move",
			ready:      queue.StatusClassified,
			processing: queue.StatusMoving,
			done:       queue.StatusCompleted,
			handler:    mover.NewHandler(cfg, logger),
		},
	}, nil
}
