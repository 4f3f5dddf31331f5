package classify

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"log/slog"

	"curator/internal/config"
	"curator/internal/detect"
	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/services"
	"curator/internal/stage"
)

// Classifier is the stage handler that detects a file's type and resolves
// its destination category.
type Classifier struct {
	detector *detect.Detector
	roots    Roots
	logger   *slog.Logger
}

// NewClassifier constructs the classify stage handler. The category mapping
// is validated against the detector's label set so an unmapped label cannot
// appear at runtime.
func NewClassifier(cfg *config.Config, logger *slog.Logger) (*Classifier, error) {
	detector := detect.NewDetector()
	if err := ValidateMapping(detector.Labels()); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "classify", "validate mapping", "Signature labels are not fully mapped", err)
	}
	if err := ValidateMapping(detect.ExtensionLabels()); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "classify", "validate mapping", "Extension labels are not fully mapped", err)
	}
	roots, err := NewRoots(cfg.CategoryRoots())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "classify", "resolve category roots", "Category destinations are incomplete", err)
	}
	return &Classifier{
		detector: detector,
		roots:    roots,
		logger:   logging.NewComponentLogger(logger, "classifier"),
	}, nil
}

func (c *Classifier) Prepare(ctx context.Context, item *queue.Item) error {
	item.ErrorMessage = ""
	return nil
}

func (c *Classifier) Execute(ctx context.Context, item *queue.Item) error {
	logger := logging.WithContext(ctx, c.logger)

	path := item.WorkingPath
	if path == "" {
		path = item.SourcePath
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrVanished, "classify", "stat file", "File disappeared before classification", err)
		}
		return services.Wrap(services.ErrTransient, "classify", "stat file", "Cannot access file for classification", err)
	}

	detected := c.detector.Detect(path)
	category := Categorize(detected.Label)

	item.TypeLabel = detected.Label
	item.Provenance = queue.Provenance(detected.Provenance)
	item.Category = string(category)
	item.Destination = c.roots.Root(category)

	switch detected.Provenance {
	case detect.BySignature:
		logger.Info("type detected",
			logging.String("type", detected.Label),
			logging.String("category", string(category)),
		)
	case detect.ByExtension:
		logger.Info("type guessed from extension",
			logging.String("type", detected.Label),
			logging.String("category", string(category)),
		)
	default:
		logger.Info("type unknown, routing to fallback category",
			logging.String("category", string(category)),
		)
	}
	return nil
}

// HealthCheck verifies the category table covers the detector's labels and
// every category has a destination root.
func (c *Classifier) HealthCheck(ctx context.Context) stage.Health {
	const name = "classifier"
	if c.detector == nil {
		return stage.Unhealthy(name, "detector unavailable")
	}
	if err := ValidateMapping(c.detector.Labels()); err != nil {
		return stage.Unhealthy(name, err.Error())
	}
	for _, category := range Categories() {
		if c.roots.Root(category) == "" {
			return stage.Unhealthy(name, "category "+string(category)+" has no destination root")
		}
	}
	return stage.Healthy(name)
}
