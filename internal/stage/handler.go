package stage

import (
	"context"

	"curator/internal/queue"
)

// Handler describes the contract the organizer needs from each pipeline stage.
type Handler interface {
	Prepare(context.Context, *queue.Item) error
	Execute(context.Context, *queue.Item) error
	HealthCheck(context.Context) Health
}
