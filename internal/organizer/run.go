package organizer

import (
	"context"
	"fmt"

	"curator/internal/queue"
)

// Run drives a single file through every stage without the daemon. The
// returned item carries the terminal status and, on success, the final path.
// When a daemon shares the queue database the file may already be queued or
// get claimed by one of its workers mid-run; Run then follows that worker's
// progress instead of competing for the claim.
func (m *Manager) Run(ctx context.Context, path string) (*queue.Item, error) {
	item, err := m.store.NewFile(ctx, path)
	if err != nil {
		return nil, err
	}

	for !item.Status.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return item, err
		}
		if _, ok := m.byReady[item.Status]; !ok {
			// In flight on another worker; wait for its outcome.
			m.sleep(ctx, m.pollInterval)
			if err := m.refreshItem(ctx, item); err != nil {
				return item, err
			}
			continue
		}
		if err := m.processItem(ctx, item); err != nil {
			if item.Status.IsTerminal() {
				// Failure outcome is recorded on the item itself.
				return item, nil
			}
			return item, err
		}
	}
	return item, nil
}

func (m *Manager) refreshItem(ctx context.Context, item *queue.Item) error {
	current, err := m.store.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("queue item %d disappeared", item.ID)
	}
	*item = *current
	return nil
}
