package queue_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"curator/internal/queue"
	"curator/internal/testsupport"
)

func TestNewFileAssignsPendingItem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	src := filepath.Join(cfg.Paths.WatchDir, "download.pdf")
	item, err := store.NewFile(ctx, src)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected item ID to be assigned")
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("status = %q, want pending", item.Status)
	}
	if item.WorkingPath != src {
		t.Fatalf("working path = %q, want source path", item.WorkingPath)
	}

	fetched, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.SourcePath != src {
		t.Fatalf("unexpected fetched item: %#v", fetched)
	}
}

func TestNewFileDeduplicatesActiveSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	src := filepath.Join(cfg.Paths.WatchDir, "dup.txt")
	first, err := store.NewFile(ctx, src)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	second, err := store.NewFile(ctx, src)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("active source should dedupe: got %d and %d", first.ID, second.ID)
	}

	// A terminal item does not block re-enqueueing the same path.
	first.Status = queue.StatusCompleted
	if err := store.Update(ctx, first); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	third, err := store.NewFile(ctx, src)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if third.ID == first.ID {
		t.Fatal("completed item should not be reused")
	}
}

func TestTransitionClaimsExactlyOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item := testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, "claim.txt"))

	ok, err := store.Transition(ctx, item.ID, queue.StatusPending, queue.StatusPreprocessing)
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if !ok {
		t.Fatal("first claim should succeed")
	}
	ok, err = store.Transition(ctx, item.ID, queue.StatusPending, queue.StatusPreprocessing)
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if ok {
		t.Fatal("second claim from the same status must fail")
	}
}

func TestNextForStatusesReturnsOldest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		item := testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, fmt.Sprintf("file-%d.txt", i)))
		ids = append(ids, item.ID)
	}

	next, err := store.NextForStatuses(ctx, queue.StatusPending)
	if err != nil {
		t.Fatalf("NextForStatuses failed: %v", err)
	}
	if next == nil || next.ID != ids[0] {
		t.Fatalf("expected oldest item %d, got %#v", ids[0], next)
	}

	if _, err := store.Transition(ctx, ids[0], queue.StatusPending, queue.StatusPreprocessing); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	next, err = store.NextForStatuses(ctx, queue.StatusPending)
	if err != nil {
		t.Fatalf("NextForStatuses failed: %v", err)
	}
	if next == nil || next.ID != ids[1] {
		t.Fatalf("expected next pending item %d, got %#v", ids[1], next)
	}

	none, err := store.NextForStatuses(ctx, queue.StatusMoving)
	if err != nil {
		t.Fatalf("NextForStatuses failed: %v", err)
	}
	if none != nil {
		t.Fatalf("expected no item, got %#v", none)
	}
}

func TestResetStuckProcessing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	cases := []struct {
		name          string
		initialStatus queue.Status
		expected      queue.Status
	}{
		{"preprocessing", queue.StatusPreprocessing, queue.StatusPending},
		{"classifying", queue.StatusClassifying, queue.StatusPreprocessed},
		{"moving", queue.StatusMoving, queue.StatusClassified},
	}
	var ids []int64
	for i, tc := range cases {
		item := testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, fmt.Sprintf("stuck-%d.txt", i)))
		item.Status = tc.initialStatus
		if err := store.Update(ctx, item); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		ids = append(ids, item.ID)
	}

	reset, err := store.ResetStuckProcessing(ctx)
	if err != nil {
		t.Fatalf("ResetStuckProcessing failed: %v", err)
	}
	if reset != int64(len(cases)) {
		t.Fatalf("reset = %d, want %d", reset, len(cases))
	}
	for i, tc := range cases {
		item, err := store.GetByID(ctx, ids[i])
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if item.Status != tc.expected {
			t.Fatalf("%s: status = %q, want %q", tc.name, item.Status, tc.expected)
		}
	}
}

func TestClearCompletedKeepsActiveItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	active := testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, "active.txt"))

	done := testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, "done.txt"))
	done.Status = queue.StatusCompleted
	if err := store.Update(ctx, done); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	skipped := testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, "skipped.txt"))
	skipped.Status = queue.StatusSkipped
	if err := store.Update(ctx, skipped); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	removed, err := store.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != active.ID {
		t.Fatalf("unexpected remaining items: %#v", remaining)
	}
}

func TestHealthCountsByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, "one.txt"))
	moving := testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, "two.txt"))
	moving.Status = queue.StatusMoving
	if err := store.Update(ctx, moving); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	failed := testsupport.NewFile(t, store, filepath.Join(cfg.Paths.WatchDir, "three.txt"))
	failed.Status = queue.StatusFailed
	failed.ErrorMessage = "boom"
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	summary, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if summary.Total != 3 || summary.Pending != 1 || summary.Processing != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
