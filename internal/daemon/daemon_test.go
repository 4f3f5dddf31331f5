package daemon

import (
	"context"
	"testing"

	"curator/internal/organizer"
	"curator/internal/testsupport"
	"curator/internal/watch"
)

func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithoutPreprocess())
	store := testsupport.MustOpenStore(t, cfg)
	manager, err := organizer.NewManager(cfg, store, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	watcher := watch.NewWatcher(cfg, store, nil)
	d, err := New(cfg, store, nil, manager, watcher)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestDaemonStartStop(t *testing.T) {
	d := newTestDaemon(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	status, err := d.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running {
		t.Fatal("status should report running")
	}
	if len(status.Stages) != 3 {
		t.Fatalf("stage health entries = %d, want 3", len(status.Stages))
	}

	d.Stop()
	status, err = d.Status(ctx)
	if err != nil {
		t.Fatalf("Status after stop: %v", err)
	}
	if status.Running {
		t.Fatal("status should report stopped")
	}
}

func TestDaemonSecondInstanceRejected(t *testing.T) {
	first := newTestDaemon(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer first.Stop()

	second, err := New(first.cfg, first.store, nil, first.manager, first.watcher)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("second instance should be rejected by the lock")
	}
}

func TestDaemonStartTwice(t *testing.T) {
	d := newTestDaemon(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()
	if err := d.Start(ctx); err == nil {
		t.Fatal("second Start should fail")
	}
}
