package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ccollicutt/logview/pkg/aggregator"
	"github.com/ccollicutt/logview/pkg/source"
)

// reloadLog records poller callbacks.
type reloadLog struct {
	mu     sync.Mutex
	counts []int
	errs   []error
	notify chan struct{}
}

func newReloadLog() *reloadLog {
	return &reloadLog{notify: make(chan struct{}, 16)}
}

func (l *reloadLog) record(res *aggregator.Result, err error) {
	l.mu.Lock()
	if res != nil {
		l.counts = append(l.counts, len(res.Records))
	}
	l.errs = append(l.errs, err)
	l.mu.Unlock()
	l.notify <- struct{}{}
}

func (l *reloadLog) wait(t *testing.T) {
	t.Helper()
	select {
	case <-l.notify:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestPoller_InitialAndTriggeredReload(t *testing.T) {
	fsys := linesFS(2)
	s := newSession(t, fsys)
	log := newReloadLog()
	trigger := make(chan struct{})

	p := NewPoller(s,
		WithInterval(time.Hour),
		WithTrigger(trigger),
		WithOnReload(log.record),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	log.wait(t)
	if got := len(s.Records()); got != 2 {
		t.Errorf("Records after initial load = %d, want 2", got)
	}

	fsys["more.txt"] = fsys["app.txt"]
	trigger <- struct{}{}
	log.wait(t)
	if got := len(s.Records()); got != 4 {
		t.Errorf("Records after trigger = %d, want 4", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestPoller_IntervalReload(t *testing.T) {
	s := newSession(t, linesFS(1))
	log := newReloadLog()
	p := NewPoller(s, WithInterval(10*time.Millisecond), WithOnReload(log.record))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	for range 3 {
		log.wait(t)
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestPoller_StopsOnPermissionError(t *testing.T) {
	agg, err := aggregator.New()
	if err != nil {
		t.Fatalf("aggregator.New() error = %v", err)
	}
	s := New(&deniedDir{Directory: source.NewFS("logs", linesFS(1))}, agg)
	p := NewPoller(s, WithInterval(time.Hour))

	err = p.Run(context.Background())
	var permErr *aggregator.PermissionError
	if !errors.As(err, &permErr) {
		t.Errorf("Run() error = %v, want PermissionError", err)
	}
}
