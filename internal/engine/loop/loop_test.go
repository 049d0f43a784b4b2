package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultInterval(t *testing.T) {
	if got := New(0).Interval(); got != DefaultInterval {
		t.Errorf("Interval() = %v, want %v", got, DefaultInterval)
	}
	if got := New(5 * time.Millisecond).Interval(); got != 5*time.Millisecond {
		t.Errorf("Interval() = %v", got)
	}
}

func TestRunTicksUntilCancel(t *testing.T) {
	l := New(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	var n atomic.Int32
	err := l.Run(ctx, func() error {
		if n.Add(1) == 5 {
			cancel()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if n.Load() < 5 {
		t.Errorf("ticks = %d, want at least 5", n.Load())
	}
}

func TestRunStopsOnTickError(t *testing.T) {
	l := New(time.Millisecond)
	boom := errors.New("boom")

	err := l.Run(context.Background(), func() error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
}

func TestPauseResume(t *testing.T) {
	l := New(time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx, func() error {
			if n.Add(1) == 3 {
				l.Pause()
			}
			return nil
		})
	}()

	waitFor(t, func() bool { return l.Paused() })
	frozen := n.Load()
	time.Sleep(20 * time.Millisecond)
	if got := n.Load(); got != frozen {
		t.Errorf("ticks while paused: %d -> %d", frozen, got)
	}

	l.Resume()
	if l.Paused() {
		t.Error("Paused() after Resume")
	}
	waitFor(t, func() bool { return n.Load() > frozen })

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error: %v", err)
	}
}

func TestCancelWhilePaused(t *testing.T) {
	l := New(time.Millisecond)
	l.Pause()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx, func() error {
			t.Error("tick while paused")
			return nil
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}
