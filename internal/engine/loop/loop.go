// Package loop runs a frame callback at a fixed interval.
package loop

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/frustumview/internal/logger"
)

// DefaultInterval is the frame interval when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Loop calls a tick function once per interval until its context ends.
// Ticks run synchronously on the goroutine that called Run. Pause and Resume
// may be called from any goroutine.
type Loop struct {
	interval time.Duration

	mu     sync.Mutex
	paused bool
	wake   chan struct{}

	log *zap.Logger
}

// New creates a loop. A non-positive interval selects DefaultInterval.
func New(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		interval: interval,
		wake:     make(chan struct{}, 1),
		log:      logger.Named("loop"),
	}
}

// Interval returns the tick interval.
func (l *Loop) Interval() time.Duration { return l.interval }

// Pause stops ticks until Resume. A tick already running completes.
func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.paused {
		l.paused = true
		l.log.Debug("render loop paused")
	}
}

// Resume restarts ticks after Pause.
func (l *Loop) Resume() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paused {
		l.paused = false
		l.log.Debug("render loop resumed")
		select {
		case l.wake <- struct{}{}:
		default:
		}
	}
}

// Paused reports whether the loop is paused.
func (l *Loop) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// Run calls tick every interval until ctx is done or tick returns an error.
// While paused no ticks are delivered and the ticker is stopped. Run returns
// the tick error, or nil when ctx ends.
func (l *Loop) Run(ctx context.Context, tick func() error) error {
	l.log.Debug("render loop started", zap.Duration("interval", l.interval))

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if l.Paused() {
			ticker.Stop()
			select {
			case <-ctx.Done():
				return nil
			case <-l.wake:
			}
			ticker.Reset(l.interval)
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
		case <-ticker.C:
			if l.Paused() {
				continue
			}
			if err := tick(); err != nil {
				return err
			}
		}
	}
}
