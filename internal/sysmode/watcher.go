package sysmode

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/themer/internal/ports"
	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// DefaultPollInterval is used when a Watcher is created with a
// non-positive interval.
const DefaultPollInterval = 2 * time.Second

// Watcher polls a Detector and reports preference changes.
type Watcher struct {
	detector Detector
	interval time.Duration
	logger   ports.Logger
}

// NewWatcher creates a Watcher. logger may be nil.
func NewWatcher(detector Detector, interval time.Duration, logger ports.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{detector: detector, interval: interval, logger: logger}
}

// Current returns the preference now, light when unavailable.
func (w *Watcher) Current() theme.Mode {
	if w == nil || w.detector == nil {
		return theme.ModeLight
	}
	return w.detector.SystemMode()
}

// OnChange calls cb from a background goroutine each time the preference
// changes. The returned function stops the subscription; once it returns, cb
// is never called again. It is safe to call more than once but must not be
// called from inside cb.
//
// Without an available detector OnChange starts nothing and returns a no-op.
func (w *Watcher) OnChange(cb func(theme.Mode)) (unsubscribe func()) {
	if w == nil || w.detector == nil || cb == nil || !w.detector.Available() {
		return func() {}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	last := w.detector.SystemMode()

	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}

			current := w.detector.SystemMode()
			if current == last {
				continue
			}
			last = current

			select {
			case <-stop:
				return
			default:
			}
			if w.logger != nil {
				w.logger.Debug(context.Background(), "system mode changed", "mode", string(current))
			}
			cb(current)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}
