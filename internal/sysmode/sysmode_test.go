package sysmode

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

type fakeDetector struct {
	mu        sync.Mutex
	mode      theme.Mode
	available bool
}

func (f *fakeDetector) SystemMode() theme.Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *fakeDetector) Available() bool { return f.available }

func (f *fakeDetector) set(mode theme.Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = mode
}

func TestWatcherReportsChanges(t *testing.T) {
	t.Parallel()

	detector := &fakeDetector{mode: theme.ModeLight, available: true}
	watcher := NewWatcher(detector, 5*time.Millisecond, nil)

	changes := make(chan theme.Mode, 4)
	unsubscribe := watcher.OnChange(func(mode theme.Mode) { changes <- mode })
	defer unsubscribe()

	detector.set(theme.ModeDark)
	select {
	case mode := <-changes:
		require.Equal(t, theme.ModeDark, mode)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcherNoCallbacksAfterUnsubscribe(t *testing.T) {
	t.Parallel()

	detector := &fakeDetector{mode: theme.ModeLight, available: true}
	watcher := NewWatcher(detector, time.Millisecond, nil)

	var calls atomic.Int32
	unsubscribe := watcher.OnChange(func(theme.Mode) { calls.Add(1) })
	unsubscribe()
	unsubscribe()

	after := calls.Load()
	detector.set(theme.ModeDark)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, after, calls.Load())
}

func TestWatcherNoOpWhenUnavailable(t *testing.T) {
	t.Parallel()

	detector := &fakeDetector{mode: theme.ModeDark, available: false}
	watcher := NewWatcher(detector, time.Millisecond, nil)

	called := false
	unsubscribe := watcher.OnChange(func(theme.Mode) { called = true })
	require.NotNil(t, unsubscribe)
	unsubscribe()
	require.False(t, called)
}

func TestNewWatcherDefaultsInterval(t *testing.T) {
	t.Parallel()

	watcher := NewWatcher(Static("dark"), 0, nil)
	require.Equal(t, DefaultPollInterval, watcher.interval)
	require.Equal(t, theme.ModeDark, watcher.Current())

	var nilWatcher *Watcher
	require.Equal(t, theme.ModeLight, nilWatcher.Current())
}

func TestStaticDetector(t *testing.T) {
	t.Parallel()

	require.Equal(t, theme.ModeDark, Static("dark").SystemMode())
	require.True(t, Static("dark").Available())
	require.Equal(t, theme.ModeLight, Static("").SystemMode())
	require.False(t, Static("").Available())
}

func TestTerminalDetectorEnvOverride(t *testing.T) {
	t.Parallel()

	d := &TerminalDetector{lookup: func(key string) (string, bool) {
		if key == EnvOverride {
			return "Dark", true
		}
		return "", false
	}}
	require.True(t, d.Available())
	require.Equal(t, theme.ModeDark, d.SystemMode())
}

func TestTerminalDetectorWithoutTerminalIsLight(t *testing.T) {
	t.Parallel()

	d := &TerminalDetector{lookup: func(string) (string, bool) { return "", false }}
	require.False(t, d.Available())
	require.Equal(t, theme.ModeLight, d.SystemMode())
}
