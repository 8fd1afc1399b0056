// Package orchestrator runs the theme pipeline: resolve the selected theme
// for the effective mode, layer persisted overrides and publish the result.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/themer/internal/cssvars"
	"github.com/alexisbeaulieu97/themer/internal/loader"
	"github.com/alexisbeaulieu97/themer/internal/overrides"
	"github.com/alexisbeaulieu97/themer/internal/ports"
	"github.com/alexisbeaulieu97/themer/internal/sysmode"
	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// ErrClosed is returned by operations on a closed Orchestrator.
var ErrClosed = errors.New("orchestrator closed")

// Flusher is implemented by sinks that buffer output, such as
// cssvars.FileSink.
type Flusher interface {
	Flush() error
}

// Deps are the collaborators of an Orchestrator. Loader, Sink and Overrides
// are required.
type Deps struct {
	Loader    *loader.Loader
	Overrides *overrides.Store
	Sink      ports.StyleSink
	Store     ports.KVStore
	Watcher   *sysmode.Watcher
	Publisher ports.EventPublisher
	Logger    ports.Logger
}

// Options carry the page shell configuration.
type Options struct {
	Source       string
	Theme        string
	Mode         theme.RequestedMode
	HeaderHeight float64
}

// Applied describes the last published theme.
type Applied struct {
	Theme      theme.Resolved
	Mode       theme.Mode
	Requested  theme.RequestedMode
	Generation uint64
}

// Orchestrator owns the current selection. It is safe for concurrent use;
// each Refresh supersedes every Refresh started before it.
type Orchestrator struct {
	deps         Deps
	source       string
	headerHeight float64

	mu         sync.Mutex
	name       string
	mode       theme.RequestedMode
	ov         overrides.Overrides
	generation uint64
	applied    *Applied
	stopSystem func()
	stopSource func()
	closed     bool
}

// New creates an Orchestrator. Persisted overrides are read immediately.
func New(ctx context.Context, deps Deps, opts Options) (*Orchestrator, error) {
	if deps.Loader == nil || deps.Sink == nil || deps.Overrides == nil {
		return nil, fmt.Errorf("orchestrator requires a loader, a sink and an override store")
	}
	mode := opts.Mode
	if mode == "" {
		mode = theme.RequestLight
	}
	if _, err := theme.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	o := &Orchestrator{
		deps:         deps,
		source:       opts.Source,
		headerHeight: opts.HeaderHeight,
		name:         opts.Theme,
		mode:         mode,
	}
	o.ov = deps.Overrides.Load(ctx)
	return o, nil
}

// Selection returns the requested theme name and mode.
func (o *Orchestrator) Selection() (string, theme.RequestedMode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.name, o.mode
}

// Overrides returns the overrides layered on every refresh.
func (o *Orchestrator) Overrides() overrides.Overrides {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ov
}

// Current returns the last published theme.
func (o *Orchestrator) Current() (Applied, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.applied == nil {
		return Applied{}, false
	}
	applied := *o.applied
	applied.Theme = applied.Theme.Clone()
	return applied, true
}

// SetTheme selects name and refreshes.
func (o *Orchestrator) SetTheme(ctx context.Context, name string) (bool, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false, ErrClosed
	}
	o.name = name
	o.mu.Unlock()

	return o.Refresh(ctx)
}

// SetMode selects mode and refreshes. Selecting system subscribes to OS
// preference changes; any other mode drops the subscription.
func (o *Orchestrator) SetMode(ctx context.Context, mode theme.RequestedMode) (bool, error) {
	if _, err := theme.ParseMode(string(mode)); err != nil {
		return false, err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false, ErrClosed
	}
	o.mode = mode
	o.mu.Unlock()

	o.syncSystemSubscription(ctx)
	return o.Refresh(ctx)
}

// SetOverrides persists ov and refreshes.
func (o *Orchestrator) SetOverrides(ctx context.Context, ov overrides.Overrides) (bool, error) {
	if err := o.deps.Overrides.Save(ctx, ov); err != nil {
		return false, err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false, ErrClosed
	}
	o.ov = ov
	o.mu.Unlock()

	return o.Refresh(ctx)
}

// ClearOverrides removes persisted overrides and refreshes.
func (o *Orchestrator) ClearOverrides(ctx context.Context) (bool, error) {
	if err := o.deps.Overrides.Clear(ctx); err != nil {
		return false, err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false, ErrClosed
	}
	o.ov = overrides.Overrides{}
	o.mu.Unlock()

	return o.Refresh(ctx)
}

// Refresh runs the pipeline for the current selection. It reports false when
// the theme is not available or when a later Refresh superseded this one;
// in both cases the published state is left as it was.
func (o *Orchestrator) Refresh(ctx context.Context) (bool, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false, ErrClosed
	}
	o.generation++
	gen := o.generation
	name, requested, ov := o.name, o.mode, o.ov
	o.mu.Unlock()

	effective := requested.Effective(o.systemSource())
	logger := o.logger().With("theme", name, "mode", string(effective), "generation", gen)

	base, ok := o.deps.Loader.ResolveByName(ctx, name, effective, o.source)
	if !ok {
		logger.Warn(ctx, "theme unavailable; keeping current presentation")
		return false, nil
	}
	merged := overrides.Apply(base, ov)

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false, ErrClosed
	}
	if latest := o.generation; gen != latest {
		o.mu.Unlock()
		logger.Debug(ctx, "discarding superseded theme resolution", "latest", latest)
		return false, nil
	}
	// The sink, the stylesheet file and the persisted selection change
	// together so a superseded refresh cannot overwrite any of them.
	cssvars.Publish(o.deps.Sink, merged)
	cssvars.PublishHeaderHeight(o.deps.Sink, o.headerHeight)
	o.applied = &Applied{Theme: merged.Clone(), Mode: effective, Requested: requested, Generation: gen}
	if flusher, ok := o.deps.Sink.(Flusher); ok {
		if err := flusher.Flush(); err != nil {
			logger.Error(ctx, "failed to write stylesheet", "error", err)
		}
	}
	o.persistSelection(ctx, name, requested)
	o.mu.Unlock()

	logger.Info(ctx, "theme applied")
	if !o.stillApplied(gen) {
		logger.Debug(ctx, "skipping applied event for superseded theme")
		return true, nil
	}
	o.publish(ctx, ports.Event{
		Type: ports.EventThemeApplied,
		Fields: map[string]interface{}{
			"theme":      name,
			"mode":       string(effective),
			"requested":  string(requested),
			"generation": gen,
		},
	})
	return true, nil
}

func (o *Orchestrator) stillApplied(gen uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.applied != nil && o.applied.Generation == gen
}

// Export writes the last published theme as "{name}-{mode}-merged.json" in
// dir. Failures are logged and returned; the pipeline is unaffected.
func (o *Orchestrator) Export(ctx context.Context, dir string) (string, error) {
	applied, ok := o.Current()
	if !ok {
		return "", fmt.Errorf("no theme has been applied")
	}
	path, err := overrides.ExportMerged(dir, applied.Theme, applied.Mode)
	if err != nil {
		o.logger().Warn(ctx, "export failed", "dir", dir, "error", err)
		return "", err
	}
	o.logger().Info(ctx, "exported merged theme", "path", path)
	return path, nil
}

// Start subscribes to OS preference changes when the mode is system and,
// for local token sources, reloads the source whenever the file changes.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	o.mu.Unlock()

	o.syncSystemSubscription(ctx)

	if o.source == "" || !loader.IsLocal(o.source) {
		return nil
	}
	stop, err := watchSource(ctx, loader.LocalPath(o.source), o.logger(), func() {
		o.reloadSource(ctx)
	})
	if err != nil {
		return err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		stop()
		return ErrClosed
	}
	if o.stopSource != nil {
		o.stopSource()
	}
	o.stopSource = stop
	o.mu.Unlock()
	return nil
}

// Close drops every subscription. No callback runs after Close returns.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	stopSystem, stopSource := o.stopSystem, o.stopSource
	o.stopSystem, o.stopSource = nil, nil
	o.mu.Unlock()

	if stopSystem != nil {
		stopSystem()
	}
	if stopSource != nil {
		stopSource()
	}
	return nil
}

func (o *Orchestrator) reloadSource(ctx context.Context) {
	if _, err := o.deps.Loader.Load(ctx, o.source); err != nil {
		o.logger().Warn(ctx, "reload failed; keeping registered themes", "source", o.source, "error", err)
		return
	}
	if _, err := o.Refresh(ctx); err != nil && !errors.Is(err, ErrClosed) {
		o.logger().Warn(ctx, "refresh after reload failed", "error", err)
	}
}

func (o *Orchestrator) syncSystemSubscription(ctx context.Context) {
	o.mu.Lock()
	wantSystem := o.mode == theme.RequestSystem && !o.closed
	stop := o.stopSystem
	if !wantSystem {
		o.stopSystem = nil
	}
	o.mu.Unlock()

	if !wantSystem {
		if stop != nil {
			stop()
		}
		return
	}
	if stop != nil || o.deps.Watcher == nil {
		return
	}

	correlationID := ports.GetCorrelationID(ctx)
	unsubscribe := o.deps.Watcher.OnChange(func(mode theme.Mode) {
		cbCtx := ports.WithCorrelationID(context.Background(), correlationID)
		o.publish(cbCtx, ports.Event{
			Type:   ports.EventSystemModeChanged,
			Fields: map[string]interface{}{"mode": string(mode)},
		})
		if _, err := o.Refresh(cbCtx); err != nil && !errors.Is(err, ErrClosed) {
			o.logger().Warn(cbCtx, "refresh after system mode change failed", "error", err)
		}
	})

	o.mu.Lock()
	if o.closed || o.stopSystem != nil || o.mode != theme.RequestSystem {
		o.mu.Unlock()
		unsubscribe()
		return
	}
	o.stopSystem = unsubscribe
	o.mu.Unlock()
}

func (o *Orchestrator) systemSource() theme.SystemModeSource {
	if o.deps.Watcher == nil {
		return nil
	}
	return watcherSource{o.deps.Watcher}
}

type watcherSource struct {
	w *sysmode.Watcher
}

func (s watcherSource) SystemMode() theme.Mode { return s.w.Current() }

func (o *Orchestrator) publish(ctx context.Context, event ports.DomainEvent) {
	if o.deps.Publisher == nil {
		return
	}
	if err := o.deps.Publisher.Publish(ctx, event); err != nil {
		o.logger().Warn(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func (o *Orchestrator) logger() ports.Logger {
	if o.deps.Logger == nil {
		return nopLogger{}
	}
	return o.deps.Logger
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...interface{}) {}
func (nopLogger) Info(context.Context, string, ...interface{})  {}
func (nopLogger) Warn(context.Context, string, ...interface{})  {}
func (nopLogger) Error(context.Context, string, ...interface{}) {}
func (n nopLogger) With(...interface{}) ports.Logger            { return n }
