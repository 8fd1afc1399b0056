// Package loader fetches token source documents, registers their valid
// themes and resolves themes by name with a one-shot fallback load.
package loader

import (
	"context"
	"net/http"

	"github.com/alexisbeaulieu97/themer/internal/ports"
	"github.com/alexisbeaulieu97/themer/internal/registry"
	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// Loader feeds a Registry from token sources.
type Loader struct {
	registry   *registry.Registry
	client     *http.Client
	logger     ports.Logger
	publisher  ports.EventPublisher
	deriveDark bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger ports.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithPublisher sets the publisher that receives source events.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(l *Loader) { l.publisher = publisher }
}

// WithDeriveDark makes dark renderings of single-mode themes use a derived
// dark palette.
func WithDeriveDark(enabled bool) Option {
	return func(l *Loader) { l.deriveDark = enabled }
}

// New creates a Loader registering into reg.
func New(reg *registry.Registry, opts ...Option) *Loader {
	l := &Loader{
		registry: reg,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Registry returns the registry the loader feeds.
func (l *Loader) Registry() *registry.Registry {
	return l.registry
}

// Load fetches source, registers every valid theme in it and returns exactly
// those themes. Invalid candidates are dropped and logged. A failed fetch
// returns an error matching errors.ErrSourceUnavailable; already registered
// themes are untouched.
func (l *Loader) Load(ctx context.Context, source string) ([]theme.Tokens, error) {
	doc, err := l.fetch(ctx, source)
	if err != nil {
		l.failed(ctx, source, err)
		return nil, err
	}

	raw, err := candidates(source, doc)
	if err != nil {
		l.failed(ctx, source, err)
		return nil, err
	}

	valid := make([]theme.Tokens, 0, len(raw))
	for i, candidate := range raw {
		tokens, err := theme.Parse(candidate)
		if err != nil {
			l.debug(ctx, "dropping invalid theme", "source", source, "index", i, "error", err)
			continue
		}
		valid = append(valid, tokens)
	}

	registered, _ := l.registry.RegisterBatch(valid)
	dropped := len(raw) - len(valid)

	if l.logger != nil {
		l.logger.Info(ctx, "theme source loaded", "source", source, "registered", registered, "dropped", dropped)
	}
	l.publish(ctx, ports.Event{
		Type: ports.EventSourceLoaded,
		Fields: map[string]interface{}{
			"source":     source,
			"registered": registered,
			"dropped":    dropped,
		},
	})

	return valid, nil
}

// ResolveByName resolves name for mode from the registry. When the name is
// missing and fallbackSource is not empty, the source is loaded once and the
// lookup retried. A miss is reported through the bool, never as an error.
func (l *Loader) ResolveByName(ctx context.Context, name string, mode theme.Mode, fallbackSource string) (theme.Resolved, bool) {
	tokens, ok := l.registry.Get(name)
	if !ok && fallbackSource != "" {
		if _, err := l.Load(ctx, fallbackSource); err != nil {
			l.warn(ctx, "fallback theme source unavailable", "theme", name, "source", fallbackSource, "error", err)
		}
		tokens, ok = l.registry.Get(name)
	}
	if !ok {
		l.debug(ctx, "theme not found", "theme", name)
		return theme.Resolved{}, false
	}
	return l.Resolve(tokens, mode), true
}

// Resolve applies the loader's derivation policy to tokens.
func (l *Loader) Resolve(tokens theme.Tokens, mode theme.Mode) theme.Resolved {
	if l.deriveDark {
		return theme.ResolveDerived(tokens, mode)
	}
	return theme.Resolve(tokens, mode)
}

func (l *Loader) failed(ctx context.Context, source string, err error) {
	l.warn(ctx, "theme source failed", "source", source, "error", err)
	l.publish(ctx, ports.Event{
		Type:   ports.EventSourceFailed,
		Fields: map[string]interface{}{"source": source, "error": err.Error()},
	})
}

func (l *Loader) publish(ctx context.Context, event ports.DomainEvent) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.warn(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func (l *Loader) debug(ctx context.Context, msg string, fields ...interface{}) {
	if l.logger != nil {
		l.logger.Debug(ctx, msg, fields...)
	}
}

func (l *Loader) warn(ctx context.Context, msg string, fields ...interface{}) {
	if l.logger != nil {
		l.logger.Warn(ctx, msg, fields...)
	}
}
