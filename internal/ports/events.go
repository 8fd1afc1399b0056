package ports

import "context"

const (
	// EventThemeApplied is emitted after a resolved theme has been published.
	EventThemeApplied = "theme.applied"
	// EventSourceLoaded is emitted after a token source registered its themes.
	EventSourceLoaded = "theme.source.loaded"
	// EventSourceFailed is emitted when a token source could not be loaded.
	EventSourceFailed = "theme.source.failed"
	// EventSystemModeChanged is emitted when the OS light/dark preference flips.
	EventSystemModeChanged = "theme.system_mode.changed"
)

// DomainEvent represents a significant occurrence in the theme pipeline.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures should be
// returned rather than panicking so publishers can keep delivering.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events.
type Subscription interface {
	Unsubscribe()
}

// Event is a ready-made DomainEvent carrying a map payload.
type Event struct {
	Type   string
	Fields map[string]interface{}
}

// EventType implements DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements DomainEvent.
func (e Event) Payload() interface{} { return e.Fields }
