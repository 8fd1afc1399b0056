package logging

import (
	"context"

	"github.com/alexisbeaulieu97/themer/internal/ports"
)

// CommandContext tags ctx with a correlation id shared by every log line of
// one CLI invocation. An id already present on ctx is kept.
func CommandContext(ctx context.Context) (context.Context, string) {
	if ctx == nil {
		ctx = context.Background()
	}
	if id := ports.GetCorrelationID(ctx); id != "" {
		return ctx, id
	}
	id := ports.GenerateCorrelationID()
	return ports.WithCorrelationID(ctx, id), id
}

// discard drops every entry. Used for silent runs and tests.
type discard struct{}

func (discard) Debug(context.Context, string, ...interface{}) {}
func (discard) Info(context.Context, string, ...interface{})  {}
func (discard) Warn(context.Context, string, ...interface{})  {}
func (discard) Error(context.Context, string, ...interface{}) {}
func (d discard) With(...interface{}) ports.Logger            { return d }

// NewNoOpLogger returns a logger that discards everything.
func NewNoOpLogger() ports.Logger {
	return discard{}
}
