package orchestrator

import (
	"context"

	"github.com/alexisbeaulieu97/themer/internal/ports"
	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// Persistence keys for the last applied selection.
const (
	KeyThemeName = "theme:name"
	KeyThemeMode = "theme:mode"
)

// Selection is a persisted theme name and requested mode.
type Selection struct {
	Theme string
	Mode  theme.RequestedMode
}

// LoadSelection reads the last persisted selection from store. Missing or
// invalid values are left empty.
func LoadSelection(store ports.KVStore) Selection {
	var sel Selection
	if store == nil {
		return sel
	}
	if name, ok, err := store.Get(KeyThemeName); err == nil && ok {
		sel.Theme = name
	}
	if raw, ok, err := store.Get(KeyThemeMode); err == nil && ok {
		if mode, err := theme.ParseMode(raw); err == nil {
			sel.Mode = mode
		}
	}
	return sel
}

func (o *Orchestrator) persistSelection(ctx context.Context, name string, mode theme.RequestedMode) {
	if o.deps.Store == nil {
		return
	}
	if err := o.deps.Store.Set(KeyThemeName, name); err != nil {
		o.logger().Warn(ctx, "failed to persist theme selection", "error", err)
		return
	}
	if err := o.deps.Store.Set(KeyThemeMode, string(mode)); err != nil {
		o.logger().Warn(ctx, "failed to persist mode selection", "error", err)
	}
}
