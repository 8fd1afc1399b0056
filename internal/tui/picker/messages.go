package picker

import "github.com/alexisbeaulieu97/themer/internal/theme"

// ThemeAppliedMsg reports the outcome of selecting a theme.
type ThemeAppliedMsg struct {
	Name    string
	Applied bool
	Err     error
}

// ModeChangedMsg reports the outcome of switching the requested mode.
type ModeChangedMsg struct {
	Mode    theme.RequestedMode
	Applied bool
	Err     error
}
