package theme

import (
	"fmt"
	"strings"
)

// Mode is a resting rendering mode: light or dark.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Valid reports whether m is light or dark.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// RequestedMode is what a caller asks for. System is resolved to a Mode
// through a SystemModeSource before anything else observes it.
type RequestedMode string

const (
	RequestLight  RequestedMode = "light"
	RequestDark   RequestedMode = "dark"
	RequestSystem RequestedMode = "system"
)

// ParseMode parses light, dark or system (case-insensitive).
func ParseMode(s string) (RequestedMode, error) {
	switch RequestedMode(strings.ToLower(strings.TrimSpace(s))) {
	case RequestLight:
		return RequestLight, nil
	case RequestDark:
		return RequestDark, nil
	case RequestSystem:
		return RequestSystem, nil
	default:
		return "", fmt.Errorf("invalid mode %q: want light, dark or system", s)
	}
}

// SystemModeSource reports the OS light/dark preference.
type SystemModeSource interface {
	SystemMode() Mode
}

// Effective resolves r to a resting Mode. A nil source resolves system to
// light.
func (r RequestedMode) Effective(src SystemModeSource) Mode {
	switch r {
	case RequestDark:
		return ModeDark
	case RequestSystem:
		if src == nil {
			return ModeLight
		}
		if m := src.SystemMode(); m.Valid() {
			return m
		}
		return ModeLight
	default:
		return ModeLight
	}
}
