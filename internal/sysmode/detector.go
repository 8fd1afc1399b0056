// Package sysmode reports the operating system light/dark preference as seen
// from the terminal, and notifies subscribers when it changes.
package sysmode

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// EnvOverride forces the detected mode when set to light or dark.
const EnvOverride = "THEMER_SYSTEM_MODE"

// Detector reports the current OS preference. Available is false when no
// signal exists, for example without an attached terminal.
type Detector interface {
	theme.SystemModeSource
	Available() bool
}

// TerminalDetector queries the terminal background colour through termenv.
type TerminalDetector struct {
	out    *os.File
	lookup func(string) (string, bool)
}

// NewTerminalDetector creates a detector for out, usually os.Stdout.
func NewTerminalDetector(out *os.File) *TerminalDetector {
	return &TerminalDetector{out: out, lookup: os.LookupEnv}
}

// Available reports whether out is an interactive terminal or the mode is
// forced through EnvOverride.
func (d *TerminalDetector) Available() bool {
	if _, ok := d.forced(); ok {
		return true
	}
	return d.out != nil && term.IsTerminal(int(d.out.Fd()))
}

// SystemMode implements theme.SystemModeSource. It falls back to light when
// no signal is available.
func (d *TerminalDetector) SystemMode() theme.Mode {
	if mode, ok := d.forced(); ok {
		return mode
	}
	if !d.Available() {
		return theme.ModeLight
	}
	if termenv.NewOutput(d.out).HasDarkBackground() {
		return theme.ModeDark
	}
	return theme.ModeLight
}

func (d *TerminalDetector) forced() (theme.Mode, bool) {
	if d.lookup == nil {
		return "", false
	}
	v, ok := d.lookup(EnvOverride)
	if !ok {
		return "", false
	}
	mode := theme.Mode(strings.ToLower(strings.TrimSpace(v)))
	if !mode.Valid() {
		return "", false
	}
	return mode, true
}

// Static is a Detector with a fixed answer.
type Static theme.Mode

// SystemMode implements theme.SystemModeSource.
func (s Static) SystemMode() theme.Mode {
	if m := theme.Mode(s); m.Valid() {
		return m
	}
	return theme.ModeLight
}

// Available implements Detector.
func (s Static) Available() bool { return theme.Mode(s).Valid() }
