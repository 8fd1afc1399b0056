package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themer/internal/overrides"
)

type scopeFlags struct {
	route     string
	container string
	element   string
}

func (f *scopeFlags) bind(cmd *cobra.Command) {
	def := overrides.DefaultScope()
	cmd.Flags().StringVar(&f.route, "route", def.Route, "Override scope route")
	cmd.Flags().StringVar(&f.container, "container", def.Container, "Override scope container: page, header, footer, hero or section")
	cmd.Flags().StringVar(&f.element, "element", def.Element, "Override scope element")
}

// store opens the unscoped override record unless a scope flag was given.
func (f *scopeFlags) store(cmd *cobra.Command, app *AppContext) (*overrides.Store, error) {
	flags := cmd.Flags()
	if !flags.Changed("route") && !flags.Changed("container") && !flags.Changed("element") {
		return overrides.NewStore(app.Store, app.Logger.With("component", "overrides")), nil
	}
	return app.OverrideStore(overrides.Scope{Route: f.route, Container: f.container, Element: f.element})
}
