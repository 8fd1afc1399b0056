package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/themer/internal/cssvars"
	"github.com/alexisbeaulieu97/themer/internal/overrides"
	"github.com/alexisbeaulieu97/themer/internal/theme"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

type resolveOptions struct {
	noOverrides bool
	scope       scopeFlags
}

func newResolveCmd(app *AppContext) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve [theme]",
		Short: "Print the resolved theme for the effective mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, app, opts)
		},
	}

	cmd.Flags().String("output", "", "Output format: json, yaml or css")
	cmd.Flags().BoolVar(&opts.noOverrides, "no-overrides", false, "Skip persisted overrides")
	opts.scope.bind(cmd)

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, app *AppContext, opts *resolveOptions) error {
	ctx, _ := app.CommandContext(cmd, "resolve")

	res, err := resolveSelection(ctx, cmd, args, app, &opts.scope, !opts.noOverrides)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch app.Config.Output {
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(res.Merged); err != nil {
			return err
		}
		return encoder.Close()
	case "css":
		doc := cssvars.NewDocument()
		cssvars.Publish(doc, res.Merged)
		cssvars.PublishHeaderHeight(doc, app.Config.HeaderHeight)
		_, err := fmt.Fprint(out, doc.CSS())
		return err
	default:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(res.Merged)
	}
}

// resolution is a theme resolved outside an orchestrator, for read-only
// commands that must not touch the persisted selection.
type resolution struct {
	Name      string
	Requested theme.RequestedMode
	Mode      theme.Mode
	Base      theme.Resolved
	Merged    theme.Resolved
	Overrides overrides.Overrides
}

func resolveSelection(ctx context.Context, cmd *cobra.Command, args []string, app *AppContext, scope *scopeFlags, withOverrides bool) (resolution, error) {
	name, requested, err := app.Selection(cmd, args)
	if err != nil {
		return resolution{}, err
	}
	mode := requested.Effective(app.Detector)

	base, ok := app.Loader.ResolveByName(ctx, name, mode, app.Config.Source)
	if !ok {
		return resolution{}, newCommandError("resolve theme", name, themeerrors.ErrThemeNotFound,
			fmt.Sprintf("Run 'themer list --source %s' to see available themes.", app.Config.Source))
	}

	res := resolution{Name: name, Requested: requested, Mode: mode, Base: base, Merged: base}
	if withOverrides {
		store, err := scope.store(cmd, app)
		if err != nil {
			return resolution{}, newCommandError("open overrides", "scope flags", err, "Use --container page|header|footer|hero|section.")
		}
		res.Overrides = store.Load(ctx)
		res.Merged = overrides.Apply(base, res.Overrides)
	}
	return res, nil
}
