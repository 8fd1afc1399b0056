package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themer/internal/cssvars"
	"github.com/alexisbeaulieu97/themer/internal/ports"
	"github.com/alexisbeaulieu97/themer/internal/theme"
	"github.com/alexisbeaulieu97/themer/pkg/diff"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

type cssOptions struct {
	out      string
	showDiff bool
	scope    scopeFlags
}

func newCSSCmd(app *AppContext) *cobra.Command {
	opts := &cssOptions{}

	cmd := &cobra.Command{
		Use:   "css [theme]",
		Short: "Apply a theme and emit its CSS custom properties",
		Long: "Apply resolves the selected theme for the effective mode, layers persisted overrides, " +
			"publishes the result as CSS custom properties and remembers the selection.",
		Aliases: []string{"apply"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCSS(cmd, args, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the stylesheet to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "Show how overrides change the published properties")
	opts.scope.bind(cmd)

	return cmd
}

func runCSS(cmd *cobra.Command, args []string, app *AppContext, opts *cssOptions) error {
	ctx, logger := app.CommandContext(cmd, "css")

	name, mode, err := app.Selection(cmd, args)
	if err != nil {
		return err
	}
	store, err := opts.scope.store(cmd, app)
	if err != nil {
		return newCommandError("open overrides", "scope flags", err, "Use --container page|header|footer|hero|section.")
	}

	var (
		sink ports.StyleSink
		doc  *cssvars.Document
	)
	if opts.out != "" {
		fileSink := cssvars.NewFileSink(opts.out)
		sink, doc = fileSink, fileSink.Document
	} else {
		doc = cssvars.NewDocument()
		sink = doc
	}

	orch, err := app.Orchestrator(ctx, sink, store, name, mode)
	if err != nil {
		return newCommandError("apply theme", name, err, "Use --mode light|dark|system.")
	}
	applied, err := orch.Refresh(ctx)
	if err != nil {
		return newCommandError("apply theme", name, err, "Retry the command.")
	}
	if !applied {
		return newCommandError("apply theme", name, themeerrors.ErrThemeNotFound,
			fmt.Sprintf("Run 'themer list --source %s' to see available themes.", app.Config.Source))
	}

	if opts.showDiff {
		current, _ := orch.Current()
		base, _ := app.Loader.ResolveByName(ctx, name, current.Mode, "")
		return renderOverrideDiff(cmd, name, base, current.Theme, app.Config.HeaderHeight)
	}
	if opts.out != "" {
		logger.Info(ctx, "stylesheet written", "path", opts.out)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.out)
		return nil
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), doc.CSS())
	return err
}

// renderOverrideDiff compares the stylesheet of the base theme with the
// published one.
func renderOverrideDiff(cmd *cobra.Command, name string, base, merged theme.Resolved, headerHeight float64) error {
	baseDoc := cssvars.NewDocument()
	cssvars.Publish(baseDoc, base)
	cssvars.PublishHeaderHeight(baseDoc, headerHeight)

	mergedDoc := cssvars.NewDocument()
	cssvars.Publish(mergedDoc, merged)
	cssvars.PublishHeaderHeight(mergedDoc, headerHeight)

	before, after := []byte(baseDoc.CSS()), []byte(mergedDoc.CSS())
	out := diff.GenerateUnifiedDiff(before, after, name+" (base)", name+" (overrides)")
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Overrides do not change any property.")
		return nil
	}
	removed, added := diff.ChangedLines(before, after)
	fmt.Fprint(cmd.OutOrStdout(), out)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d removed, %d added\n", removed, added)
	return nil
}
