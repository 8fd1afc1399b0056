package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themer/internal/cssvars"
	"github.com/alexisbeaulieu97/themer/internal/tui/picker"
)

type pickOptions struct {
	out   string
	scope scopeFlags
}

func newPickCmd(app *AppContext) *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Browse themes interactively and apply one to a stylesheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "theme.css", "Stylesheet written on every apply")
	opts.scope.bind(cmd)

	return cmd
}

func runPick(cmd *cobra.Command, app *AppContext, opts *pickOptions) error {
	ctx, _ := app.CommandContext(cmd, "pick")

	if _, err := app.Loader.Load(ctx, app.Config.Source); err != nil {
		return newCommandError("load themes", app.Config.Source, err, "Check that the source exists and is reachable.")
	}
	name, mode, err := app.Selection(cmd, nil)
	if err != nil {
		return err
	}
	store, err := opts.scope.store(cmd, app)
	if err != nil {
		return newCommandError("open overrides", "scope flags", err, "Use --container page|header|footer|hero|section.")
	}

	orch, err := app.Orchestrator(ctx, cssvars.NewFileSink(opts.out), store, name, mode)
	if err != nil {
		return newCommandError("start picker", name, err, "Use --mode light|dark|system.")
	}

	model := picker.NewModel(ctx, picker.Options{
		Themes:  app.Registry.All(),
		Applier: orch,
		Resolve: app.Loader.Resolve,
		System:  app.Detector,
		Active:  name,
		Mode:    mode,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	final, err := program.Run()
	if err != nil {
		return newCommandError("run picker", app.Config.Source, err, "Run the picker in an interactive terminal.")
	}

	if m, ok := final.(picker.Model); ok && m.Active() != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %s (%s) to %s\n", m.Active(), m.Mode(), opts.out)
	}
	return nil
}
