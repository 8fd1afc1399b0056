package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themer/internal/preview"
)

type showOptions struct {
	width int
	scope scopeFlags
}

func newShowCmd(app *AppContext) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show [theme]",
		Short: "Preview a resolved theme in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, app, opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 60, "Card width")
	opts.scope.bind(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string, app *AppContext, opts *showOptions) error {
	ctx, _ := app.CommandContext(cmd, "show")

	res, err := resolveSelection(ctx, cmd, args, app, &opts.scope, true)
	if err != nil {
		return err
	}

	card := preview.NewCard(res.Merged, res.Mode).
		WithWidth(opts.width).
		WithMetadata("requested", string(res.Requested)).
		WithMetadata("source", app.Config.Source)
	if !res.Overrides.IsEmpty() {
		card = card.WithMetadata("overrides", "applied")
	}

	fmt.Fprintln(cmd.OutOrStdout(), card.View())
	return nil
}
