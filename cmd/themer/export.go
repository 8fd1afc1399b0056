package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themer/internal/cssvars"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

type exportOptions struct {
	scope scopeFlags
}

func newExportCmd(app *AppContext) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [theme]",
		Short: "Write the applied theme with overrides to {name}-{mode}-merged.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, app, opts)
		},
	}

	cmd.Flags().String("export-dir", "", "Directory for the exported file")
	opts.scope.bind(cmd)

	return cmd
}

func runExport(cmd *cobra.Command, args []string, app *AppContext, opts *exportOptions) error {
	ctx, _ := app.CommandContext(cmd, "export")

	name, mode, err := app.Selection(cmd, args)
	if err != nil {
		return err
	}
	store, err := opts.scope.store(cmd, app)
	if err != nil {
		return newCommandError("open overrides", "scope flags", err, "Use --container page|header|footer|hero|section.")
	}

	orch, err := app.Orchestrator(ctx, cssvars.NewDocument(), store, name, mode)
	if err != nil {
		return newCommandError("export theme", name, err, "Use --mode light|dark|system.")
	}
	applied, err := orch.Refresh(ctx)
	if err != nil {
		return newCommandError("export theme", name, err, "Retry the command.")
	}
	if !applied {
		return newCommandError("export theme", name, themeerrors.ErrThemeNotFound,
			fmt.Sprintf("Run 'themer list --source %s' to see available themes.", app.Config.Source))
	}

	path, err := orch.Export(ctx, app.Config.ExportDir)
	if err != nil {
		return newCommandError("export theme", app.Config.ExportDir, err, "Check that the export directory is writable.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
	return nil
}
