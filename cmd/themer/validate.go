package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

func newValidateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [source]",
		Short: "Check every theme candidate in a token source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, app)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, app *AppContext) error {
	ctx, logger := app.CommandContext(cmd, "validate")

	source := app.Config.Source
	if len(args) > 0 {
		source = args[0]
	}

	candidates, err := app.Loader.Inspect(ctx, source)
	if err != nil {
		return newCommandError("validate source", source, err, "Check that the source exists and holds a JSON or YAML theme list.")
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "INDEX\tNAME\tRESULT")

	invalid := 0
	for _, c := range candidates {
		result := "ok"
		if !c.Valid() {
			invalid++
			result = c.Err.Error()
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\n", c.Index, valueOrFallback(c.Name, "(unnamed)"), result)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	logger.Debug(ctx, "source validated", "source", source, "candidates", len(candidates), "invalid", invalid)

	if invalid > 0 {
		cause := fmt.Errorf("%d of %d candidates invalid: %w", invalid, len(candidates), themeerrors.ErrInvalidTokens)
		return newCommandError("validate source", source, cause, "Fix the fields reported above; invalid themes are skipped at load time.")
	}
	if len(candidates) == 0 {
		return newCommandError("validate source", source, errors.New("no theme candidates found"),
			"A source is either a JSON array of themes or an object with a \"themes\" array.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d themes valid.\n", len(candidates))
	return nil
}
