package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themer/internal/overrides"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

func newOverridesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage persisted theme overrides",
	}

	cmd.AddCommand(newOverridesShowCmd(app))
	cmd.AddCommand(newOverridesSetCmd(app))
	cmd.AddCommand(newOverridesClearCmd(app))

	return cmd
}

func newOverridesShowCmd(app *AppContext) *cobra.Command {
	scope := &scopeFlags{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the persisted overrides as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _ := app.CommandContext(cmd, "overrides")
			store, err := scope.store(cmd, app)
			if err != nil {
				return newCommandError("open overrides", "scope flags", err, "Use --container page|header|footer|hero|section.")
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(store.Load(ctx))
		},
	}
	scope.bind(cmd)

	return cmd
}

func newOverridesSetCmd(app *AppContext) *cobra.Command {
	scope := &scopeFlags{}

	cmd := &cobra.Command{
		Use:   "set key=value...",
		Short: "Set override fields; an empty value clears a field",
		Example: "  themer overrides set primary=#ff3366 scaleFactor=1.1\n" +
			"  themer overrides set --container header bg=#000000",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "overrides")
			store, err := scope.store(cmd, app)
			if err != nil {
				return newCommandError("open overrides", "scope flags", err, "Use --container page|header|footer|hero|section.")
			}

			current := store.Load(ctx)
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok {
					return newCommandError("set override", arg, themeerrors.NewValidationError(arg, "expected key=value", nil),
						fmt.Sprintf("Known keys: %s.", strings.Join(overrides.Keys(), ", ")))
				}
				if err := current.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
					return newCommandError("set override", key, err,
						fmt.Sprintf("Known keys: %s. Numbers must not be negative.", strings.Join(overrides.Keys(), ", ")))
				}
			}

			if err := store.Save(ctx, current); err != nil {
				return newCommandError("save overrides", store.Key(), err, "Check the store path permissions.")
			}
			logger.Info(ctx, "overrides saved", "key", store.Key(), "fields", len(args))
			fmt.Fprintf(cmd.OutOrStdout(), "Saved overrides to %s\n", store.Key())
			return nil
		},
	}
	scope.bind(cmd)

	return cmd
}

func newOverridesClearCmd(app *AppContext) *cobra.Command {
	scope := &scopeFlags{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every persisted override",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _ := app.CommandContext(cmd, "overrides")
			store, err := scope.store(cmd, app)
			if err != nil {
				return newCommandError("open overrides", "scope flags", err, "Use --container page|header|footer|hero|section.")
			}
			if err := store.Clear(ctx); err != nil {
				return newCommandError("clear overrides", store.Key(), err, "Check the store path permissions.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared overrides at %s\n", store.Key())
			return nil
		},
	}
	scope.bind(cmd)

	return cmd
}
