package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &AppContext{}

	cmd := &cobra.Command{
		Use:           "themer",
		Short:         "Themer resolves design-token themes into CSS custom properties",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipAppContext(cmd) {
				return nil
			}
			return app.init(cmd, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Config file (default: ./themer.yaml or ~/.themer/themer.yaml)")
	pf.StringP("source", "s", "", "Token source URL or path")
	pf.StringP("theme", "t", "", "Theme name")
	pf.StringP("mode", "m", "", "Mode: light, dark or system")
	pf.Float64("header-height", 0, "Header height in pixels")
	pf.Bool("derive-dark", false, "Derive a dark palette for single-mode themes")
	pf.String("store", "", "Persistence backend: memory, file or sqlite")
	pf.String("store-path", "", "Persistence file location")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text, logfmt or json")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newResolveCmd(app))
	cmd.AddCommand(newCSSCmd(app))
	cmd.AddCommand(newOverridesCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newPickCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func skipAppContext(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}
