package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/themer/internal/preview"
	"github.com/alexisbeaulieu97/themer/internal/theme"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the themes a token source provides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, app *AppContext, opts *listOptions) error {
	ctx, _ := app.CommandContext(cmd, "list")

	if _, err := app.Loader.Load(ctx, app.Config.Source); err != nil {
		return newCommandError("list themes", app.Config.Source, err, "Check that the source exists and is reachable.")
	}

	if app.Registry.Len() == 0 {
		return renderEmptyList(cmd, app.Config.Source)
	}
	themes := app.Registry.All()

	if opts.jsonOutput {
		return renderListJSON(cmd, app.Config.Source, themes)
	}
	return renderListTable(cmd, themes)
}

func renderEmptyList(cmd *cobra.Command, source string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "No valid themes in %s.\n", source)
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'themer validate' to see why candidates were rejected.")
	return nil
}

func renderListTable(cmd *cobra.Command, themes []theme.Tokens) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "NAME\tVARIANT\tFONT\tPALETTE")

	color := supportsColor(cmd.OutOrStdout())
	for _, t := range themes {
		palette := t.LightPalette().Primary
		if color {
			palette = preview.Swatches(t.LightPalette())
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", t.Name, t.Variant(), t.Font.Family, palette)
	}

	return writer.Flush()
}

type listJSONTheme struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
	Font    string `json:"font"`
	Primary string `json:"primary"`
	Bg      string `json:"bg"`
}

type listJSONPayload struct {
	Version string          `json:"version"`
	Source  string          `json:"source"`
	Count   int             `json:"count"`
	Themes  []listJSONTheme `json:"themes"`
}

func renderListJSON(cmd *cobra.Command, source string, themes []theme.Tokens) error {
	payload := listJSONPayload{
		Version: "1.0",
		Source:  source,
		Count:   len(themes),
		Themes:  make([]listJSONTheme, len(themes)),
	}

	for i, t := range themes {
		light := t.LightPalette()
		payload.Themes[i] = listJSONTheme{
			Name:    t.Name,
			Variant: t.Variant().String(),
			Font:    t.Font.Family,
			Primary: light.Primary,
			Bg:      light.Bg,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsColor(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
