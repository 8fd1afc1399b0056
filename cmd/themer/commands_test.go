package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themer/internal/theme"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

const appleTheme = `{"name":"apple","font":{"family":"Inter","weightRegular":400,"weightMedium":500,"weightBold":700,"sizeBody":"16px","sizeH1":"clamp(32px, 4vw, 48px)","sizeH2":"32px","sizeH3":"24px","lineHeight":1.5},"radius":"12px","spacing":8,"colors":{"bg":"#ffffff","surface":"#f5f5f7","text":"#111111","textMuted":"#666666","primary":"#0071e3","primaryContrast":"#ffffff","border":"#e0e0e0"}}`

const materialTheme = `{"name":"material","font":{"family":"Roboto","weightRegular":400,"weightMedium":500,"weightBold":700,"sizeBody":"16px","sizeH1":"57px","sizeH2":"45px","sizeH3":"36px","lineHeight":1.4},"radius":"8px","spacing":4,"modes":{"light":{"colors":{"bg":"#fffbfe","surface":"#f4eff4","text":"#1c1b1f","textMuted":"#49454f","primary":"#6750a4","primaryContrast":"#ffffff","border":"#79747e"}},"dark":{"colors":{"bg":"#1c1b1f","surface":"#2b2930","text":"#e6e1e5","textMuted":"#cac4d0","primary":"#d0bcff","primaryContrast":"#381e72","border":"#938f99"}}}}`

const brokenTheme = `{"name":"broken","font":{"family":"Inter"},"radius":"4px","spacing":4,"colors":{"bg":"#000"}}`

type cliEnv struct {
	dir    string
	config string
}

// newCLIEnv writes a token source and a config file that keeps state in a
// temporary directory.
func newCLIEnv(t *testing.T, themes ...string) cliEnv {
	t.Helper()

	dir := t.TempDir()
	source := filepath.Join(dir, "themes.json")
	require.NoError(t, os.WriteFile(source, []byte(`{"themes":[`+strings.Join(themes, ",")+`]}`), 0o644))

	config := filepath.Join(dir, "themer.yaml")
	content := "source: " + source + "\n" +
		"store:\n  backend: file\n  path: " + filepath.Join(dir, "state.json") + "\n" +
		"export_dir: " + dir + "\n" +
		"log:\n  level: error\n"
	require.NoError(t, os.WriteFile(config, []byte(content), 0o644))

	return cliEnv{dir: dir, config: config}
}

func (e cliEnv) run(args ...string) (string, error) {
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", e.config}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func TestListCommand_TableOutput(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme, materialTheme, brokenTheme)

	stdout, err := env.run("list")
	require.NoError(t, err)
	require.Contains(t, stdout, "NAME")
	require.Contains(t, stdout, "apple")
	require.Contains(t, stdout, "single")
	require.Contains(t, stdout, "material")
	require.Contains(t, stdout, "multi")
	require.NotContains(t, stdout, "broken")
}

func TestListCommand_JSONOutput(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme, materialTheme)

	stdout, err := env.run("list", "--json")
	require.NoError(t, err)

	var payload listJSONPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Equal(t, 2, payload.Count)
	require.Equal(t, "apple", payload.Themes[0].Name)
	require.Equal(t, "#0071e3", payload.Themes[0].Primary)
	require.Equal(t, "multi", payload.Themes[1].Variant)
}

func TestListCommand_MissingSource(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	_, err := env.run("list", "--source", filepath.Join(env.dir, "missing.json"))
	require.Error(t, err)
	require.ErrorIs(t, err, themeerrors.ErrSourceUnavailable)
	require.Contains(t, err.Error(), "Suggestion:")
}

func TestValidateCommandReportsInvalidCandidates(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme, brokenTheme)

	stdout, err := env.run("validate")
	require.Error(t, err)
	require.ErrorIs(t, err, themeerrors.ErrInvalidTokens)
	require.Contains(t, stdout, "apple")
	require.Contains(t, stdout, "broken")
	require.Contains(t, err.Error(), "1 of 2 candidates invalid")
}

func TestValidateCommandAcceptsValidSource(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme, materialTheme)

	stdout, err := env.run("validate")
	require.NoError(t, err)
	require.Contains(t, stdout, "2 themes valid.")
}

func TestCSSCommandPublishesProperties(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	stdout, err := env.run("css", "apple")
	require.NoError(t, err)
	require.Contains(t, stdout, `:root[data-theme="apple"] {`)
	require.Contains(t, stdout, "--app-primary: #0071e3;")
	require.Contains(t, stdout, "--app-link: #0071e3;")
	require.Contains(t, stdout, "--cds-background: #ffffff;")
	require.Contains(t, stdout, "--app-header-height: 56px;")
}

func TestCSSCommandUnknownTheme(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	_, err := env.run("css", "nope")
	require.ErrorIs(t, err, themeerrors.ErrThemeNotFound)
}

func TestCSSCommandWritesFile(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)
	out := filepath.Join(env.dir, "out", "theme.css")

	stdout, err := env.run("css", "apple", "--out", out)
	require.NoError(t, err)
	require.Contains(t, stdout, "Wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "--app-bg: #ffffff;")
}

func TestCSSCommandRemembersSelection(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme, materialTheme)

	_, err := env.run("css", "material", "--mode", "dark")
	require.NoError(t, err)

	stdout, err := env.run("css")
	require.NoError(t, err)
	require.Contains(t, stdout, `data-theme="material"`)
	require.Contains(t, stdout, "--app-bg: #1c1b1f;")
}

func TestOverridesRoundTripThroughCSS(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	stdout, err := env.run("overrides", "set", "primary=#ff3366", "scaleFactor=2")
	require.NoError(t, err)
	require.Contains(t, stdout, "theme:overrides")

	stdout, err = env.run("overrides", "show")
	require.NoError(t, err)
	require.Contains(t, stdout, `"primary": "#ff3366"`)

	stdout, err = env.run("css", "apple")
	require.NoError(t, err)
	require.Contains(t, stdout, "--app-primary: #ff3366;")
	require.Contains(t, stdout, "--app-fs-body: 32.00px;")
	require.Contains(t, stdout, "--app-fs-h1: clamp(64.00px, 4vw, 96.00px);")

	stdout, err = env.run("css", "apple", "--diff")
	require.NoError(t, err)
	require.Contains(t, stdout, "-  --app-primary: #0071e3;")
	require.Contains(t, stdout, "+  --app-primary: #ff3366;")

	_, err = env.run("overrides", "clear")
	require.NoError(t, err)

	stdout, err = env.run("css", "apple")
	require.NoError(t, err)
	require.Contains(t, stdout, "--app-primary: #0071e3;")
}

func TestOverridesSetRejectsBadInput(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	tests := []struct {
		name string
		arg  string
	}{
		{name: "missing equals", arg: "primary"},
		{name: "unknown key", arg: "shadow=1"},
		{name: "negative scale", arg: "scaleFactor=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run("overrides", "set", tt.arg)
			require.Error(t, err)
			assert.ErrorIs(t, err, themeerrors.ErrInvalidTokens)
		})
	}
}

func TestOverridesScopedRecordIsSeparate(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	stdout, err := env.run("overrides", "set", "--container", "header", "bg=#000000")
	require.NoError(t, err)
	require.Contains(t, stdout, "theme:overrides:/:header:default")

	stdout, err = env.run("overrides", "show")
	require.NoError(t, err)
	require.Equal(t, "{}\n", stdout)

	_, err = env.run("overrides", "show", "--container", "sidebar")
	require.Error(t, err)
}

func TestResolveCommandOutputs(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, materialTheme)

	stdout, err := env.run("resolve", "material", "--mode", "dark")
	require.NoError(t, err)

	var resolved theme.Resolved
	require.NoError(t, json.Unmarshal([]byte(stdout), &resolved))
	require.Equal(t, "material", resolved.Name)
	require.Equal(t, "#1c1b1f", resolved.Colors.Bg)

	stdout, err = env.run("resolve", "material", "--output", "yaml")
	require.NoError(t, err)
	require.Contains(t, stdout, "name: material")
	require.Contains(t, stdout, "#6750a4")
}

func TestResolveDoesNotPersistSelection(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme, materialTheme)

	_, err := env.run("resolve", "material")
	require.NoError(t, err)

	stdout, err := env.run("css")
	require.NoError(t, err)
	require.Contains(t, stdout, `data-theme="apple"`)
}

func TestResolveDerivesDarkPalette(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	stdout, err := env.run("resolve", "apple", "--mode", "dark", "--derive-dark")
	require.NoError(t, err)

	var resolved theme.Resolved
	require.NoError(t, json.Unmarshal([]byte(stdout), &resolved))
	require.NotEqual(t, "#ffffff", resolved.Colors.Bg)
	require.Equal(t, "#0071e3", resolved.Colors.Primary)
}

func TestShowCommandRendersCard(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	stdout, err := env.run("show", "apple")
	require.NoError(t, err)
	require.Contains(t, stdout, "apple")
	require.Contains(t, stdout, "Inter")
}

func TestExportCommandWritesMergedFile(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	_, err := env.run("overrides", "set", "bg=#101010")
	require.NoError(t, err)

	stdout, err := env.run("export", "apple")
	require.NoError(t, err)

	path := filepath.Join(env.dir, "apple-light-merged.json")
	require.Contains(t, stdout, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exported theme.Resolved
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Equal(t, "#101010", exported.Colors.Bg)
}

func TestMemoryStoreForgetsBetweenRuns(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	_, err := env.run("--store", "memory", "overrides", "set", "bg=#101010")
	require.NoError(t, err)

	stdout, err := env.run("--store", "memory", "overrides", "show")
	require.NoError(t, err)
	require.Equal(t, "{}\n", stdout)
}

func TestInvalidConfigValue(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	_, err := env.run("--mode", "sepia", "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to load configuration")
}

func TestJSONLogsCarryCorrelationID(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t, appleTheme)

	root := newRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs([]string{"--config", env.config, "--log-format", "json", "--log-level", "info", "list"})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "theme source loaded", entry["message"])
	require.NotEmpty(t, entry["correlation_id"])
}
