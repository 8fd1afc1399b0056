package overrides

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themer/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themer/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/themer/internal/theme"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func baseTheme() theme.Resolved {
	spacing := 0.2
	return theme.Resolved{
		Base: theme.Base{
			Name: "apple",
			Font: theme.Font{
				Family:        "Inter",
				WeightRegular: 400,
				WeightMedium:  500,
				WeightBold:    700,
				SizeBody:      "clamp(14px, 1.05vw, 16px)",
				SizeH1:        "48px",
				SizeH2:        "2rem",
				SizeH3:        "var(--h3)",
				LineHeight:    1.5,
				LetterSpacing: &spacing,
			},
			Radius:  "12px",
			Spacing: 8,
		},
		Colors: theme.Palette{
			Bg:              "#ffffff",
			Surface:         "#f5f5f7",
			Text:            "#111111",
			TextMuted:       "#666666",
			Primary:         "#0071e3",
			PrimaryContrast: "#ffffff",
			Border:          "#e0e0e0",
		},
	}
}

func TestApplyEmptyIsNoOp(t *testing.T) {
	t.Parallel()

	base := baseTheme()
	require.Equal(t, base, Apply(base, Overrides{}))
}

func TestApplyScaleFactorOneLeavesSizes(t *testing.T) {
	t.Parallel()

	base := baseTheme()
	out := Apply(base, Overrides{ScaleFactor: numPtr(1)})
	require.Equal(t, base.Font, out.Font)
}

func TestApplyScaleFactorTwo(t *testing.T) {
	t.Parallel()

	out := Apply(baseTheme(), Overrides{ScaleFactor: numPtr(2)})
	assert.Equal(t, "clamp(28.00px, 1.05vw, 32.00px)", out.Font.SizeBody)
	assert.Equal(t, "96.00px", out.Font.SizeH1)
	assert.Equal(t, "4.00rem", out.Font.SizeH2)
	assert.Equal(t, "var(--h3)", out.Font.SizeH3)
	assert.Equal(t, "12px", out.Radius)
	assert.Equal(t, 8.0, out.Spacing)
}

func TestScaleSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		expr   string
		factor float64
		want   string
	}{
		{name: "px", expr: "16px", factor: 2, want: "32.00px"},
		{name: "rem fraction", expr: "1.25rem", factor: 1.2, want: "1.50rem"},
		{name: "clamp bounds only", expr: "clamp(14px, 1.05vw, 16px)", factor: 2, want: "clamp(28.00px, 1.05vw, 32.00px)"},
		{name: "clamp preferred px untouched", expr: "clamp(1rem, 20px, 2rem)", factor: 0.5, want: "clamp(0.50rem, 20px, 1.00rem)"},
		{name: "clamp with two args", expr: "clamp(14px, 16px)", factor: 2, want: "clamp(28.00px, 32.00px)"},
		{name: "unknown unit", expr: "1.2em", factor: 2, want: "1.2em"},
		{name: "keyword", expr: "larger", factor: 3, want: "larger"},
		{name: "calc", expr: "calc(1rem + 2px)", factor: 2, want: "calc(2.00rem + 4.00px)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ScaleSize(tt.expr, tt.factor))
		})
	}
}

func TestApplyColorsAndWeights(t *testing.T) {
	t.Parallel()

	base := baseTheme()
	out := Apply(base, Overrides{
		Bg:         strPtr("#000000"),
		Surface:    strPtr(""),
		Link:       strPtr("#ff0000"),
		WeightBold: numPtr(800),
	})

	assert.Equal(t, "#000000", out.Colors.Bg)
	assert.Equal(t, "#f5f5f7", out.Colors.Surface, "empty override keeps base")
	assert.Equal(t, "#ff0000", out.Colors.Link)
	assert.Equal(t, 800.0, out.Font.WeightBold)
	assert.Equal(t, 400.0, out.Font.WeightRegular)

	assert.Equal(t, "#ffffff", base.Colors.Bg, "base must not be mutated")
	assert.Equal(t, 700.0, base.Font.WeightBold)
}

func TestApplyDoesNotShareLetterSpacing(t *testing.T) {
	t.Parallel()

	base := baseTheme()
	out := Apply(base, Overrides{})
	*out.Font.LetterSpacing = 9
	require.Equal(t, 0.2, *base.Font.LetterSpacing)
}

func TestOverridesSet(t *testing.T) {
	t.Parallel()

	var o Overrides
	require.NoError(t, o.Set("primary", "#123456"))
	require.NoError(t, o.Set("scaleFactor", "1.1"))
	require.Equal(t, "#123456", *o.Primary)
	require.Equal(t, 1.1, *o.ScaleFactor)

	require.NoError(t, o.Set("primary", ""))
	require.Nil(t, o.Primary)

	err := o.Set("scaleFactor", "-1")
	require.ErrorIs(t, err, themeerrors.ErrInvalidTokens)
	require.Equal(t, 1.1, *o.ScaleFactor)

	require.Error(t, o.Set("weightBold", "heavy"))
	require.Error(t, o.Set("radius", "4px"))
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(storage.NewMemoryStore(), logging.NewNoOpLogger())

	require.True(t, store.Load(ctx).IsEmpty())

	want := Overrides{Bg: strPtr("#101010"), ScaleFactor: numPtr(1.25), WeightMedium: numPtr(600)}
	require.NoError(t, store.Save(ctx, want))
	require.Equal(t, want, store.Load(ctx))

	replacement := Overrides{Text: strPtr("#eeeeee")}
	require.NoError(t, store.Save(ctx, replacement))
	require.Equal(t, replacement, store.Load(ctx))

	require.NoError(t, store.Clear(ctx))
	require.Equal(t, Overrides{}, store.Load(ctx))
}

func TestStoreMalformedRecordLoadsEmpty(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(Key, "{not valid"))

	store := NewStore(kv, logging.NewNoOpLogger())
	require.Equal(t, Overrides{}, store.Load(context.Background()))

	require.NoError(t, kv.Set(Key, `{"scaleFactor":-2}`))
	require.Equal(t, Overrides{}, store.Load(context.Background()))
}

func TestStoreReadFailureLoadsEmpty(t *testing.T) {
	t.Parallel()

	store := NewStore(failingKV{}, nil)
	require.Equal(t, Overrides{}, store.Load(context.Background()))
	require.Error(t, store.Save(context.Background(), Overrides{Bg: strPtr("#000")}))
}

func TestStoreRejectsInvalidSave(t *testing.T) {
	t.Parallel()

	store := NewStore(storage.NewMemoryStore(), nil)
	err := store.Save(context.Background(), Overrides{WeightBold: numPtr(-100)})
	require.ErrorIs(t, err, themeerrors.ErrInvalidTokens)
}

func TestScopedStoreKeys(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemoryStore()
	ctx := context.Background()

	pageStore, err := NewScopedStore(kv, DefaultScope(), nil)
	require.NoError(t, err)
	require.Equal(t, "theme:overrides:/:page:default", pageStore.Key())

	heroStore, err := NewScopedStore(kv, Scope{Route: "/pricing", Container: "hero", Element: "title"}, nil)
	require.NoError(t, err)

	require.NoError(t, heroStore.Save(ctx, Overrides{Primary: strPtr("#ff00ff")}))
	require.True(t, pageStore.Load(ctx).IsEmpty())
	require.True(t, NewStore(kv, nil).Load(ctx).IsEmpty())
	require.Equal(t, "#ff00ff", *heroStore.Load(ctx).Primary)

	_, err = NewScopedStore(kv, Scope{Route: "/", Container: "sidebar", Element: "x"}, nil)
	require.ErrorIs(t, err, themeerrors.ErrInvalidTokens)
	require.Contains(t, err.Error(), "page, header, footer, hero, section")
}

func TestExportMerged(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "exports")
	merged := Apply(baseTheme(), Overrides{Bg: strPtr("#000000")})

	path, err := ExportMerged(dir, merged, theme.ModeDark)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "apple-dark-merged.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  \"name\": \"apple\"")

	var decoded theme.Resolved
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, merged, decoded)
}

func TestExportMergedRejectsUnsafeNames(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "exports")

	for _, name := range []string{"../escaped", "nested/theme", `win\theme`, "..", ".", "a..b", ""} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resolved := baseTheme()
			resolved.Name = name
			path, err := ExportMerged(dir, resolved, theme.ModeLight)
			require.ErrorIs(t, err, themeerrors.ErrInvalidTokens)
			require.Empty(t, path)
		})
	}

	t.Cleanup(func() {
		_, err := os.Stat(filepath.Join(root, "escaped-light-merged.json"))
		assert.True(t, os.IsNotExist(err), "nothing is written outside the export directory")
	})
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingKV) Set(string, string) error         { return errors.New("disk gone") }
func (failingKV) Remove(string) error              { return errors.New("disk gone") }
