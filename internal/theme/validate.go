package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator. Field names in reported
// errors use their JSON keys.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Candidate shapes mirror the authored JSON with pointer fields so that a
// missing key and a zero value can be told apart.

type paletteCandidate struct {
	Bg              *string `json:"bg" validate:"required"`
	Surface         *string `json:"surface" validate:"required"`
	Text            *string `json:"text" validate:"required"`
	TextMuted       *string `json:"textMuted" validate:"required"`
	Primary         *string `json:"primary" validate:"required"`
	PrimaryContrast *string `json:"primaryContrast" validate:"required"`
	Border          *string `json:"border" validate:"required"`
	Link            *string `json:"link"`
	Overlay         *string `json:"overlay"`
}

type fontCandidate struct {
	Family        *string  `json:"family" validate:"required"`
	WeightRegular *float64 `json:"weightRegular" validate:"required"`
	WeightMedium  *float64 `json:"weightMedium" validate:"required"`
	WeightBold    *float64 `json:"weightBold" validate:"required"`
	SizeBody      *string  `json:"sizeBody" validate:"required"`
	SizeH1        *string  `json:"sizeH1" validate:"required"`
	SizeH2        *string  `json:"sizeH2" validate:"required"`
	SizeH3        *string  `json:"sizeH3" validate:"required"`
	LineHeight    *float64 `json:"lineHeight" validate:"required"`
	LetterSpacing *float64 `json:"letterSpacing"`
}

type baseCandidate struct {
	Name    *string        `json:"name" validate:"required,min=1"`
	Font    *fontCandidate `json:"font" validate:"required"`
	Radius  *string        `json:"radius" validate:"required"`
	Spacing *float64       `json:"spacing" validate:"required"`
}

type modeCandidate struct {
	Colors *paletteCandidate `json:"colors" validate:"required"`
}

type modesCandidate struct {
	Light *modeCandidate `json:"light" validate:"required"`
	Dark  *modeCandidate `json:"dark" validate:"required"`
}

// Validate reports whether raw is a structurally valid single- or
// multi-mode token set. It never panics on arbitrary input.
func Validate(raw []byte) bool {
	_, err := Parse(raw)
	return err == nil
}

// Parse decodes and validates one untrusted token candidate. Failures are
// *errors.ValidationError values matching errors.ErrInvalidTokens.
//
// A candidate carrying a valid modes object is multi-mode. Otherwise a valid
// colors palette makes it single-mode and any invalid modes value is
// discarded.
func Parse(raw []byte) (Tokens, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Tokens{}, themeerrors.NewValidationError("", "token set must be a JSON object", err)
	}

	var base baseCandidate
	if err := decodeParts(fields, &base, "name", "font", "radius", "spacing"); err != nil {
		return Tokens{}, err
	}
	if err := validatorInstance().Struct(base); err != nil {
		return Tokens{}, convertValidationError(err)
	}

	shadows, err := decodeShadows(fields, "")
	if err != nil {
		return Tokens{}, err
	}

	tokens := Tokens{Base: Base{
		Name:    *base.Name,
		Font:    base.Font.toFont(),
		Radius:  *base.Radius,
		Spacing: *base.Spacing,
		Shadows: shadows,
	}}

	modes, modesErr := parseModes(fields["modes"])
	if modesErr == nil {
		tokens.Modes = &modes
		return tokens, nil
	}

	palette, colorsErr := parsePalette(fields["colors"], "colors")
	if colorsErr == nil {
		tokens.Colors = &palette
		return tokens, nil
	}

	if fields["modes"] != nil && !isNull(fields["modes"]) {
		return Tokens{}, modesErr
	}
	return Tokens{}, colorsErr
}

func parseModes(raw json.RawMessage) (Modes, error) {
	if raw == nil || isNull(raw) {
		return Modes{}, themeerrors.NewValidationError("modes", "is required", nil)
	}
	var candidate modesCandidate
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return Modes{}, themeerrors.NewValidationError("modes", "has the wrong shape", err)
	}
	if err := validatorInstance().Struct(candidate); err != nil {
		return Modes{}, prefixField("modes", convertValidationError(err))
	}

	var shadowFields struct {
		Light map[string]json.RawMessage `json:"light"`
		Dark  map[string]json.RawMessage `json:"dark"`
	}
	if err := json.Unmarshal(raw, &shadowFields); err != nil {
		return Modes{}, themeerrors.NewValidationError("modes", "has the wrong shape", err)
	}
	lightShadows, err := decodeShadows(shadowFields.Light, "modes.light.")
	if err != nil {
		return Modes{}, err
	}
	darkShadows, err := decodeShadows(shadowFields.Dark, "modes.dark.")
	if err != nil {
		return Modes{}, err
	}

	return Modes{
		Light: ModeTokens{Colors: candidate.Light.Colors.toPalette(), Shadows: lightShadows},
		Dark:  ModeTokens{Colors: candidate.Dark.Colors.toPalette(), Shadows: darkShadows},
	}, nil
}

func parsePalette(raw json.RawMessage, field string) (Palette, error) {
	if raw == nil || isNull(raw) {
		return Palette{}, themeerrors.NewValidationError(field, "is required", nil)
	}
	var candidate paletteCandidate
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return Palette{}, themeerrors.NewValidationError(field, "has the wrong shape", err)
	}
	if err := validatorInstance().Struct(candidate); err != nil {
		return Palette{}, prefixField(field, convertValidationError(err))
	}
	return candidate.toPalette(), nil
}

// decodeParts decodes the named top-level keys into target one at a time so
// that a type mismatch is reported against the offending key.
func decodeParts(fields map[string]json.RawMessage, target interface{}, keys ...string) error {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		part, err := json.Marshal(map[string]json.RawMessage{key: raw})
		if err != nil {
			return themeerrors.NewValidationError(key, "could not be read", err)
		}
		if err := json.Unmarshal(part, target); err != nil {
			return themeerrors.NewValidationError(key, "has the wrong type", err)
		}
	}
	return nil
}

func decodeShadows(fields map[string]json.RawMessage, prefix string) (Shadows, error) {
	var out Shadows
	targets := []struct {
		key string
		dst *string
	}{
		{"shadowSm", &out.Sm},
		{"shadowMd", &out.Md},
		{"shadowLg", &out.Lg},
	}
	for _, target := range targets {
		raw, ok := fields[target.key]
		if !ok || isNull(raw) {
			continue
		}
		if err := json.Unmarshal(raw, target.dst); err != nil {
			return Shadows{}, themeerrors.NewValidationError(prefix+target.key, "must be a string", err)
		}
	}
	return out, nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return themeerrors.NewValidationError(field, msg, err)
	}
	return themeerrors.NewValidationError("", err.Error(), err)
}

// fieldName drops the candidate struct name from the namespace.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func prefixField(prefix string, err error) error {
	if ve, ok := err.(*themeerrors.ValidationError); ok {
		field := prefix
		if ve.Field != "" {
			field = prefix + "." + ve.Field
		}
		return themeerrors.NewValidationError(field, ve.Message, ve.Err)
	}
	return err
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (c *paletteCandidate) toPalette() Palette {
	return Palette{
		Bg:              *c.Bg,
		Surface:         *c.Surface,
		Text:            *c.Text,
		TextMuted:       *c.TextMuted,
		Primary:         *c.Primary,
		PrimaryContrast: *c.PrimaryContrast,
		Border:          *c.Border,
		Link:            deref(c.Link),
		Overlay:         deref(c.Overlay),
	}
}

func (c *fontCandidate) toFont() Font {
	font := Font{
		Family:        *c.Family,
		WeightRegular: *c.WeightRegular,
		WeightMedium:  *c.WeightMedium,
		WeightBold:    *c.WeightBold,
		SizeBody:      *c.SizeBody,
		SizeH1:        *c.SizeH1,
		SizeH2:        *c.SizeH2,
		SizeH3:        *c.SizeH3,
		LineHeight:    *c.LineHeight,
	}
	if c.LetterSpacing != nil {
		v := *c.LetterSpacing
		font.LetterSpacing = &v
	}
	return font
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Check validates an already-typed token set: the name must be non-empty and
// at least one palette shape must be present.
func (t Tokens) Check() error {
	if t.Name == "" {
		return themeerrors.NewValidationError("name", "name failed validation for tag 'min'", nil)
	}
	if t.Modes == nil && t.Colors == nil {
		return themeerrors.NewValidationError("colors", "a colors palette or light/dark modes are required", nil)
	}
	return nil
}
