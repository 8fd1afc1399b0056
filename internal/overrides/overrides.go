// Package overrides persists user-supplied partial theme patches and layers
// them over resolved themes.
package overrides

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

// Overrides is a partial patch over a resolved theme. Nil fields are absent.
type Overrides struct {
	Bg              *string `json:"bg,omitempty" yaml:"bg,omitempty"`
	Surface         *string `json:"surface,omitempty" yaml:"surface,omitempty"`
	Text            *string `json:"text,omitempty" yaml:"text,omitempty"`
	TextMuted       *string `json:"textMuted,omitempty" yaml:"textMuted,omitempty"`
	Primary         *string `json:"primary,omitempty" yaml:"primary,omitempty"`
	PrimaryContrast *string `json:"primaryContrast,omitempty" yaml:"primaryContrast,omitempty"`
	Border          *string `json:"border,omitempty" yaml:"border,omitempty"`
	Link            *string `json:"link,omitempty" yaml:"link,omitempty"`

	ScaleFactor   *float64 `json:"scaleFactor,omitempty" yaml:"scaleFactor,omitempty" validate:"omitempty,gte=0"`
	WeightRegular *float64 `json:"weightRegular,omitempty" yaml:"weightRegular,omitempty" validate:"omitempty,gte=0"`
	WeightMedium  *float64 `json:"weightMedium,omitempty" yaml:"weightMedium,omitempty" validate:"omitempty,gte=0"`
	WeightBold    *float64 `json:"weightBold,omitempty" yaml:"weightBold,omitempty" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether no field is set.
func (o Overrides) IsEmpty() bool {
	return o == Overrides{}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

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

// Validate checks numeric fields. Colour strings are taken as given.
func (o Overrides) Validate() error {
	if err := validatorInstance().Struct(o); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
			ve := ves[0]
			return themeerrors.NewValidationError(ve.Field(), fmt.Sprintf("must be %s %s", ve.Tag(), ve.Param()), err)
		}
		return themeerrors.NewValidationError("", err.Error(), err)
	}
	return nil
}

// Set assigns one field by its JSON key. Numeric fields parse value as a
// float; an empty value clears the field.
func (o *Overrides) Set(key, value string) error {
	if s := o.colorField(key); s != nil {
		if value == "" {
			*s = nil
			return nil
		}
		v := value
		*s = &v
		return nil
	}
	if f := o.numberField(key); f != nil {
		if value == "" {
			*f = nil
			return nil
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return themeerrors.NewValidationError(key, fmt.Sprintf("%q is not a number", value), err)
		}
		if n < 0 {
			return themeerrors.NewValidationError(key, "must be gte 0", nil)
		}
		*f = &n
		return nil
	}
	return themeerrors.NewValidationError(key, "unknown override key", nil)
}

func (o *Overrides) colorField(key string) **string {
	switch key {
	case "bg":
		return &o.Bg
	case "surface":
		return &o.Surface
	case "text":
		return &o.Text
	case "textMuted":
		return &o.TextMuted
	case "primary":
		return &o.Primary
	case "primaryContrast":
		return &o.PrimaryContrast
	case "border":
		return &o.Border
	case "link":
		return &o.Link
	}
	return nil
}

func (o *Overrides) numberField(key string) **float64 {
	switch key {
	case "scaleFactor":
		return &o.ScaleFactor
	case "weightRegular":
		return &o.WeightRegular
	case "weightMedium":
		return &o.WeightMedium
	case "weightBold":
		return &o.WeightBold
	}
	return nil
}

// Keys lists the accepted override keys in display order.
func Keys() []string {
	return []string{
		"bg", "surface", "text", "textMuted", "primary", "primaryContrast", "border", "link",
		"scaleFactor", "weightRegular", "weightMedium", "weightBold",
	}
}
