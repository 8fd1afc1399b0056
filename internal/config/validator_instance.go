package config

import (
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("theme_source", func(fl validator.FieldLevel) bool {
			return isValidSource(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// isValidSource accepts http(s) URLs with a host, file:// URLs with a path,
// git+ repository URLs carrying a path query, and plain filesystem paths.
func isValidSource(source string) bool {
	if strings.TrimSpace(source) == "" || strings.Contains(source, "\x00") {
		return false
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return !strings.Contains(source, "://")
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return parsed.Host != ""
	case "file":
		return parsed.Path != ""
	case "git+http", "git+https", "git+ssh":
		return parsed.Host != "" && parsed.Query().Get("path") != ""
	case "git+file":
		return parsed.Path != "" && parsed.Query().Get("path") != ""
	case "":
		return true
	default:
		// Windows drive letters parse as a one-letter scheme.
		return len(parsed.Scheme) == 1
	}
}
