// Package config loads themer settings from defaults, a YAML file,
// THEMER_* environment variables and command-line flags, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

const (
	KeySource       = "source"
	KeyTheme        = "theme"
	KeyMode         = "mode"
	KeyHeaderHeight = "header_height"
	KeyDeriveDark   = "derive_dark"
	KeyStoreBackend = "store.backend"
	KeyStorePath    = "store.path"
	KeyExportDir    = "export_dir"
	KeyPollInterval = "watch.poll_interval"
	KeyOutput       = "output"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
)

const (
	envPrefix      = "THEMER"
	configName     = "themer"
	userConfigDir  = ".themer"
	DefaultSource  = "themes.json"
	DefaultTheme   = "apple"
	DefaultMode    = "light"
	DefaultBackend = "file"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the resolved themer configuration.
type Config struct {
	Source       string      `mapstructure:"source" validate:"required,theme_source"`
	Theme        string      `mapstructure:"theme" validate:"required"`
	Mode         string      `mapstructure:"mode" validate:"required,oneof=light dark system"`
	HeaderHeight float64     `mapstructure:"header_height" validate:"gte=0"`
	DeriveDark   bool        `mapstructure:"derive_dark"`
	Store        StoreConfig `mapstructure:"store"`
	ExportDir    string      `mapstructure:"export_dir" validate:"required"`
	Watch        WatchConfig `mapstructure:"watch"`
	Output       string      `mapstructure:"output" validate:"oneof=json yaml css"`
	Log          LogConfig   `mapstructure:"log"`

	// File is the configuration file that was read, if any.
	File string `mapstructure:"-"`
}

// StoreConfig selects the persistence backend for overrides and the last
// selection.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory file sqlite"`
	Path    string `mapstructure:"path"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text logfmt json"`
}

// Options control where Load looks.
type Options struct {
	// File is an explicit configuration file. It must exist.
	File string
	// SearchPaths replace the default search locations: the working
	// directory and $HOME/.themer.
	SearchPaths []string
	// Flags are bound by name; see FlagKeys.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"source":        KeySource,
	"theme":         KeyTheme,
	"mode":          KeyMode,
	"header-height": KeyHeaderHeight,
	"derive-dark":   KeyDeriveDark,
	"store":         KeyStoreBackend,
	"store-path":    KeyStorePath,
	"export-dir":    KeyExportDir,
	"poll-interval": KeyPollInterval,
	"output":        KeyOutput,
	"log-level":     KeyLogLevel,
	"log-format":    KeyLogFormat,
}

// Load builds a validated Config.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for flag, key := range FlagKeys {
			if f := opts.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, themeerrors.NewParseError(v.ConfigFileUsed(), 0, err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.Store.Path == "" && cfg.Store.Backend != BackendMemory {
		cfg.Store.Path = DefaultStorePath(cfg.Store.Backend)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySource, DefaultSource)
	v.SetDefault(KeyTheme, DefaultTheme)
	v.SetDefault(KeyMode, DefaultMode)
	v.SetDefault(KeyHeaderHeight, 56)
	v.SetDefault(KeyDeriveDark, false)
	v.SetDefault(KeyStoreBackend, DefaultBackend)
	v.SetDefault(KeyStorePath, "")
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyPollInterval, 2*time.Second)
	v.SetDefault(KeyOutput, "json")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

func readConfigFile(v *viper.Viper, opts Options) error {
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return themeerrors.NewParseError(opts.File, 0, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	paths := opts.SearchPaths
	if paths == nil {
		paths = defaultSearchPaths()
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return themeerrors.NewParseError(v.ConfigFileUsed(), 0, err)
	}
	return nil
}

func defaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, userConfigDir))
	}
	return paths
}

// DefaultStorePath returns $HOME/.themer/state.json or state.db for the
// sqlite backend, falling back to the working directory without a home.
func DefaultStorePath(backend string) string {
	name := "state.json"
	if backend == BackendSQLite {
		name = "state.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, userConfigDir, name)
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if cfg == nil {
		return themeerrors.NewValidationError("config", "configuration is nil", nil)
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s (allowed: %s)", msg, ve.Param())
		}
		return themeerrors.NewValidationError(field, msg, err)
	}
	return themeerrors.NewValidationError("config", err.Error(), err)
}

// fieldName turns "Config.store.backend" into "store.backend".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
