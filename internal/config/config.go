// Package config holds app-wide settings unmarshalled from Viper:
// defaults, then an optional YAML settings file, then SEQSTORM_*
// environment variables, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig indicates a settings value that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// EditorConfig is editor behavior settings.
type EditorConfig struct {
	// MaxUndoEntries bounds the undo history.
	MaxUndoEntries int `mapstructure:"max-undo-entries"`

	// Circular treats opened sequences as circular by default.
	Circular bool `mapstructure:"circular"`

	// ReadOnly opens documents without write access.
	ReadOnly bool `mapstructure:"read-only"`
}

// BackendConfig is the mirror channel settings.
type BackendConfig struct {
	// URL of the backend websocket endpoint. Empty disables mirroring.
	URL string `mapstructure:"url"`

	// QueueSize is the outbound operation queue capacity.
	QueueSize int `mapstructure:"queue-size"`

	// WriteTimeoutSeconds bounds each websocket write.
	WriteTimeoutSeconds int `mapstructure:"write-timeout-seconds"`
}

// ViewConfig is terminal rendering settings.
type ViewConfig struct {
	// BasesPerLine in the sequence panel.
	BasesPerLine int `mapstructure:"bases-per-line"`

	// ShowComplement renders the complementary strand under the primary.
	ShowComplement bool `mapstructure:"show-complement"`

	// ColorScheme selects the annotation palette.
	ColorScheme string `mapstructure:"color-scheme"`
}

// LogConfig is logging settings.
type LogConfig struct {
	// Path of the log file. Empty logs to stderr.
	Path string `mapstructure:"path"`

	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// Config is the root settings struct.
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor"`
	Backend BackendConfig `mapstructure:"backend"`
	View    ViewConfig    `mapstructure:"view"`
	Log     LogConfig     `mapstructure:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			MaxUndoEntries: 1000,
		},
		Backend: BackendConfig{
			QueueSize:           64,
			WriteTimeoutSeconds: 5,
		},
		View: ViewConfig{
			BasesPerLine:   60,
			ShowComplement: true,
			ColorScheme:    "default",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads settings from path (optional; "" uses defaults and
// environment only) and returns the validated config.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SEQSTORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks settings values.
func (c Config) Validate() error {
	if c.Editor.MaxUndoEntries <= 0 {
		return fmt.Errorf("%w: editor.max-undo-entries must be positive", ErrInvalidConfig)
	}
	if c.View.BasesPerLine <= 0 {
		return fmt.Errorf("%w: view.bases-per-line must be positive", ErrInvalidConfig)
	}
	if c.Backend.QueueSize <= 0 {
		return fmt.Errorf("%w: backend.queue-size must be positive", ErrInvalidConfig)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("editor.max-undo-entries", d.Editor.MaxUndoEntries)
	v.SetDefault("editor.circular", d.Editor.Circular)
	v.SetDefault("editor.read-only", d.Editor.ReadOnly)
	v.SetDefault("backend.url", d.Backend.URL)
	v.SetDefault("backend.queue-size", d.Backend.QueueSize)
	v.SetDefault("backend.write-timeout-seconds", d.Backend.WriteTimeoutSeconds)
	v.SetDefault("view.bases-per-line", d.View.BasesPerLine)
	v.SetDefault("view.show-complement", d.View.ShowComplement)
	v.SetDefault("view.color-scheme", d.View.ColorScheme)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
}
