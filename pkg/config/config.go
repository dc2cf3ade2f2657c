package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"toybrowser/pkg/layout"
	"toybrowser/pkg/text"
)

// EnvPrefix prefixes environment overrides, e.g. TOYBROWSER_VIEWPORT_WIDTH.
const EnvPrefix = "TOYBROWSER"

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Layout   LayoutConfig   `mapstructure:"layout" yaml:"layout"`
	Fonts    FontsConfig    `mapstructure:"fonts" yaml:"fonts"`
	Network  NetworkConfig  `mapstructure:"network" yaml:"network"`
}

// LoggerConfig configures the zap logger and its optional rotated file.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

type LayoutConfig struct {
	HStep      float64 `mapstructure:"hstep" yaml:"hstep"`
	VStep      float64 `mapstructure:"vstep" yaml:"vstep"`
	FontSize   int     `mapstructure:"font_size" yaml:"font_size"`
	ScrollStep float64 `mapstructure:"scroll_step" yaml:"scroll_step"`
}

// FontsConfig holds TrueType paths. Empty entries use the embedded Go fonts.
type FontsConfig struct {
	Regular    string `mapstructure:"regular" yaml:"regular"`
	Bold       string `mapstructure:"bold" yaml:"bold"`
	Italic     string `mapstructure:"italic" yaml:"italic"`
	BoldItalic string `mapstructure:"bold_italic" yaml:"bold_italic"`
}

type NetworkConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "toybrowser")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// -- Viewport --
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)

	// -- Layout --
	v.SetDefault("layout.hstep", 13)
	v.SetDefault("layout.vstep", 18)
	v.SetDefault("layout.font_size", 16)
	v.SetDefault("layout.scroll_step", 100)

	// -- Fonts --
	v.SetDefault("fonts.regular", "")
	v.SetDefault("fonts.bold", "")
	v.SetDefault("fonts.italic", "")
	v.SetDefault("fonts.bold_italic", "")

	// -- Network --
	v.SetDefault("network.timeout", "30s")
}

// NewViper returns a viper instance with defaults and environment
// overrides bound.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewDefaultConfig returns the configuration built from defaults alone.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load reads the YAML file at path, if any, on top of the defaults and
// environment overrides.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, errors.New("viewport width and height must be positive"))
	}
	if c.Layout.HStep < 0 || c.Layout.VStep < 0 {
		errs = append(errs, errors.New("layout steps must not be negative"))
	}
	if 2*c.Layout.HStep >= float64(c.Viewport.Width) {
		errs = append(errs, errors.New("layout.hstep leaves no room for content"))
	}
	if c.Layout.FontSize <= 0 {
		errs = append(errs, errors.New("layout.font_size must be a positive integer"))
	}
	if c.Layout.ScrollStep <= 0 {
		errs = append(errs, errors.New("layout.scroll_step must be positive"))
	}
	if c.Network.Timeout <= 0 {
		errs = append(errs, errors.New("network.timeout must be positive"))
	}
	return errors.Join(errs...)
}

// LayoutOptions converts the viewport and layout sections for the engine.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		Width:    float64(c.Viewport.Width),
		HStep:    c.Layout.HStep,
		VStep:    c.Layout.VStep,
		FontSize: c.Layout.FontSize,
	}
}

func (c *Config) FontConfig() text.FontConfig {
	return text.FontConfig{
		Regular:    c.Fonts.Regular,
		Bold:       c.Fonts.Bold,
		Italic:     c.Fonts.Italic,
		BoldItalic: c.Fonts.BoldItalic,
	}
}
