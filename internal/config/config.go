// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads glhal settings from defaults, an optional file
// and GLHAL_ prefixed environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Debug     bool            `mapstructure:"debug"`
	Driver    DriverConfig    `mapstructure:"driver"`
	Swapchain SwapchainConfig `mapstructure:"swapchain"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// DriverConfig selects the driver profile the command line tools
// describe. Version, Renderer and Extensions override the profile when
// set; Limits override individual integer limits by name, for example
// max_texture_size.
type DriverConfig struct {
	Profile    string         `mapstructure:"profile"`
	Version    string         `mapstructure:"version"`
	Renderer   string         `mapstructure:"renderer"`
	Extensions []string       `mapstructure:"extensions"`
	Limits     map[string]int `mapstructure:"limits"`
}

type SwapchainConfig struct {
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
	Interval string `mapstructure:"interval"`
}

var (
	profiles  = []string{"es2", "gl21"}
	levels    = []string{"debug", "info", "warn", "error"}
	intervals = []string{"free", "vsync", "vsync2"}
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
		Driver: DriverConfig{
			Profile: "es2",
			Limits:  map[string]int{},
		},
		Swapchain: SwapchainConfig{
			Width:    800,
			Height:   600,
			Interval: "vsync",
		},
	}
}

// Load reads the configuration. An empty cfgFile searches
// $HOME/.glhal and the working directory for config.yaml; a missing
// file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	cfg := Default()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".glhal"))
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GLHAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config")
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return cfg, nil
}

// Validate checks the enumerated settings and the swapchain size.
func (c *Config) Validate() error {
	if !contains(levels, c.Log.Level) {
		return errors.Errorf("log.level must be one of: %v", levels)
	}
	if !contains(profiles, c.Driver.Profile) {
		return errors.Errorf("driver.profile must be one of: %v", profiles)
	}
	if !contains(intervals, c.Swapchain.Interval) {
		return errors.Errorf("swapchain.interval must be one of: %v", intervals)
	}
	if c.Swapchain.Width <= 0 || c.Swapchain.Height <= 0 {
		return errors.New("swapchain.width and swapchain.height must be positive")
	}
	for name, v := range c.Driver.Limits {
		if v < 0 {
			return errors.Errorf("driver.limits.%s must not be negative", name)
		}
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.console", cfg.Log.Console)

	v.SetDefault("debug", cfg.Debug)

	v.SetDefault("driver.profile", cfg.Driver.Profile)
	v.SetDefault("driver.version", cfg.Driver.Version)
	v.SetDefault("driver.renderer", cfg.Driver.Renderer)
	v.SetDefault("driver.extensions", cfg.Driver.Extensions)
	v.SetDefault("driver.limits", cfg.Driver.Limits)

	v.SetDefault("swapchain.width", cfg.Swapchain.Width)
	v.SetDefault("swapchain.height", cfg.Swapchain.Height)
	v.SetDefault("swapchain.interval", cfg.Swapchain.Interval)
}
