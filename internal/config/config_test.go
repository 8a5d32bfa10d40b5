// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "info" || cfg.Driver.Profile != "es2" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Swapchain.Width != 800 || cfg.Swapchain.Height != 600 {
		t.Errorf("swapchain size %dx%d", cfg.Swapchain.Width, cfg.Swapchain.Height)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glhal.yaml")
	const src = `
debug: true
log:
  level: debug
driver:
  profile: gl21
  extensions: [GL_EXT_framebuffer_blit]
  limits:
    max_texture_size: 1024
swapchain:
  width: 320
  height: 240
  interval: free
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug || cfg.Log.Level != "debug" {
		t.Errorf("debug settings not loaded: %+v", cfg)
	}
	if cfg.Driver.Profile != "gl21" || len(cfg.Driver.Extensions) != 1 {
		t.Errorf("driver settings not loaded: %+v", cfg.Driver)
	}
	if got := cfg.Driver.Limits["max_texture_size"]; got != 1024 {
		t.Errorf("max_texture_size = %d, want 1024", got)
	}
	if cfg.Swapchain.Interval != "free" || cfg.Swapchain.Width != 320 {
		t.Errorf("swapchain settings not loaded: %+v", cfg.Swapchain)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GLHAL_DRIVER_PROFILE", "gl21")
	t.Setenv("GLHAL_SWAPCHAIN_WIDTH", "1024")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Driver.Profile != "gl21" || cfg.Swapchain.Width != 1024 {
		t.Errorf("environment ignored: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(c *Config)
	}{
		{"level", func(c *Config) { c.Log.Level = "loud" }},
		{"profile", func(c *Config) { c.Driver.Profile = "vulkan" }},
		{"interval", func(c *Config) { c.Swapchain.Interval = "sometimes" }},
		{"size", func(c *Config) { c.Swapchain.Height = 0 }},
		{"limit", func(c *Config) { c.Driver.Limits["max_texture_size"] = -1 }},
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mod(c)
			if err := c.Validate(); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}
