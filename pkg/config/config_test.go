package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toybrowser/pkg/layout"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, 800, cfg.Viewport.Width)
	assert.Equal(t, 600, cfg.Viewport.Height)
	assert.Equal(t, 100.0, cfg.Layout.ScrollStep)
	assert.Equal(t, 30*time.Second, cfg.Network.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLayoutOptions_MatchEngineDefaults(t *testing.T) {
	assert.Equal(t, layout.DefaultOptions(), NewDefaultConfig().LayoutOptions())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toybrowser.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
viewport:
  width: 1024
layout:
  font_size: 20
fonts:
  bold: /fonts/bold.ttf
network:
  timeout: 5s
`), 0o644))
	t.Setenv("TOYBROWSER_VIEWPORT_HEIGHT", "900")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Viewport.Width)
	assert.Equal(t, 900, cfg.Viewport.Height)
	assert.Equal(t, 20, cfg.Layout.FontSize)
	assert.Equal(t, 13.0, cfg.Layout.HStep, "unset keys keep their defaults")
	assert.Equal(t, 5*time.Second, cfg.Network.Timeout)
	assert.Equal(t, "/fonts/bold.ttf", cfg.FontConfig().Bold)
	assert.Equal(t, 1024.0, cfg.LayoutOptions().Width)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Viewport.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Viewport.Width = 0 }, "viewport"},
		{"negative vstep", func(c *Config) { c.Layout.VStep = -1 }, "layout steps"},
		{"margins eat the page", func(c *Config) { c.Layout.HStep = 400 }, "no room"},
		{"zero font size", func(c *Config) { c.Layout.FontSize = 0 }, "font_size"},
		{"zero scroll step", func(c *Config) { c.Layout.ScrollStep = 0 }, "scroll_step"},
		{"zero timeout", func(c *Config) { c.Network.Timeout = 0 }, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
