/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration of shapekit from a YAML file
// and applies SHAPEKIT_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"shapekit/internal/textlayout"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type GeneralConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

// DarkMode reports whether labels and strokes use the dark theme palette.
// "system" resolves to light; there is no platform query in a CLI.
func (g GeneralConfig) DarkMode() bool { return strings.EqualFold(g.Theme, "dark") }

// FontFile maps a logical label font family to an OpenType file.
type FontFile struct {
	Family string `yaml:"family"`
	Path   string `yaml:"path"`
	Weight int    `yaml:"weight,omitempty"`
	Italic bool   `yaml:"italic,omitempty"`
}

type RenderConfig struct {
	Format       string     `yaml:"format"`        // svg | png | pdf
	Scale        float32    `yaml:"scale"`         // raster pixels per scene unit
	Padding      float32    `yaml:"padding"`       // margin around the rendered shapes
	GhostOpacity float32    `yaml:"ghost_opacity"` // zero keeps the built-in value
	FontDPI      float64    `yaml:"font_dpi"`
	Fonts        []FontFile `yaml:"fonts,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Render        RenderConfig  `yaml:"render"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system"},
		Render:        RenderConfig{Format: "svg", Scale: 1, Padding: 16, FontDPI: 72},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// EnvPrefix is prepended to every override variable.
const EnvPrefix = "SHAPEKIT"

// Env var names used as overrides.
const (
	EnvConfigFile = "SHAPEKIT_CONFIG"
	EnvTheme      = "SHAPEKIT_THEME"
	EnvFormat     = "SHAPEKIT_RENDER_FORMAT"
	EnvScale      = "SHAPEKIT_RENDER_SCALE"
	EnvPadding    = "SHAPEKIT_RENDER_PADDING"
	EnvGhost      = "SHAPEKIT_RENDER_GHOST_OPACITY"
	EnvFontDPI    = "SHAPEKIT_RENDER_FONT_DPI"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "SHAPEKIT_LOG_LEVEL"
	EnvLogFormat = "SHAPEKIT_LOG_FORMAT"
	EnvLogSource = "SHAPEKIT_LOG_SOURCE"
	EnvLogFile   = "SHAPEKIT_LOG_FILE"
)

// envOverrides is filled by envconfig; nil fields were not set.
type envOverrides struct {
	Theme        *string  `envconfig:"THEME"`
	Format       *string  `envconfig:"RENDER_FORMAT"`
	Scale        *float32 `envconfig:"RENDER_SCALE"`
	Padding      *float32 `envconfig:"RENDER_PADDING"`
	GhostOpacity *float32 `envconfig:"RENDER_GHOST_OPACITY"`
	FontDPI      *float64 `envconfig:"RENDER_FONT_DPI"`
	LogLevel     *string  `envconfig:"LOG_LEVEL"`
	LogFormat    *string  `envconfig:"LOG_FORMAT"`
	LogSource    *bool    `envconfig:"LOG_SOURCE"`
	LogFile      *string  `envconfig:"LOG_FILE"`
}

// envKeys maps config keys to the variable overriding them.
var envKeys = map[string]string{
	"general.theme":        EnvTheme,
	"render.format":        EnvFormat,
	"render.scale":         EnvScale,
	"render.padding":       EnvPadding,
	"render.ghost_opacity": EnvGhost,
	"render.font_dpi":      EnvFontDPI,
	"logging.level":        EnvLogLevel,
	"logging.format":       EnvLogFormat,
	"logging.source":       EnvLogSource,
	"logging.file":         EnvLogFile,
}

// ConfigPath returns the per-user config file path. SHAPEKIT_CONFIG wins
// over the platform default.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "shapekit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "shapekit")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "shapekit")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "shapekit")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. A missing file is not an error; a malformed one is.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.General.Theme) != "" {
		dst.General.Theme = strings.ToLower(strings.TrimSpace(src.General.Theme))
	}
	// render
	if strings.TrimSpace(src.Render.Format) != "" {
		dst.Render.Format = strings.ToLower(strings.TrimSpace(src.Render.Format))
	}
	if src.Render.Scale > 0 {
		dst.Render.Scale = src.Render.Scale
	}
	if src.Render.Padding > 0 {
		dst.Render.Padding = src.Render.Padding
	}
	if src.Render.GhostOpacity > 0 {
		dst.Render.GhostOpacity = src.Render.GhostOpacity
	}
	if src.Render.FontDPI > 0 {
		dst.Render.FontDPI = src.Render.FontDPI
	}
	if len(src.Render.Fonts) > 0 {
		dst.Render.Fonts = append([]FontFile(nil), src.Render.Fonts...)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	if env.Theme != nil && strings.TrimSpace(*env.Theme) != "" {
		cfg.General.Theme = strings.ToLower(strings.TrimSpace(*env.Theme))
	}
	if env.Format != nil && strings.TrimSpace(*env.Format) != "" {
		cfg.Render.Format = strings.ToLower(strings.TrimSpace(*env.Format))
	}
	if env.Scale != nil {
		cfg.Render.Scale = *env.Scale
	}
	if env.Padding != nil {
		cfg.Render.Padding = *env.Padding
	}
	if env.GhostOpacity != nil {
		cfg.Render.GhostOpacity = *env.GhostOpacity
	}
	if env.FontDPI != nil {
		cfg.Render.FontDPI = *env.FontDPI
	}
	// logging overrides
	if env.LogLevel != nil && strings.TrimSpace(*env.LogLevel) != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*env.LogLevel))
	}
	if env.LogFormat != nil && strings.TrimSpace(*env.LogFormat) != "" {
		cfg.Logging.Format = strings.ToLower(strings.TrimSpace(*env.LogFormat))
	}
	if env.LogSource != nil {
		cfg.Logging.Source = *env.LogSource
	}
	if env.LogFile != nil && strings.TrimSpace(*env.LogFile) != "" {
		cfg.Logging.File = strings.TrimSpace(*env.LogFile)
	}
	return nil
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// FontProvider loads the configured font files into a library. Without
// fonts the deterministic built-in face is used.
func (r RenderConfig) FontProvider() (textlayout.Provider, error) {
	if len(r.Fonts) == 0 {
		return textlayout.BasicProvider{}, nil
	}
	lib := textlayout.NewFontLibrary()
	for _, f := range r.Fonts {
		weight := f.Weight
		if weight == 0 {
			weight = 400
		}
		if err := lib.LoadTTF(f.Family, weight, f.Italic, f.Path); err != nil {
			return nil, err
		}
	}
	return textlayout.OTProvider{Lib: lib, DPI: r.FontDPI, Fallback: textlayout.BasicProvider{}}, nil
}
