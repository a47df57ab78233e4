package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"desktopview/pkg/desktop"
)

// Config represents the main configuration
type Config struct {
	Window        WindowConfig        `yaml:"window"`
	DesktopRender DesktopRenderConfig `yaml:"desktop-render"`
	Input         InputConfig         `yaml:"input"`
	Source        SourceConfig        `yaml:"source"`
	Log           LogConfig           `yaml:"log"`
}

// WindowConfig contains the viewer window settings
type WindowConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Title        string `yaml:"title"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	FrameRate    int    `yaml:"framerate"`
	Rotate       int    `yaml:"rotate"` // degrees, multiple of 90
	DontUpscale  bool   `yaml:"dontUpscale"`
	AlertSeconds int    `yaml:"alertSeconds"`
}

// DesktopRenderConfig holds the options read by the desktop renderer
type DesktopRenderConfig struct {
	NVGainMax int `yaml:"nvGainMax"`
	NVGain    int `yaml:"nvGain"`
	CBMode    int `yaml:"cbMode"` // 0 off, 1 protanope, 2 deuteranope, 3 tritanope
}

// InputConfig names the viewer hotkeys
type InputConfig struct {
	NightVision string `yaml:"nightVision"`
	Rotate      string `yaml:"rotate"`
	Format      string `yaml:"format"`
	Quit        string `yaml:"quit"`
}

// SourceConfig describes the frames fed to the renderer
type SourceConfig struct {
	Format   string `yaml:"format"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	ZeroCopy bool   `yaml:"zeroCopy"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:        1280,
			Height:       720,
			Title:        "desktopview",
			VSync:        true,
			FrameRate:    60,
			AlertSeconds: 3,
		},
		DesktopRender: DesktopRenderConfig{
			NVGainMax: 1,
			NVGain:    0,
			CBMode:    0,
		},
		Input: InputConfig{
			NightVision: "N",
			Rotate:      "R",
			Format:      "F",
			Quit:        "Escape",
		},
		Source: SourceConfig{
			Format: "bgra8",
			Width:  1920,
			Height: 1080,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file. The defaults are
// returned alongside any error so callers can carry on without a file.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Rotate%90 != 0 {
		errs = append(errs, fmt.Errorf("window.rotate %d is not a multiple of 90", c.Window.Rotate))
	}
	if c.Window.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("window.framerate %d is negative", c.Window.FrameRate))
	}

	dr := c.DesktopRender
	if dr.NVGainMax < 0 {
		errs = append(errs, fmt.Errorf("desktop-render.nvGainMax %d is negative", dr.NVGainMax))
	}
	if dr.NVGain < 0 || dr.NVGain > dr.NVGainMax {
		errs = append(errs, fmt.Errorf("desktop-render.nvGain %d outside [0, %d]", dr.NVGain, dr.NVGainMax))
	}
	if dr.CBMode < 0 || dr.CBMode > 3 {
		errs = append(errs, fmt.Errorf("desktop-render.cbMode %d outside [0, 3]", dr.CBMode))
	}

	if _, err := desktop.ParseFormatTag(c.Source.Format); err != nil {
		errs = append(errs, fmt.Errorf("source.format: %w", err))
	}
	if c.Source.Width <= 0 || c.Source.Height <= 0 {
		errs = append(errs, fmt.Errorf("source size %dx%d must be positive", c.Source.Width, c.Source.Height))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Int implements desktop.Options
func (c *Config) Int(section, key string) (int, error) {
	if section == desktop.OptionSection {
		switch key {
		case desktop.OptionNVGainMax:
			return c.DesktopRender.NVGainMax, nil
		case desktop.OptionNVGain:
			return c.DesktopRender.NVGain, nil
		case desktop.OptionCBMode:
			return c.DesktopRender.CBMode, nil
		}
	}
	return 0, fmt.Errorf("unknown option %s.%s", section, key)
}
