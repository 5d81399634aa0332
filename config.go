package diffcore

import "fmt"

// Color modes accepted by Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds CLI presentation settings.
type Config struct {
	Color       string `toml:"color"`
	LineNumbers bool   `toml:"line_numbers"`
	Syntax      bool   `toml:"syntax"`
	TabWidth    int    `toml:"tab_width"`
	LogLevel    string `toml:"log_level"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Color:       ColorAuto,
		LineNumbers: true,
		Syntax:      true,
		TabWidth:    8,
		LogLevel:    "info",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width must be positive, got %d", c.TabWidth)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
