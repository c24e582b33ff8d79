package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/soypat/kirkkaus/filters"
	"github.com/soypat/kirkkaus/preview"
)

// Validate validates the configuration
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}
	if err := config.PreviewOptions().Validate(); err != nil {
		return fmt.Errorf("invalid brightness or preview settings: %w", err)
	}
	if _, err := ParseHistogramMode(config.Preview.HistogramMode); err != nil {
		return fmt.Errorf("invalid preview settings: %w", err)
	}
	if config.Window.Width <= 0 || config.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", config.Window.Width, config.Window.Height)
	}
	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// ParseHistogramMode parses a histogram mode name, case insensitively.
// The empty string selects the average mode.
func ParseHistogramMode(name string) (filters.GrayscaleMode, error) {
	if name == "" {
		return filters.GrayscaleAverage, nil
	}
	for _, mode := range filters.GrayscaleModes {
		if strings.EqualFold(name, mode.String()) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown histogram mode %q", name)
}

// PreviewOptions converts the configuration to pipeline state options.
// Unknown histogram modes map to the average mode; use [Validate] to reject them.
func (c *Config) PreviewOptions() preview.Options {
	mode, _ := ParseHistogramMode(c.Preview.HistogramMode)
	return preview.Options{
		BrightnessMin: c.Brightness.Min,
		BrightnessMax: c.Brightness.Max,
		Brightness:    c.Brightness.Initial,
		Step:          c.Brightness.Step,
		Factor:        c.Preview.DownsampleFactor,
		Mode:          mode,
	}
}
