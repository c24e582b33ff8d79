package config

// Config represents the application configuration
type Config struct {
	Brightness BrightnessConfig `mapstructure:"brightness" yaml:"brightness"`
	Preview    PreviewConfig    `mapstructure:"preview" yaml:"preview"`
	GPU        GPUConfig        `mapstructure:"gpu" yaml:"gpu"`
	Window     WindowConfig     `mapstructure:"window" yaml:"window"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

// BrightnessConfig represents the brightness slider configuration
type BrightnessConfig struct {
	Min     int `mapstructure:"min" yaml:"min"`         // Slider lower bound, >= -255
	Max     int `mapstructure:"max" yaml:"max"`         // Slider upper bound, <= 255
	Initial int `mapstructure:"initial" yaml:"initial"` // Value at startup
	Step    int `mapstructure:"step" yaml:"step"`       // Change per scroll notch
}

// PreviewConfig represents the preview pipeline configuration
type PreviewConfig struct {
	DownsampleFactor int    `mapstructure:"downsample_factor" yaml:"downsample_factor"`
	HistogramMode    string `mapstructure:"histogram_mode" yaml:"histogram_mode"` // "average", "luminance", "lightness"
	Cache            bool   `mapstructure:"cache" yaml:"cache"`
}

// GPUConfig represents GPU acceleration configuration
type GPUConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// WindowConfig represents the preview window configuration
type WindowConfig struct {
	Title  string `mapstructure:"title" yaml:"title"`
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // zerolog level name
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Brightness: BrightnessConfig{
			Min:     -255,
			Max:     255,
			Initial: 0,
			Step:    1,
		},
		Preview: PreviewConfig{
			DownsampleFactor: 4,
			HistogramMode:    "average",
			Cache:            true,
		},
		GPU: GPUConfig{
			Enabled: false,
		},
		Window: WindowConfig{
			Title:  "Kirkkaus",
			Width:  1280,
			Height: 720,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
