package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configDirName  = "kirkkaus"
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "KIRKKAUS"
)

var envReplacer = strings.NewReplacer(".", "_")

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"brightness": "brightness.initial",
	"factor":     "preview.downsample_factor",
	"histogram":  "preview.histogram_mode",
	"gpu":        "gpu.enabled",
	"log-level":  "log.level",
}

// Dir returns the directory searched for the configuration file.
func Dir() string {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		userConfigDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(userConfigDir, configDirName)
}

// RegisterFlags adds the flags understood by [Load] to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.String("config", "", "path to configuration file")
	fs.Int("brightness", def.Brightness.Initial, "initial brightness offset")
	fs.Int("factor", def.Preview.DownsampleFactor, "preview downsample factor")
	fs.String("histogram", def.Preview.HistogramMode, "histogram intensity: average, luminance or lightness")
	fs.Bool("gpu", def.GPU.Enabled, "adjust brightness on the GPU")
	fs.String("log-level", def.Log.Level, "log level")
}

// Load loads the configuration. Values are taken in order of precedence from
// flags set in fs, KIRKKAUS_* environment variables, the configuration file and defaults.
// The file is the --config flag if set, otherwise config.yaml in [Dir]. A missing
// default file is not an error. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	explicit := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("brightness.min", def.Brightness.Min)
	v.SetDefault("brightness.max", def.Brightness.Max)
	v.SetDefault("brightness.initial", def.Brightness.Initial)
	v.SetDefault("brightness.step", def.Brightness.Step)
	v.SetDefault("preview.downsample_factor", def.Preview.DownsampleFactor)
	v.SetDefault("preview.histogram_mode", def.Preview.HistogramMode)
	v.SetDefault("preview.cache", def.Preview.Cache)
	v.SetDefault("gpu.enabled", def.GPU.Enabled)
	v.SetDefault("window.title", def.Window.Title)
	v.SetDefault("window.width", def.Window.Width)
	v.SetDefault("window.height", def.Window.Height)
	v.SetDefault("log.level", def.Log.Level)
}
