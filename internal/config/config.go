package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type RenderConfig struct {
	IgnoreErrors  bool   `mapstructure:"ignore_errors"`
	Pattern       string `mapstructure:"pattern"`
	CaseSensitive bool   `mapstructure:"case_sensitive"`
	Recursive     bool   `mapstructure:"recursive"`
	Concurrency   int    `mapstructure:"concurrency"`
}

type IndexConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level slog.Level `mapstructure:"level"`
}

type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Index  IndexConfig  `mapstructure:"index"`
	Log    LogConfig    `mapstructure:"log"`
}

// cacheBase returns the base cache directory for npmd.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/npmd as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "npmd")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "npmd")
	}
	return filepath.Join(os.TempDir(), "npmd")
}

// DefaultIndexPath returns the path of the compressed documentation index.
func DefaultIndexPath() string {
	return filepath.Join(cacheBase(), "docs.idx.zst")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "npmd"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "npmd"))
	}

	viper.SetDefault("render.concurrency", 4)
	viper.SetDefault("index.path", DefaultIndexPath())
	viper.SetDefault("log.level", "info")

	viper.SetEnvPrefix("NPMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func stringToLogLevelHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(slog.Level(0)) {
			return data, nil
		}
		if f.Kind() == reflect.String {
			var level slog.Level
			if err := level.UnmarshalText([]byte(data.(string))); err != nil {
				return nil, fmt.Errorf("invalid log level %q: %w", data, err)
			}
			return level, nil
		}
		return data, nil
	}
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToLogLevelHookFunc(),
		Result:     &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
