// Package config loads the issues service configuration from defaults, an
// optional YAML file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const minSecretLen = 32

type Config struct {
	Port             string `mapstructure:"port"`
	LogLevel         string `mapstructure:"log_level"`
	SeedFile         string `mapstructure:"seed_file"`
	LoaderSecret     string `mapstructure:"loader_secret"`
	MetricsEnabled   bool   `mapstructure:"metrics_enabled"`
	MetricsToken     string `mapstructure:"metrics_token"`
	WriteLimitPerMin int    `mapstructure:"write_limit_per_min"`
}

var ErrWeakSecret = fmt.Errorf("loader_secret is required and must be at least %d chars", minSecretLen)

func Defaults() Config {
	return Config{
		Port:             "8084",
		LogLevel:         "info",
		MetricsEnabled:   true,
		WriteLimitPerMin: 60,
	}
}

// Load reads configuration. path may be empty; a named file that does not
// exist is an error.
func Load(path string) (Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("port", d.Port)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("seed_file", d.SeedFile)
	v.SetDefault("loader_secret", d.LoaderSecret)
	v.SetDefault("metrics_enabled", d.MetricsEnabled)
	v.SetDefault("metrics_token", d.MetricsToken)
	v.SetDefault("write_limit_per_min", d.WriteLimitPerMin)

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if len(c.LoaderSecret) < minSecretLen {
		errs = append(errs, ErrWeakSecret)
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.WriteLimitPerMin < 0 {
		errs = append(errs, errors.New("write_limit_per_min must not be negative"))
	}
	return errors.Join(errs...)
}
