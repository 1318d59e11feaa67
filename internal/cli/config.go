package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/boxscene/pkg/cache"
	"github.com/matzehuels/boxscene/pkg/pipeline"
	"github.com/matzehuels/boxscene/pkg/server"
)

// envPrefix is the prefix for environment overrides (BOXSCENE_RENDER_SCALE).
const envPrefix = "BOXSCENE"

// Config is the merged view of the config file, environment and flags.
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Formats   []string `mapstructure:"formats"`
	Scale     float64  `mapstructure:"scale"`
	OutputDir string   `mapstructure:"output_dir"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Dir       string        `mapstructure:"dir"`
	TTL       time.Duration `mapstructure:"ttl"`
	RedisAddr string        `mapstructure:"redis_addr"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr      string  `mapstructure:"addr"`
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// LogConfig configures log output of long-running commands.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// newViper returns a viper instance with defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("render.formats", []string{pipeline.FormatSVG})
	v.SetDefault("render.scale", pipeline.DefaultScale)
	v.SetDefault("render.output_dir", "")
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", cache.TTLArtifact)
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("server.addr", server.DefaultAddr)
	v.SetDefault("server.rate_limit", server.DefaultRateLimit)
	v.SetDefault("server.burst", server.DefaultBurst)
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// readConfig reads the config file into v. An explicit path must exist; the
// default location is optional.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(dir)
		v.SetConfigName(appName)
		v.SetConfigType("toml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// decodeConfig unmarshals the merged configuration.
func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Render.Scale <= 0 {
		return Config{}, fmt.Errorf("render.scale must be positive, got %g", cfg.Render.Scale)
	}
	return cfg, nil
}

// bindFlag links a config key to a command flag. The flag wins only when the
// user sets it.
func (c *CLI) bindFlag(key string, flags *pflag.FlagSet, name string) {
	if err := c.v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %q: %v", name, err))
	}
}

// configDir returns the config directory using XDG standard (~/.config/boxscene/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
