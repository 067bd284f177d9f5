// Package config loads server settings from defaults, an optional JSON file and TEAMDRAFT_ env vars.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "teamdraft.json"

// Config is the resolved server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Type           string `mapstructure:"type"`
	RedisURL       string `mapstructure:"redisUrl"`
	RedisKeyPrefix string `mapstructure:"redisKeyPrefix"`
	SQLitePath     string `mapstructure:"sqlitePath"`
	PostgresDSN    string `mapstructure:"postgresDsn"`
}

// EngineConfig holds draft engine settings
type EngineConfig struct {
	TickInterval time.Duration `mapstructure:"tickInterval"`
	Seed         string        `mapstructure:"seed"`
}

// MetricsConfig controls the OpenTelemetry meter provider
type MetricsConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdownTimeout", 30*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.redisUrl", "redis://localhost:6379")
	v.SetDefault("storage.redisKeyPrefix", "teamdraft")
	v.SetDefault("storage.sqlitePath", "teamdraft.db")
	v.SetDefault("storage.postgresDsn", "")

	v.SetDefault("engine.tickInterval", 50*time.Millisecond)
	v.SetDefault("engine.seed", "")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.interval", time.Minute)
}

// Load resolves configuration. A missing config file is not an error.
func Load(configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(strings.TrimSuffix(FileName, ".json"))
	v.SetConfigType("json")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("TEAMDRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name to a slog.Level, defaulting to info
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
