package config

import (
	"log/slog"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type BreakerConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	Threshold float64 `mapstructure:"threshold"`
}

type CircuitBreakersConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	LoadAverage BreakerConfig `mapstructure:"load_average"`
	CPU         BreakerConfig `mapstructure:"cpu"`
	Memory      BreakerConfig `mapstructure:"memory"`
}

type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	Logging         LoggingConfig         `mapstructure:"logging"`
	CircuitBreakers CircuitBreakersConfig `mapstructure:"circuit_breakers"`
	WatchInterval   string                `mapstructure:"watch_interval"`
	MetricsBuffer   int                   `mapstructure:"metrics_buffer"`
}

func Load() (*Config, error) {
	viper.SetDefault("server.environment", EnvDev)
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("logging.level", LogLevelInfo)
	viper.SetDefault("circuit_breakers.enabled", true)
	viper.SetDefault("circuit_breakers.load_average.enabled", true)
	viper.SetDefault("circuit_breakers.load_average.threshold", 8.0)
	viper.SetDefault("circuit_breakers.cpu.enabled", false)
	viper.SetDefault("circuit_breakers.cpu.threshold", 90.0)
	viper.SetDefault("circuit_breakers.memory.enabled", false)
	viper.SetDefault("circuit_breakers.memory.threshold", 95.0)
	viper.SetDefault("watch_interval", "10s")
	viper.SetDefault("metrics_buffer", 1000)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Error("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.CircuitBreakers,
			validation.By(validateCircuitBreakers),
		),
		validation.Field(&c.WatchInterval,
			validation.Required,
			validation.By(validateDuration),
		),
		validation.Field(&c.MetricsBuffer,
			validation.Required,
			validation.Min(1),
		),
	)
}

func validateCircuitBreakers(value interface{}) error {
	cb, ok := value.(CircuitBreakersConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a CircuitBreakersConfig")
	}
	return validation.ValidateStruct(&cb,
		validation.Field(&cb.LoadAverage, validation.By(validateBreakerConfig)),
		validation.Field(&cb.CPU, validation.By(validateBreakerConfig)),
		validation.Field(&cb.Memory, validation.By(validateBreakerConfig)),
	)
}

func validateBreakerConfig(value interface{}) error {
	bc, ok := value.(BreakerConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a BreakerConfig")
	}

	if bc.Enabled && bc.Threshold <= 0 {
		return validation.NewError("validation_invalid_threshold", "threshold must be positive when the breaker is enabled")
	}

	return nil
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	return nil
}
