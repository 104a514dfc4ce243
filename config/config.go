package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/angeloszaimis/wake-web/internal/targets"
	"github.com/angeloszaimis/wake-web/internal/visitor"
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
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type TargetsConfig struct {
	Path string `mapstructure:"path"`
}

type ScheduleConfig struct {
	Interval string `mapstructure:"interval"`
}

type VisitorConfig struct {
	Engine    string `mapstructure:"engine"`
	Timeout   string `mapstructure:"timeout"`
	UserAgent string `mapstructure:"user_agent"`
}

type StatusConfig struct {
	MaxLogLines    int `mapstructure:"max_log_lines"`
	RefreshSeconds int `mapstructure:"refresh_seconds"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Targets  TargetsConfig  `mapstructure:"targets"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Visitor  VisitorConfig  `mapstructure:"visitor"`
	Status   StatusConfig   `mapstructure:"status"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("targets.path", targets.DefaultPath())
	v.SetDefault("schedule.interval", "5m")
	v.SetDefault("visitor.engine", visitor.EngineHTTP)
	v.SetDefault("visitor.timeout", "15s")
	v.SetDefault("visitor.user_agent", visitor.DefaultUserAgent)
	v.SetDefault("status.max_log_lines", 100)
	v.SetDefault("status.refresh_seconds", 1)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Hosting platforms hand the listen port over as PORT.
	if err := v.BindEnv("server.port", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

// ScheduleInterval returns the parsed check interval. Call after Validate.
func (c *Config) ScheduleInterval() time.Duration {
	d, _ := time.ParseDuration(c.Schedule.Interval)
	return d
}

// VisitTimeout returns the parsed per-visit timeout. Call after Validate.
func (c *Config) VisitTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Visitor.Timeout)
	return d
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
					validation.Field(&sc.Port,
						validation.Required,
						validation.Min(1),
						validation.Max(65535),
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
		validation.Field(&c.Targets,
			validation.Required,
			validation.By(func(value interface{}) error {
				tc, ok := value.(TargetsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a TargetsConfig")
				}
				return validation.ValidateStruct(&tc,
					validation.Field(&tc.Path, validation.Required),
				)
			}),
		),
		validation.Field(&c.Schedule,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ScheduleConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ScheduleConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Interval,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Visitor,
			validation.Required,
			validation.By(func(value interface{}) error {
				vc, ok := value.(VisitorConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a VisitorConfig")
				}
				return validation.ValidateStruct(&vc,
					validation.Field(&vc.Engine,
						validation.Required,
						validation.In(visitor.EngineHTTP, visitor.EngineBrowser),
					),
					validation.Field(&vc.Timeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Status,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(StatusConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a StatusConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.MaxLogLines,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&sc.RefreshSeconds,
						validation.Min(0),
					),
				)
			}),
		),
	)
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 15s, 5m, 1h)")
	}

	if d <= 0 {
		return validation.NewError("validation_non_positive_duration", "must be greater than zero")
	}

	return nil
}
