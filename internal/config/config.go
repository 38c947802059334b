package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config contains runtime configuration values.
type Config struct {
	// DefaultTimeout applies to messages without their own timeout option.
	DefaultTimeout time.Duration `mapstructure:"default_timeout" validate:"gt=0"`

	Log  LogConfig  `mapstructure:"log"`
	HTTP HTTPConfig `mapstructure:"http"`

	// Fields and Attachments are definition strings, fields first.
	Fields      []string `mapstructure:"fields"`
	Attachments []string `mapstructure:"attachments"`

	// Hooks are message option strings sent once at startup.
	Hooks []string `mapstructure:"hooks"`

	Alarms []AlarmConfig `mapstructure:"alarms" validate:"unique=Name,dive"`

	// Oneshot runs the hooks and exits instead of serving.
	Oneshot bool `mapstructure:"oneshot"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// HTTPConfig controls the trigger and metrics listener. An empty Addr disables it.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
	// Token is the bearer token required on trigger routes.
	Token           string        `mapstructure:"token" validate:"required_with=Addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// AlarmConfig declares one alarm instance.
type AlarmConfig struct {
	Name string `mapstructure:"name" validate:"required"`
	// Options is the message option string parsed once at startup.
	Options string `mapstructure:"options" validate:"required"`
	// Schedule is an optional cron spec; Message is the text sent on each tick.
	Schedule string `mapstructure:"schedule"`
	Message  string `mapstructure:"message" validate:"required_with=Schedule"`
}

const (
	envPrefix = "SLACK_NOTIFIER"

	defaultTimeout         = 4 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultShutdownTimeout = 5 * time.Second
)

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Load builds a Config from command line arguments, an optional YAML file and
// SLACK_NOTIFIER_* environment variables. Repeated definition flags are appended
// after the entries of the file.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("slack-notifier", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "path to a YAML config file")
	fieldFlags := fs.StringArray("slack-field", nil, "define a slack attachment field (repeatable)")
	attachmentFlags := fs.StringArray("slack-attachment", nil, "define a slack attachment (repeatable)")
	hookFlags := fs.StringArray("hook", nil, "send a slack message at startup (repeatable)")
	fs.Bool("oneshot", false, "run hooks and exit")
	fs.String("http.addr", "", "listen address for triggers and metrics")
	fs.String("log.level", defaultLogLevel, "log level")
	fs.String("log.format", defaultLogFormat, "log format: json or console")
	fs.Duration("default_timeout", defaultTimeout, "default delivery timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	v.SetDefault("default_timeout", defaultTimeout)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("http.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("http.token", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"oneshot", "http.addr", "log.level", "log.format", "default_timeout"} {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if *configPath != "" {
		v.SetConfigFile(*configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Fields = append(cfg.Fields, *fieldFlags...)
	cfg.Attachments = append(cfg.Attachments, *attachmentFlags...)
	cfg.Hooks = append(cfg.Hooks, *hookFlags...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Oneshot && len(c.Hooks) == 0 {
		return fmt.Errorf("%w: oneshot needs at least one hook", ErrInvalidConfig)
	}
	return nil
}
