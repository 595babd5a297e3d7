// Package config loads service configuration from defaults, an optional
// config file, and QUIZFORGE_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Invocation modes for the agent adapter.
const (
	ModeMock = "mock"
	ModeLive = "live"
)

// Dispatch modes for the async worker trigger.
const (
	DispatchInline = "inline"
	DispatchLambda = "lambda"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Store    StoreConfig    `mapstructure:"store"`
	Agent    AgentConfig    `mapstructure:"agent"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Extract  ExtractConfig  `mapstructure:"extract"`
	Presign  PresignConfig  `mapstructure:"presign"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// RateLimit is the sustained requests/second admitted per process.
	// Zero disables rate limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

type StoreConfig struct {
	Bucket         string `mapstructure:"bucket"`
	Prefix         string `mapstructure:"prefix"`
	Endpoint       string `mapstructure:"endpoint"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
}

type AgentConfig struct {
	// Mode selects mock echo or live runtime invocation.
	Mode string `mapstructure:"mode"`

	// RuntimeARN identifies the agent runtime. Required in live mode only.
	RuntimeARN string `mapstructure:"runtime_arn"`

	// Qualifier optionally pins a runtime version.
	Qualifier string `mapstructure:"qualifier"`
}

type DispatchConfig struct {
	// Mode selects inline goroutine dispatch or Lambda self-invocation.
	Mode string `mapstructure:"mode"`

	// Function is the worker function name. Required in lambda mode.
	Function string `mapstructure:"function"`

	// ProcessTimeout bounds one inline worker run.
	ProcessTimeout time.Duration `mapstructure:"process_timeout"`
}

type ExtractConfig struct {
	// ModelID is the multimodal model used for text extraction and local
	// quiz generation, e.g. a Bedrock Converse model id.
	ModelID string `mapstructure:"model_id"`
}

type PresignConfig struct {
	// Bucket receives client uploads. Defaults to the store bucket.
	Bucket string `mapstructure:"bucket"`

	// Expiry bounds presigned upload URL validity.
	Expiry time.Duration `mapstructure:"expiry"`
}

// EnvPrefix is the environment variable prefix, e.g. QUIZFORGE_STORE_BUCKET.
const EnvPrefix = "QUIZFORGE"

// SetDefaults registers configuration defaults on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 0.0)
	v.SetDefault("server.rate_burst", 20)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")

	v.SetDefault("store.bucket", "")
	v.SetDefault("store.prefix", "jobs/")
	v.SetDefault("store.endpoint", "")
	v.SetDefault("store.force_path_style", false)

	v.SetDefault("agent.mode", ModeMock)
	v.SetDefault("agent.runtime_arn", "")
	v.SetDefault("agent.qualifier", "")

	v.SetDefault("dispatch.mode", DispatchInline)
	v.SetDefault("dispatch.function", "")
	v.SetDefault("dispatch.process_timeout", 5*time.Minute)

	v.SetDefault("extract.model_id", "")

	v.SetDefault("presign.bucket", "")
	v.SetDefault("presign.expiry", 15*time.Minute)
}

// Load reads configuration from an optional file path plus environment
// overrides and returns the typed config.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that defaults cannot express.
// Required deployment settings (store bucket, runtime ARN in live mode) are
// deliberately NOT validated here: their absence is surfaced per-operation
// so read-only surfaces keep working on a partially configured deployment.
func (c *Config) Validate() error {
	switch c.Agent.Mode {
	case ModeMock, ModeLive:
	default:
		return fmt.Errorf("config: unsupported agent mode: %q", c.Agent.Mode)
	}

	switch c.Dispatch.Mode {
	case DispatchInline:
	case DispatchLambda:
		if c.Dispatch.Function == "" {
			return fmt.Errorf("config: dispatch.function is required in lambda mode")
		}
	default:
		return fmt.Errorf("config: unsupported dispatch mode: %q", c.Dispatch.Mode)
	}

	return nil
}

// PresignBucket resolves the upload bucket, falling back to the store bucket.
func (c *Config) PresignBucket() string {
	if c.Presign.Bucket != "" {
		return c.Presign.Bucket
	}
	return c.Store.Bucket
}
