// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// USER_SERVICE_SERVER_PORT for server.port.
const EnvPrefix = "USER_SERVICE"

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Limits    LimitsConfig
	LogLevel  string
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// CacheConfig holds list cache settings
type CacheConfig struct {
	TTL time.Duration
}

// AuthConfig holds bearer token settings. The defaults are placeholders and
// must be overridden wherever Enforce is turned on.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Enforce  bool
	TokenTTL time.Duration
}

// RateLimitConfig holds per-IP rate limit settings; 0 requests disables it
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// LimitsConfig holds request size limits
type LimitsConfig struct {
	MaxBodyBytes int64
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("auth.secret", "your_secret_key_here")
	v.SetDefault("auth.issuer", "your_issuer")
	v.SetDefault("auth.audience", "your_audience")
	v.SetDefault("auth.enforce", false)
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("rate_limit.requests_per_minute", 0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("limits.max_body_bytes", int64(1<<20))

	v.SetDefault("log.level", "info")
}

// BindEnv enables USER_SERVICE_* environment overrides on v
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load builds a Config from v and validates it
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetString("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Cache: CacheConfig{
			TTL: v.GetDuration("cache.ttl"),
		},
		Auth: AuthConfig{
			Secret:   v.GetString("auth.secret"),
			Issuer:   v.GetString("auth.issuer"),
			Audience: v.GetString("auth.audience"),
			Enforce:  v.GetBool("auth.enforce"),
			TokenTTL: v.GetDuration("auth.token_ttl"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: v.GetInt("rate_limit.requests_per_minute"),
			Burst:             v.GetInt("rate_limit.burst"),
		},
		Limits: LimitsConfig{
			MaxBodyBytes: v.GetInt64("limits.max_body_bytes"),
		},
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by the defaults alone
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// Validate checks settings that would otherwise fail at runtime
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return fmt.Errorf("auth.secret is required")
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute cannot be negative")
	}
	if c.Limits.MaxBodyBytes < 1 {
		return fmt.Errorf("limits.max_body_bytes must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}
