package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string        `mapstructure:"PORT"`
	Env               string        `mapstructure:"ENV"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32         `mapstructure:"DB_MIN_CONNS"`
	RedisURL          string        `mapstructure:"REDIS_URL"`
	GenAIAPIKey       string        `mapstructure:"GENAI_API_KEY"`
	GenAIModel        string        `mapstructure:"GENAI_MODEL"`
	GenAITimeout      time.Duration `mapstructure:"GENAI_TIMEOUT"`
	SessionSigningKey string        `mapstructure:"SESSION_SIGNING_KEY"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("GENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GENAI_TIMEOUT", "30s")
	v.SetDefault("SESSION_SIGNING_KEY", "dev-signing-key")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("GENAI_API_KEY")
	v.BindEnv("GENAI_MODEL")
	v.BindEnv("GENAI_TIMEOUT")
	v.BindEnv("SESSION_SIGNING_KEY")
	v.BindEnv("SESSION_TTL")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasDatabase reports whether a Postgres registry is configured. Without
// one the server runs on the seeded demo dataset.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasRedis reports whether sessions should live in Redis rather than in
// process memory.
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}

// Validate checks that the configuration is safe to run. Production
// refuses to start on the default signing key, and the session TTL must
// be positive.
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "production" && c.Env != "test" {
		return fmt.Errorf("ENV must be \"development\", \"production\", or \"test\", got %q", c.Env)
	}
	if c.IsProduction() && (c.SessionSigningKey == "" || c.SessionSigningKey == "dev-signing-key") {
		return fmt.Errorf("SESSION_SIGNING_KEY must be set to a real secret in production")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.GenAITimeout <= 0 {
		return fmt.Errorf("GENAI_TIMEOUT must be positive, got %s", c.GenAITimeout)
	}
	return nil
}
