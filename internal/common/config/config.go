package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

type Config struct {
	Debug       bool `env:"DEBUG" envDefault:"false"`
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"false"`

	Server struct {
		Port            int           `env:"PORT" envDefault:"3001"`
		Origins         []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
		ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
		ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}

	Postgres struct {
		Host            string        `env:"DB_HOST" envDefault:"localhost"`
		Port            int           `env:"DB_PORT" envDefault:"5432"`
		User            string        `env:"DB_USER" envDefault:"postgres"`
		Password        string        `env:"DB_PASSWORD" envDefault:""`
		Database        string        `env:"DB_NAME" envDefault:"yapdb"`
		SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
		MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
		MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	}

	Redis struct {
		Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Chain struct {
		RPCURL       string `env:"CORE_RPC_URL" envDefault:"https://rpc.test2.btcs.network"`
		TokenAddress string `env:"YAP_TOKEN_ADDRESS" envDefault:""`
		PrivateKey   string `env:"PRIVATE_KEY" envDefault:""`
		// ChainID of 0 means ask the node.
		ChainID int64 `env:"CHAIN_ID" envDefault:"0"`
	}

	Reward struct {
		Amount        decimal.Decimal `env:"REWARD_AMOUNT" envDefault:"1"`
		Timeout       time.Duration   `env:"REWARD_TIMEOUT" envDefault:"30s"`
		ClaimTTL      time.Duration   `env:"REWARD_CLAIM_TTL" envDefault:"24h"`
		// RetrySchedule of "off" disables the retry worker.
		RetrySchedule string          `env:"REWARD_RETRY_SCHEDULE" envDefault:"@every 5m"`
		RetryBatch    int             `env:"REWARD_RETRY_BATCH" envDefault:"20"`
	}

	Lessons struct {
		StreakWindowDays int           `env:"STREAK_WINDOW_DAYS" envDefault:"7"`
		StatsCacheTTL    time.Duration `env:"STATS_CACHE_TTL" envDefault:"5m"`
		ProfileCacheTTL  time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"10m"`
	}

	RateLimit struct {
		RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
		Burst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
	}
}

// DSN returns a lib/pq connection string.
func (c *Config) DSN() string {
	p := c.Postgres
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// RedisAddr returns host:port for the redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// RetryEnabled reports whether failed rewards are retried in the background.
func (c *Config) RetryEnabled() bool {
	schedule := strings.TrimSpace(c.Reward.RetrySchedule)
	return schedule != "" && !strings.EqualFold(schedule, "off")
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional; in production variables come from the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Reward.Amount.IsNegative() {
		return fmt.Errorf("REWARD_AMOUNT must not be negative")
	}
	if c.Reward.Timeout <= 0 {
		return fmt.Errorf("REWARD_TIMEOUT must be positive")
	}
	if c.Lessons.StreakWindowDays <= 0 {
		return fmt.Errorf("STREAK_WINDOW_DAYS must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.RetryEnabled() {
		if _, err := cron.ParseStandard(c.Reward.RetrySchedule); err != nil {
			return fmt.Errorf("REWARD_RETRY_SCHEDULE: %w", err)
		}
	}
	return nil
}
