package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (DB connection, etc.)
// - default: Values common across all environments (timezone, cache TTL, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	DB     DBConfig
	Redis  RedisConfig
	Log    LogConfig
	Engine EngineConfig
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type RedisConfig struct {
	// Empty address disables the shared selection cache.
	Addr              string        `envconfig:"REDIS_ADDR"`
	Password          string        `envconfig:"REDIS_PASSWORD"`
	DB                int           `envconfig:"REDIS_DB" default:"0"`
	SelectionCacheTTL time.Duration `envconfig:"SELECTION_CACHE_TTL" default:"10m"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Format     string `envconfig:"LOG_FORMAT" default:"text"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type EngineConfig struct {
	// Used for staff users that have no timezone of their own.
	DefaultTimezone string `envconfig:"ENGINE_DEFAULT_TIMEZONE" default:"UTC"`
	// Above this many linked peers the combination search switches to a greedy pick.
	MaxCombinationPeers int `envconfig:"ENGINE_MAX_COMBINATION_PEERS" default:"10"`
	// 0 seeds the staff shuffle from the current time.
	RandomSeed uint64 `envconfig:"ENGINE_RANDOM_SEED" default:"0"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.MaxConns,
	)
}

func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		Redis: RedisConfig{
			SelectionCacheTTL: time.Minute,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			Format:     "text",
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Engine: EngineConfig{
			DefaultTimezone:     "UTC",
			MaxCombinationPeers: 10,
			RandomSeed:          42,
		},
	}
}
