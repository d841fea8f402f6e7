package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys such as database.dsn to DATABASE_DSN.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	// DSN wins over the individual connection fields when set.
	DSN          string `mapstructure:"dsn"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	LogLevel     string `mapstructure:"log_level"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	Host              string        `mapstructure:"host"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig controls the process logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig configures the per-client request limiter. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// CORSConfig lists the origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GetDatabaseDSN returns the postgres connection string.
func (d DatabaseConfig) GetDatabaseDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host,
		d.User,
		d.Password,
		d.Name,
		d.Port,
		d.SSLMode,
	)
}

// GetMigrationURL returns the URL form of the connection string, as expected by lib/pq
// and golang-migrate.
func (d DatabaseConfig) GetMigrationURL() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set default values
	v.SetDefault("database.dsn", os.Getenv("DB_CONNECTION_STRING"))
	v.SetDefault("database.host", getEnv("PG_HOST", "localhost"))
	v.SetDefault("database.port", getEnvInt("PG_PORT", 5432))
	v.SetDefault("database.user", getEnv("PG_USER", "postgres"))
	v.SetDefault("database.password", getEnv("PG_PASSWORD", ""))
	v.SetDefault("database.name", getEnv("PG_DATABASE", "contactbook"))
	v.SetDefault("database.ssl_mode", getEnv("PG_SSL_MODE", "disable"))
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("server.port", getEnvInt("PORT", 3000))
	v.SetDefault("server.host", getEnv("SERVER_HOST", "0.0.0.0"))
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", getEnv("LOG_LEVEL", "info"))
	v.SetDefault("log.format", getEnv("LOG_FORMAT", "json"))
	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", 0)
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// Enable environment variable support
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we'll use defaults and env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
