package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort   string `toml:"http_port"`
	DBHost     string `toml:"db_host"`
	DBPort     string `toml:"db_port"`
	DBUser     string `toml:"db_user"`
	DBPassword string `toml:"db_password"`
	DBName     string `toml:"db_name"`
	DBSslMode  string `toml:"db_sslmode"`
	// RedisAddress enables the distributed dispatch lock; empty falls back to
	// the database row locks alone.
	RedisAddress string `toml:"redis_address"`
	LogLevel     string `toml:"log_level"`
	// AuditSchedule is a six-field cron expression; empty disables the audit job.
	AuditSchedule string `toml:"audit_schedule"`
}

func DefaultConfig() Config {
	return Config{
		HTTPPort:  "8080",
		DBHost:    "localhost",
		DBPort:    "5432",
		DBSslMode: "disable",
		LogLevel:  "info",
	}
}

// LoadConfig starts from DefaultConfig, applies environment variables (a .env
// file in the working directory is loaded first when present) and finally the
// TOML file at path, if one is given.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	cfg.applyEnv(os.LookupEnv)

	if strings.TrimSpace(path) != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err = toml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	for key, field := range map[string]*string{
		"HTTP_PORT":      &c.HTTPPort,
		"DB_HOST":        &c.DBHost,
		"DB_PORT":        &c.DBPort,
		"DB_USER":        &c.DBUser,
		"DB_PASSWORD":    &c.DBPassword,
		"DB_NAME":        &c.DBName,
		"DB_SSLMODE":     &c.DBSslMode,
		"REDIS_ADDRESS":  &c.RedisAddress,
		"LOG_LEVEL":      &c.LogLevel,
		"AUDIT_SCHEDULE": &c.AuditSchedule,
	} {
		if v, ok := lookup(key); ok {
			*field = strings.TrimSpace(v)
		}
	}
}

func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return errors.New("http port is required")
	}
	if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
		return errors.New("db host, name and user are required")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
