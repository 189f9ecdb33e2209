package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string

	Port        int
	Environment string
	JWTSecret   string
	CORSOrigins []string
	LogFile     string
}

// Load reads settings from the environment, seeded by ./.env when present.
// Real environment variables win over the file.
func Load() *Config {
	return load(".env")
}

func load(envFile string) *Config {
	v := viper.New()

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("database_url", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432) // fallback
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "")
	v.SetDefault("port", 8000)
	v.SetDefault("environment", "development")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("log_file", "")

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				log.Printf("[WARN] failed to read %s: %v", envFile, err)
			}
		}
	}

	v.AutomaticEnv()

	return &Config{
		DBDriver:    strings.ToLower(strings.TrimSpace(v.GetString("db_driver"))),
		DatabaseURL: v.GetString("database_url"),
		DBHost:      v.GetString("db_host"),
		DBPort:      v.GetInt("db_port"),
		DBUser:      v.GetString("db_user"),
		DBPassword:  v.GetString("db_password"),
		DBName:      v.GetString("db_name"),

		Port:        v.GetInt("port"),
		Environment: v.GetString("environment"),
		JWTSecret:   v.GetString("jwt_secret"),
		CORSOrigins: splitList(v.GetString("cors_origins")),
		LogFile:     v.GetString("log_file"),
	}
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
	case "sqlite":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for sqlite (e.g., ./tasks.db or :memory:)")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be 'postgres' or 'sqlite', got: %s", c.DBDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// ConnString returns the DSN for the configured driver.
// DATABASE_URL wins; otherwise the postgres keyword form is built from parts.
func (c *Config) ConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
