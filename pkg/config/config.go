// Package config loads process configuration from the environment, reading a
// .env file first when one is present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Driver    string // s3 | local
	Dir       string
	AWSRegion string
	AWSBucket string
}

type ClockConfig struct {
	Mode  string // system | simulated
	Start string // YYYY-MM-DD, simulated only
}

type Config struct {
	Port           string
	LogLevel       string
	LogFormat      string
	Database       DatabaseConfig
	Redis          RedisConfig
	Storage        StorageConfig
	SnapshotDriver string // postgres | fs | none
	JWTSecret      string
	JWTTTL         time.Duration
	Clock          ClockConfig
	RunMigrations  bool
}

// Load reads the configuration. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASS", ""),
			Name:     getEnv("DB_NAME", "hireflow"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			Dir:       getEnv("STORAGE_DIR", "./data"),
			AWSRegion: getEnv("AWS_REGION", ""),
			AWSBucket: getEnv("AWS_BUCKET", ""),
		},
		SnapshotDriver: strings.ToLower(getEnv("SNAPSHOT_DRIVER", "none")),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTTTL:         getEnvDuration("JWT_TTL", 24*time.Hour),
		Clock: ClockConfig{
			Mode:  strings.ToLower(getEnv("CLOCK_MODE", "system")),
			Start: getEnv("CLOCK_START", ""),
		},
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
