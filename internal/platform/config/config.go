package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	DataDir         string
	DataFile        string
	StoreBackend    string
	DatabaseURL     string
	Redis           RedisConfig
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// RedisConfig holds connection settings for the Redis store backend.
type RedisConfig struct {
	URL          string
	Key          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SubmissionsPath is the location of the JSON document for the file backend.
func (s Server) SubmissionsPath() string {
	return filepath.Join(s.DataDir, s.DataFile)
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("INTAKE_ADDR")
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		addr = ":" + port
	}

	return Server{
		Addr:         addr,
		DataDir:      getEnv("DATA_DIR", "data"),
		DataFile:     getEnv("DATA_FILE", "submissions.json"),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			Key:          getEnv("REDIS_KEY", "intake:submissions"),
			PoolSize:     10,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports configuration that cannot start a server.
func (s Server) Validate() error {
	switch s.StoreBackend {
	case BackendFile:
		if s.DataFile == "" {
			return fmt.Errorf("DATA_FILE must not be empty")
		}
	case BackendPostgres:
		if s.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	case BackendRedis:
		if s.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the %s backend", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", s.StoreBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
