package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig tunes the bulk processor, the per-employee lock manager,
// the reconciliation worker pool and the memoization cache.
type AttendanceConfig struct {
	// LockTimeout bounds how long a crashed holder can keep an employee
	// lock before the next acquirer seizes it.
	LockTimeout time.Duration

	// RetryAttempts / RetryBackoff bound the re-fetch-and-reapply loop on
	// optimistic version conflicts.
	RetryAttempts int
	RetryBackoff  time.Duration

	// WorkerBatchSize bounds parallel per-employee validation in one batch.
	WorkerBatchSize int

	ReconcileWorkers   int
	ReconcileQueueSize int
	SweepInterval      time.Duration

	AllocationCacheTTL   time.Duration
	FinalizationCacheTTL time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "staffloom_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance engine configuration
	lockTimeout, err := time.ParseDuration(getEnv("ATTENDANCE_LOCK_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_LOCK_TIMEOUT: %w", err)
	}
	retryAttempts, err := strconv.Atoi(getEnv("ATTENDANCE_RETRY_ATTEMPTS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_RETRY_ATTEMPTS: %w", err)
	}
	retryBackoff, err := time.ParseDuration(getEnv("ATTENDANCE_RETRY_BACKOFF", "50ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_RETRY_BACKOFF: %w", err)
	}
	workerBatchSize, err := strconv.Atoi(getEnv("ATTENDANCE_WORKER_BATCH_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_WORKER_BATCH_SIZE: %w", err)
	}
	reconcileWorkers, err := strconv.Atoi(getEnv("RECONCILE_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_WORKERS: %w", err)
	}
	reconcileQueueSize, err := strconv.Atoi(getEnv("RECONCILE_QUEUE_SIZE", "256"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_QUEUE_SIZE: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("RECONCILE_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_SWEEP_INTERVAL: %w", err)
	}
	allocationTTL, err := time.ParseDuration(getEnv("CACHE_ALLOCATION_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_ALLOCATION_TTL: %w", err)
	}
	finalizationTTL, err := time.ParseDuration(getEnv("CACHE_FINALIZATION_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_FINALIZATION_TTL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LockTimeout:          lockTimeout,
		RetryAttempts:        retryAttempts,
		RetryBackoff:         retryBackoff,
		WorkerBatchSize:      workerBatchSize,
		ReconcileWorkers:     reconcileWorkers,
		ReconcileQueueSize:   reconcileQueueSize,
		SweepInterval:        sweepInterval,
		AllocationCacheTTL:   allocationTTL,
		FinalizationCacheTTL: finalizationTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.RetryAttempts < 1 {
		return fmt.Errorf("ATTENDANCE_RETRY_ATTEMPTS must be at least 1")
	}
	if c.Attendance.WorkerBatchSize < 1 {
		return fmt.Errorf("ATTENDANCE_WORKER_BATCH_SIZE must be at least 1")
	}
	if c.Attendance.ReconcileWorkers < 1 {
		return fmt.Errorf("RECONCILE_WORKERS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
