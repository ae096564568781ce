package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Predictor PredictorConfig
	Announce  AnnounceConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// CORSConfig lists the origins and request headers allowed from a browser.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedHeaders []string
}

// RateLimitConfig configures the global request limiter. A zero RPS disables it.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// PredictorConfig controls the placeholder prediction model.
type PredictorConfig struct {
	ReferenceDataPath      string
	NormalizeProbabilities bool
	Seed                   uint64
}

// AnnounceConfig describes how the service advertises itself once listening.
type AnnounceConfig struct {
	PublicURL string
}

const (
	defaultPort            = "5000"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultRateLimitBurst = 20
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided or invalid.
func Load() (Config, error) {
	// PORT wins so hosted platforms can inject it; SERVER_PORT is for local dev
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedHeaders: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Burst: defaultRateLimitBurst,
		},
		Predictor: PredictorConfig{
			ReferenceDataPath: os.Getenv("REFERENCE_DATA_PATH"),
		},
		Announce: AnnounceConfig{
			PublicURL: getEnv("PUBLIC_URL", "http://localhost:"+port),
		},
	}

	if v := os.Getenv("SERVER_READ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ReadTimeout = d
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.WriteTimeout = d
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := parseList(v)
		if len(origins) == 0 {
			return Config{}, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS: no origins listed")
		}
		cfg.CORS.AllowedOrigins = origins
	}

	if v := os.Getenv("CORS_ALLOWED_HEADERS"); v != "" {
		headers := parseList(v)
		if len(headers) == 0 {
			return Config{}, fmt.Errorf("invalid CORS_ALLOWED_HEADERS: no headers listed")
		}
		cfg.CORS.AllowedHeaders = headers
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS: must be a non-negative number")
		}
		cfg.RateLimit.RPS = rps
	}

	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST: must be a positive integer")
		}
		cfg.RateLimit.Burst = burst
	}

	if v := os.Getenv("PREDICTOR_NORMALIZE_PROBABILITIES"); v != "" {
		normalize, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PREDICTOR_NORMALIZE_PROBABILITIES: %w", err)
		}
		cfg.Predictor.NormalizeProbabilities = normalize
	}

	if v := os.Getenv("PREDICTOR_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PREDICTOR_SEED: must be an unsigned integer")
		}
		cfg.Predictor.Seed = seed
	}

	cfg.Announce.PublicURL = strings.TrimRight(cfg.Announce.PublicURL, "/")

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
