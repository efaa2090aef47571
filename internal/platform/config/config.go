package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	JWTSecret          string
	JWTTTL             time.Duration
	Environment        string
	LogLevel           string
	SeedAdminEmail     string
	SeedAdminPassword  string
	SeedAdminName      string
	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
	DBMaxConns         int
}

// Load reads the environment. Values from APP_CONFIG_FILE act as defaults beneath it.
func Load() (Config, error) {
	file := map[string]string{}
	if path := os.Getenv("APP_CONFIG_FILE"); path != "" {
		loaded, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}
	src := source{file: file}

	return Config{
		Addr:               src.str("APP_ADDR", ":8080"),
		DatabaseURL:        src.str("DATABASE_URL", ""),
		JWTSecret:          src.str("JWT_SECRET", ""),
		JWTTTL:             src.duration("JWT_TTL", 12*time.Hour),
		Environment:        src.str("APP_ENV", "development"),
		LogLevel:           src.str("LOG_LEVEL", "info"),
		SeedAdminEmail:     src.str("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:  src.str("SEED_ADMIN_PASSWORD", ""),
		SeedAdminName:      src.str("SEED_ADMIN_NAME", "HR Administrator"),
		RunMigrations:      src.boolean("RUN_MIGRATIONS", true),
		RunSeed:            src.boolean("RUN_SEED", true),
		MaxBodyBytes:       int64(src.integer("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: src.integer("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:     src.boolean("METRICS_ENABLED", true),
		DBMaxConns:         src.integer("DB_MAX_CONNS", 10),
	}, nil
}

// readFile accepts a flat YAML mapping keyed by the environment variable names.
func readFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	out := make(map[string]string, len(values))
	for key, value := range values {
		if value == nil {
			continue
		}
		out[strings.ToUpper(key)] = fmt.Sprint(value)
	}
	return out, nil
}

type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return s.file[key]
}

func (s source) str(key, fallback string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return fallback
}

func (s source) boolean(key string, fallback bool) bool {
	value := s.lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s source) integer(key string, fallback int) int {
	value := s.lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s source) duration(key string, fallback time.Duration) time.Duration {
	value := s.lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if len(strings.TrimSpace(c.JWTSecret)) < 32 {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	return nil
}
