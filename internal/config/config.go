// Package config loads service settings from .env and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Addr        string
	Env         string
	TLSCertFile string
	TLSKeyFile  string

	StoreDriver   string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	StoreTimeout  time.Duration

	RedisURL       string
	RateLimitRPS   float64
	RateLimitBurst int

	MaxBodySize    int64
	AllowedOrigins []string

	SeedSampleData  bool
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	Snapshot Snapshot
}

// Snapshot configures cmd/snapshot. AWS credentials fall back to the
// SDK's default chain when the key pair is empty.
type Snapshot struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads files (".env" when none are given) and then the environment.
// Missing files are ignored; variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment without validating it.
func FromEnv() (Config, error) {
	var (
		c    Config
		errs []error
	)
	c.Addr = envString("APP_ADDR", ":8080")
	c.Env = strings.ToLower(envString("APP_ENV", "development"))
	c.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	c.TLSKeyFile = os.Getenv("TLS_KEY_FILE")

	c.StoreDriver = strings.ToLower(envString("STORE_DRIVER", DriverPostgres))
	c.DatabaseURL = os.Getenv("DATABASE_URL")
	c.MongoURI = os.Getenv("MONGO_URI")
	c.MongoDatabase = envString("MONGO_DATABASE", "books")

	c.RedisURL = os.Getenv("REDIS_URL")
	c.AllowedOrigins = envList("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	c.LogLevel = strings.ToLower(envString("LOG_LEVEL", "info"))
	c.LogFormat = strings.ToLower(envString("LOG_FORMAT", "text"))

	var err error
	if c.StoreTimeout, err = envDuration("STORE_TIMEOUT", "5s"); err != nil {
		errs = append(errs, err)
	}
	if c.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", "20s"); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", 5); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", 20); err != nil {
		errs = append(errs, err)
	}
	var size int
	if size, err = envInt("MAX_BODY_SIZE", 1<<20); err != nil {
		errs = append(errs, err)
	}
	c.MaxBodySize = int64(size)
	if c.SeedSampleData, err = envBool("SEED_SAMPLE_DATA", false); err != nil {
		errs = append(errs, err)
	}

	c.Snapshot = Snapshot{
		Bucket:          os.Getenv("SNAPSHOT_BUCKET"),
		Region:          envString("AWS_REGION", "auto"),
		Endpoint:        os.Getenv("AWS_ENDPOINT"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
	return c, errors.Join(errs...)
}

// Validate fails fast on settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for STORE_DRIVER=postgres"))
		}
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for STORE_DRIVER=mongo"))
		}
		if c.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_DATABASE must not be empty"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q: want postgres, mongo or memory", c.StoreDriver))
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be > 0"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be > 0"))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must be > 0"))
	}
	if c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be >= 1"))
	}
	if c.MaxBodySize <= 0 {
		errs = append(errs, errors.New("MAX_BODY_SIZE must be > 0"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q: want debug, info, warn or error", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q: want text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// TLSEnabled reports whether the server should serve HTTPS.
func (c Config) TLSEnabled() bool { return c.TLSCertFile != "" && c.TLSKeyFile != "" }

// HardeningWarnings returns non-fatal warnings worth logging on startup.
func (c Config) HardeningWarnings() []string {
	var warns []string

	if c.StoreTimeout > 30*time.Second {
		warns = append(warns, fmt.Sprintf("STORE_TIMEOUT=%s is > 30s; slow stores will hold requests open", c.StoreTimeout))
	}
	if c.StoreDriver == DriverMemory {
		warns = append(warns, "STORE_DRIVER=memory keeps books in process memory; data is lost on restart")
	}

	if c.IsProduction() {
		if c.SeedSampleData {
			warns = append(warns, "SEED_SAMPLE_DATA=true in production deletes every stored book on startup")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if c.RedisURL == "" {
			warns = append(warns, "REDIS_URL not set; rate limits are per instance")
		}
		if !c.TLSEnabled() {
			warns = append(warns, "TLS_CERT_FILE/TLS_KEY_FILE not set; serving plain HTTP")
		}
		if c.LogFormat != "json" {
			warns = append(warns, "LOG_FORMAT is not json; structured logs are easier to ship in production")
		}
		for _, o := range c.AllowedOrigins {
			if strings.HasPrefix(o, "http://localhost") || strings.HasPrefix(o, "http://127.0.0.1") {
				warns = append(warns, fmt.Sprintf("CORS origin %s allowed in production", o))
			}
		}
	}
	return warns
}

// --- helpers ---

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envList(key, def string) []string {
	var out []string
	for _, p := range strings.Split(envString(key, def), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDuration(key, def string) (time.Duration, error) {
	s := envString(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, s)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", key, s)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", key, s)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%s: not a boolean: %q", key, s)
	}
	return b, nil
}
