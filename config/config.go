package config

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// CutoffLayout is the date format of readings.cutoff.
const CutoffLayout = "2006-01-02"

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Readings  ReadingsConfig  `mapstructure:"readings"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	// APIKey enables X-API-Key checking on /api/v1 when set.
	APIKey string `mapstructure:"api_key"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// ReadingsConfig controls readings file parsing
type ReadingsConfig struct {
	HeaderLines int    `mapstructure:"header_lines"`
	Delimiter   string `mapstructure:"delimiter"`
	Encoding    string `mapstructure:"encoding"`
	Timezone    string `mapstructure:"timezone"`
	// Cutoff applies to the bundled dataset only.
	Cutoff      string `mapstructure:"cutoff"`
	BundledPath string `mapstructure:"bundled_path"`
}

// PricingConfig holds pricing defaults
type PricingConfig struct {
	DefaultPrice float64 `mapstructure:"default_price"`
}

// SessionsConfig controls the session registry
type SessionsConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	MaxSessions   int           `mapstructure:"max_sessions"`
	AutoCreate    bool          `mapstructure:"auto_create"`
}

// StorageConfig holds upload archive configuration
type StorageConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BasePath string `mapstructure:"base_path"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// Location resolves readings.timezone. Empty means UTC.
func (c ReadingsConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("readings.timezone: %w", err)
	}
	return loc, nil
}

// CutoffTime parses readings.cutoff in loc. Empty means no cutoff.
func (c ReadingsConfig) CutoffTime(loc *time.Location) (time.Time, error) {
	if c.Cutoff == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(CutoffLayout, c.Cutoff, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("readings.cutoff: expected %s: %w", CutoffLayout, err)
	}
	return t, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Readings.HeaderLines < 0 {
		errs = append(errs, errors.New("readings.header_lines must not be negative"))
	}
	loc, err := c.Readings.Location()
	if err != nil {
		errs = append(errs, err)
	} else if _, err := c.Readings.CutoffTime(loc); err != nil {
		errs = append(errs, err)
	}
	if price := c.Pricing.DefaultPrice; !(price > 0) || math.IsInf(price, 1) {
		errs = append(errs, errors.New("pricing.default_price must be a positive number"))
	}
	if c.Sessions.TTL <= 0 || c.Sessions.SweepInterval <= 0 {
		errs = append(errs, errors.New("sessions.ttl and sessions.sweep_interval must be positive"))
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}
	return errors.Join(errs...)
}

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := loadEnvFile(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	v.SetEnvPrefix("METER_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env file found into the process environment.
func loadEnvFile() error {
	for _, path := range []string{".", "./config"} {
		envFile := path + "/.env"
		if _, err := os.Stat(envFile); err == nil {
			return loadDotEnvFile(envFile)
		}
	}
	return errors.New("no .env file found")
}

// loadDotEnvFile reads KEY=VALUE lines. Variables already set win.
func loadDotEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		if _, set := os.LookupEnv(key); set {
			continue
		}
		os.Setenv(key, strings.Trim(strings.TrimSpace(value), "\"'"))
	}
	return scanner.Err()
}

// bindEnvVars binds unprefixed environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", "METER_SERVICE_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.host", "METER_SERVICE_SERVER_HOST", "HOST")
	_ = v.BindEnv("server.api_key", "METER_SERVICE_SERVER_API_KEY", "API_KEY")
	_ = v.BindEnv("logging.level", "METER_SERVICE_LOGGING_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("storage.base_path", "METER_SERVICE_STORAGE_BASE_PATH", "STORAGE_PATH")
	_ = v.BindEnv("telemetry.endpoint", "METER_SERVICE_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_bytes", 32<<20)
	v.SetDefault("server.api_key", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)

	v.SetDefault("readings.header_lines", 11)
	v.SetDefault("readings.delimiter", "auto")
	v.SetDefault("readings.encoding", "auto")
	v.SetDefault("readings.timezone", "")
	v.SetDefault("readings.cutoff", "2024-09-15")
	v.SetDefault("readings.bundled_path", "")

	v.SetDefault("pricing.default_price", 0.61)

	v.SetDefault("sessions.ttl", 2*time.Hour)
	v.SetDefault("sessions.sweep_interval", 5*time.Minute)
	v.SetDefault("sessions.max_sessions", 1000)
	v.SetDefault("sessions.auto_create", true)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.base_path", "./data/uploads")

	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.service_name", "meter-service")
}
