package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"horse.fit/mtran/internal/langdetect"
	"horse.fit/mtran/internal/mtran"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	APIURL               string        `envconfig:"MTRAN_API_URL" default:"http://localhost:8989"`
	Token                string        `envconfig:"MTRAN_TOKEN" default:""`
	PreflightHealthCheck bool          `envconfig:"MTRAN_PREFLIGHT_HEALTH_CHECK" default:"false"`
	EmptyTextPolicy      string        `envconfig:"MTRAN_EMPTY_TEXT_POLICY" default:"return-empty"`
	TranslateTimeout     time.Duration `envconfig:"MTRAN_TRANSLATE_TIMEOUT" default:"15s"`
	HealthTimeout        time.Duration `envconfig:"MTRAN_HEALTH_TIMEOUT" default:"5s"`
	DetectLanguage       bool          `envconfig:"MTRAN_DETECT_LANGUAGE" default:"true"`

	StubHost  string `envconfig:"MTRAN_STUB_HOST" default:"127.0.0.1"`
	StubPort  int    `envconfig:"MTRAN_STUB_PORT" default:"8989"`
	StubToken string `envconfig:"MTRAN_STUB_TOKEN" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := mtran.ParseEmptyTextPolicy(c.EmptyTextPolicy); err != nil {
		return fmt.Errorf("MTRAN_EMPTY_TEXT_POLICY: %w", err)
	}
	if c.TranslateTimeout <= 0 {
		return fmt.Errorf("MTRAN_TRANSLATE_TIMEOUT must be > 0")
	}
	if c.HealthTimeout <= 0 {
		return fmt.Errorf("MTRAN_HEALTH_TIMEOUT must be > 0")
	}
	if c.StubPort <= 0 || c.StubPort > 65535 {
		return fmt.Errorf("MTRAN_STUB_PORT must be between 1 and 65535")
	}
	return nil
}

// Server returns the per-call server configuration.
func (c *Config) Server() *mtran.Config {
	return &mtran.Config{
		APIURL: strings.TrimSpace(c.APIURL),
		Token:  c.Token,
	}
}

// Policy returns the behavior switches. Validate has already vetted the
// empty text policy, so an unknown value falls back to the default.
func (c *Config) Policy() mtran.Policy {
	emptyText, err := mtran.ParseEmptyTextPolicy(c.EmptyTextPolicy)
	if err != nil {
		emptyText = mtran.EmptyTextReturnEmpty
	}
	return mtran.Policy{
		PreflightHealthCheck: c.PreflightHealthCheck,
		EmptyText:            emptyText,
	}
}

// ClientOptions translates the configuration into client options.
func (c *Config) ClientOptions(logger zerolog.Logger) []mtran.Option {
	opts := []mtran.Option{
		mtran.WithLogger(logger),
		mtran.WithPolicy(c.Policy()),
		mtran.WithTimeouts(c.TranslateTimeout, c.HealthTimeout),
	}
	if c.DetectLanguage {
		opts = append(opts, mtran.WithDetector(langdetect.Detector{}))
	}
	return opts
}
