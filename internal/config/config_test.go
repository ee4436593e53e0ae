package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"horse.fit/mtran/internal/mtran"
)

// unsetEnv clears key for the duration of the test. t.Setenv records the
// original value so it is restored afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT",
		"LOG_LEVEL",
		"MTRAN_API_URL",
		"MTRAN_PREFLIGHT_HEALTH_CHECK",
		"MTRAN_EMPTY_TEXT_POLICY",
		"MTRAN_TRANSLATE_TIMEOUT",
		"MTRAN_HEALTH_TIMEOUT",
		"MTRAN_STUB_PORT",
	} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TranslateTimeout != 15*time.Second || cfg.HealthTimeout != 5*time.Second {
		t.Fatalf("unexpected timeouts: %s %s", cfg.TranslateTimeout, cfg.HealthTimeout)
	}
	if got := cfg.Policy(); got.EmptyText != mtran.EmptyTextReturnEmpty || got.PreflightHealthCheck {
		t.Fatalf("unexpected policy: %+v", got)
	}
	if cfg.Server().APIURL != mtran.DefaultBaseURL {
		t.Fatalf("unexpected default API URL: %q", cfg.Server().APIURL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MTRAN_API_URL", " mtran.example:443 ")
	t.Setenv("MTRAN_TOKEN", "abc")
	t.Setenv("MTRAN_PREFLIGHT_HEALTH_CHECK", "true")
	t.Setenv("MTRAN_EMPTY_TEXT_POLICY", "reject")
	t.Setenv("MTRAN_TRANSLATE_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	server := cfg.Server()
	if server.APIURL != "mtran.example:443" || server.Token != "abc" {
		t.Fatalf("unexpected server config: %+v", server)
	}
	if got := cfg.Policy(); got.EmptyText != mtran.EmptyTextReject || !got.PreflightHealthCheck {
		t.Fatalf("unexpected policy: %+v", got)
	}
	if cfg.TranslateTimeout != 3*time.Second {
		t.Fatalf("unexpected translate timeout: %s", cfg.TranslateTimeout)
	}
}

func TestValidateRejectsUnknownPolicy(t *testing.T) {
	t.Parallel()

	cfg := Config{
		EmptyTextPolicy:  "throw",
		TranslateTimeout: time.Second,
		HealthTimeout:    time.Second,
		StubPort:         8989,
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "MTRAN_EMPTY_TEXT_POLICY") {
		t.Fatalf("expected policy validation error, got %v", err)
	}
}

func TestValidateRejectsNonPositiveTimeouts(t *testing.T) {
	t.Parallel()

	cfg := Config{TranslateTimeout: time.Second, StubPort: 8989}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "MTRAN_HEALTH_TIMEOUT") {
		t.Fatalf("expected health timeout validation error, got %v", err)
	}
}
