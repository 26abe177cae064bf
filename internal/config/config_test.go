package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "MAX_TERM_MONTHS", "CORS_ORIGINS", "CALCULATION_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Port)
	}
	if cfg.TermMonthsLimit() != 600 {
		t.Errorf("expected 600 months limit, got %d", cfg.TermMonthsLimit())
	}
	if cfg.CalculationTimeout != 10*time.Second {
		t.Errorf("unexpected timeout %v", cfg.CalculationTimeout)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_TERM_MONTHS", "not-a-number")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("CALCULATION_TIMEOUT", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.MaxTermMonths != 600 {
		t.Errorf("invalid value should fall back to default, got %d", cfg.MaxTermMonths)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.CalculationTimeout != 250*time.Millisecond {
		t.Errorf("unexpected timeout %v", cfg.CalculationTimeout)
	}
}
