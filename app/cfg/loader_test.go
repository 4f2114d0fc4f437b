package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("TZ", "UTC")

	cfg, err := parse([]string{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if cfg.DBPath != "./realty-desk.db" {
		t.Errorf("Expected default DB path, got '%s'", cfg.DBPath)
	}
	if cfg.FeedsDir != "./feeds" {
		t.Errorf("Expected feeds dir './feeds', got '%s'", cfg.FeedsDir)
	}
	if cfg.ScenariosDir != "./scenarios" {
		t.Errorf("Expected scenarios dir './scenarios', got '%s'", cfg.ScenariosDir)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.UserAgent != "Realty Desk/1.0" {
		t.Errorf("Expected default user agent, got '%s'", cfg.UserAgent)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("Expected worker count 3, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 60 {
		t.Errorf("Expected scheduler interval 60, got %d", cfg.SchedulerInterval)
	}
	if cfg.RateLimit != 5 || cfg.RateBurst != 20 {
		t.Errorf("Expected rate limit 5/20, got %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if cfg.Locale != "en-US" || cfg.CurrencySymbol != "$" {
		t.Errorf("Expected en-US and '$', got '%s' and '%s'", cfg.Locale, cfg.CurrencySymbol)
	}
	if cfg.APIAccessKey != "" {
		t.Errorf("Expected no API key by default, got '%s'", cfg.APIAccessKey)
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestParseFlagsAndEnv(t *testing.T) {
	t.Setenv("API_ACCESS_KEY", "secret")
	t.Setenv("WORKER_COUNT", "8")

	cfg, err := parse([]string{"--port", "9090", "--db-path", "/tmp/desk.db", "--debug", "--currency-symbol", "€"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", cfg.Port)
	}
	if cfg.DBPath != "/tmp/desk.db" {
		t.Errorf("Expected DB path '/tmp/desk.db', got '%s'", cfg.DBPath)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.CurrencySymbol != "€" {
		t.Errorf("Expected currency symbol '€', got '%s'", cfg.CurrencySymbol)
	}
	if cfg.APIAccessKey != "secret" {
		t.Errorf("Expected API key from environment, got '%s'", cfg.APIAccessKey)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("Expected worker count 8 from environment, got %d", cfg.WorkerCount)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero workers", []string{"--worker-count", "0"}},
		{"zero interval", []string{"--scheduler-interval", "0"}},
		{"negative rate", []string{"--rate-limit", "-1"}},
		{"unknown flag", []string{"--no-such-flag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse(tt.args); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}
