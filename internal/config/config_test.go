package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Backend != "excel" {
		t.Errorf("Backend = %q, want excel", cfg.Backend)
	}
	if cfg.ExcelFilePath != "data/expenses.xlsx" {
		t.Errorf("ExcelFilePath = %q", cfg.ExcelFilePath)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Errorf("AITimeout = %v, want 30s", cfg.AITimeout)
	}
	if cfg.AIEnabled() {
		t.Error("AIEnabled without an API key")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SPENDLENS_BACKEND", "SQLite")
	t.Setenv("AI_TIMEOUT", "45s")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.AITimeout != 45*time.Second {
		t.Errorf("AITimeout = %v, want 45s", cfg.AITimeout)
	}
	if !cfg.AIEnabled() {
		t.Error("AIEnabled = false with an API key set")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("AI_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Port)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Errorf("AITimeout = %v, want default 30s", cfg.AITimeout)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Port:          8080,
			Backend:       "excel",
			ExcelFilePath: "data/expenses.xlsx",
			AITimeout:     30 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid excel", func(c *Config) {}, ""},
		{"valid memory", func(c *Config) { c.Backend = "memory" }, ""},
		{"port out of range", func(c *Config) { c.Port = 0 }, "PORT"},
		{"unknown backend", func(c *Config) { c.Backend = "redis" }, "unknown backend"},
		{"excel without path", func(c *Config) { c.ExcelFilePath = "" }, "SPENDLENS_EXCEL_PATH"},
		{"sqlite without path", func(c *Config) { c.Backend = "sqlite" }, "SPENDLENS_SQLITE_PATH"},
		{"sheets without spreadsheet", func(c *Config) {
			c.Backend = "sheets"
			c.Google.CredentialsFile = "creds.json"
		}, "GOOGLE_SPREADSHEET_ID"},
		{"sheets without credentials", func(c *Config) {
			c.Backend = "sheets"
			c.Google.SpreadsheetID = "abc123"
		}, "GOOGLE_CREDENTIALS"},
		{"non-positive timeout", func(c *Config) { c.AITimeout = 0 }, "AI_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{Port: -1, Backend: "redis", AITimeout: 0}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, fragment := range []string{"PORT", "unknown backend", "AI_TIMEOUT"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error missing %q: %v", fragment, err)
		}
	}
}
