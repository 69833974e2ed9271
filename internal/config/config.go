// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Google struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

type Config struct {
	Port     int
	LogLevel string

	// Backend selects the expense store: excel, memory, sqlite, or sheets.
	Backend       string
	ExcelFilePath string
	SQLiteDBPath  string
	Google        Google

	OpenAIAPIKey string
	AIChatModel  string
	AITimeout    time.Duration
}

func Load() Config {
	return Config{
		Port:          getEnvInt("PORT", 8080),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Backend:       strings.ToLower(getEnv("SPENDLENS_BACKEND", "excel")),
		ExcelFilePath: getEnv("SPENDLENS_EXCEL_PATH", "data/expenses.xlsx"),
		SQLiteDBPath:  getEnv("SPENDLENS_SQLITE_PATH", "data/spendlens.db"),
		Google: Google{
			SpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
			SheetName:       getEnv("GOOGLE_SHEET_NAME", "Expenses"),
			CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		},
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		AIChatModel:  getEnv("OPENAI_CHAT_MODEL", ""),
		AITimeout:    getEnvDuration("AI_TIMEOUT", 30*time.Second),
	}
}

// Validate reports every configuration problem at once instead of failing on
// the first one.
func (c Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d out of range", c.Port))
	}

	switch c.Backend {
	case "excel":
		if c.ExcelFilePath == "" {
			problems = append(problems, "SPENDLENS_EXCEL_PATH required for the excel backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SPENDLENS_SQLITE_PATH required for the sqlite backend")
		}
	case "sheets":
		if c.Google.SpreadsheetID == "" {
			problems = append(problems, "GOOGLE_SPREADSHEET_ID required for the sheets backend")
		}
		if c.Google.CredentialsJSON == "" && c.Google.CredentialsFile == "" {
			problems = append(problems, "GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE required for the sheets backend")
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("unknown backend %q", c.Backend))
	}

	if c.AITimeout <= 0 {
		problems = append(problems, "AI_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// AIEnabled reports whether the optional assistant should be wired in.
func (c Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
