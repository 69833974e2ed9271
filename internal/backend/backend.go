// Package backend constructs the configured expense store.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"spendlens/internal/config"
	"spendlens/internal/store"
	"spendlens/internal/store/excel"
	"spendlens/internal/store/google"
	"spendlens/internal/store/memory"
	"spendlens/internal/store/sqlite"
)

type Type string

const (
	ExcelBackend  Type = "excel"
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
)

func (t Type) IsValid() bool {
	switch t {
	case ExcelBackend, MemoryBackend, SQLiteBackend, SheetsBackend:
		return true
	}
	return false
}

// Result bundles the store with its cleanup hook. Cleanup is nil for
// backends that hold no resources.
type Result struct {
	Store   store.Store
	Cleanup func() error
}

// New builds the store named by cfg.Backend.
func New(ctx context.Context, cfg config.Config) (*Result, error) {
	t := Type(cfg.Backend)
	if !t.IsValid() {
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Backend)
	}

	switch t {
	case ExcelBackend:
		st := excel.New(cfg.ExcelFilePath)
		slog.Info("initialized excel backend", "path", cfg.ExcelFilePath)
		return &Result{Store: st}, nil

	case MemoryBackend:
		slog.Info("initialized memory backend")
		return &Result{Store: memory.New()}, nil

	case SQLiteBackend:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		slog.Info("initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: st, Cleanup: st.Close}, nil

	case SheetsBackend:
		st, err := google.New(ctx, google.Config{
			SpreadsheetID:   cfg.Google.SpreadsheetID,
			SheetName:       cfg.Google.SheetName,
			CredentialsJSON: cfg.Google.CredentialsJSON,
			CredentialsFile: cfg.Google.CredentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		slog.Info("initialized sheets backend", "spreadsheet_id", cfg.Google.SpreadsheetID, "sheet", cfg.Google.SheetName)
		return &Result{Store: st}, nil
	}
	return nil, fmt.Errorf("unsupported backend type: %s", cfg.Backend)
}
