// Package excel persists expenses in an xlsx workbook, one row per expense
// under a fixed header. This is the default backend: the file doubles as a
// human-readable ledger.
package excel

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"spendlens/internal/core"
	"spendlens/internal/store"
)

const SheetName = "Expenses"

var header = []string{"Date", "Category", "Amount", "Notes"}

type Store struct {
	mu   sync.Mutex
	path string
}

var _ store.Store = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) Save(ctx context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, expenses)
}

// Add is read-append-write: the workbook is rewritten through the same
// temp-then-rename path as Save, so a crash never corrupts existing rows.
func (s *Store) Add(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	return s.saveLocked(ctx, append(expenses, e))
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, nil)
}

func (s *Store) loadLocked(ctx context.Context) ([]core.Expense, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return []core.Expense{}, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", store.ErrUnreadable, s.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", store.ErrUnreadable, SheetName, err)
	}

	expenses := []core.Expense{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if isBlank(row) || isTotalRow(row) {
			continue
		}
		e, err := rowToExpense(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", store.ErrUnreadable, i+1, err)
		}
		expenses = append(expenses, e)
	}

	slog.DebugContext(ctx, "expenses loaded", "path", s.path, "count", len(expenses))
	return expenses, nil
}

func (s *Store) saveLocked(ctx context.Context, expenses []core.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
		}
	}
	for i, e := range expenses {
		if err := writeRow(f, i+2, e); err != nil {
			return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
		}
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", store.ErrWriteFailed, dir, err)
		}
	}

	// Write to a sibling temp file and rename so readers never observe a
	// partially written workbook. The temp name keeps the .xlsx extension
	// because excelize rejects unknown workbook extensions on SaveAs.
	tmp := s.path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("%w: write %s: %v", store.ErrWriteFailed, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: finalize %s: %v", store.ErrWriteFailed, s.path, err)
	}

	slog.InfoContext(ctx, "expenses saved", "path", s.path, "count", len(expenses))
	return nil
}

func writeRow(f *excelize.File, row int, e core.Expense) error {
	values := []any{e.Date.String(), string(e.Category), e.Amount.Dollars(), e.Notes}
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func rowToExpense(row []string) (core.Expense, error) {
	if len(row) < 3 {
		return core.Expense{}, fmt.Errorf("short row: %v", row)
	}
	date, err := core.ParseDate(row[0])
	if err != nil {
		return core.Expense{}, fmt.Errorf("date %q: %v", row[0], err)
	}
	category, _ := core.CategoryFromString(row[1])
	cents, err := core.ParseAmountToCents(row[2])
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %v", row[2], err)
	}
	notes := ""
	if len(row) > 3 {
		notes = row[3]
	}
	return core.Expense{
		Date:     date,
		Category: category,
		Amount:   core.Money{Cents: cents},
		Notes:    notes,
	}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isTotalRow recognizes aggregate rows regardless of whether the marker
// sits in the date or category column (exported reports use the former).
func isTotalRow(row []string) bool {
	for i, cell := range row {
		if i > 1 {
			break
		}
		if strings.EqualFold(strings.TrimSpace(cell), store.TotalMarker) {
			return true
		}
	}
	return false
}
