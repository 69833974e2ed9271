// Package google is a Store backed by a Google Sheets spreadsheet,
// authenticated with service-account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"spendlens/internal/core"
	"spendlens/internal/store"
)

type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

type Store struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheet         string
}

var _ store.Store = (*Store)(nil)

var header = []any{"Date", "Category", "Amount", "Notes"}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheet := strings.TrimSpace(cfg.SheetName)
	if sheet == "" {
		sheet = "Expenses"
	}

	credentialsJSON, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Store{svc: svc, spreadsheetID: cfg.SpreadsheetID, sheet: sheet}, nil
}

func resolveCredentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("missing service account credentials")
}

func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	rng := fmt.Sprintf("%s!A2:D", s.sheet)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", store.ErrUnreadable, rng, err)
	}

	expenses := []core.Expense{}
	for i, row := range resp.Values {
		cells := toStrings(row)
		if len(cells) == 0 || isTotalRow(cells) {
			continue
		}
		e, err := rowToExpense(cells)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", store.ErrUnreadable, i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (s *Store) Save(ctx context.Context, expenses []core.Expense) error {
	if err := s.clearRows(ctx); err != nil {
		return err
	}
	if err := s.writeHeader(ctx); err != nil {
		return err
	}
	if len(expenses) == 0 {
		return nil
	}

	values := make([][]any, len(expenses))
	for i, e := range expenses {
		values[i] = []any{e.Date.String(), string(e.Category), e.Amount.Dollars(), e.Notes}
	}
	rng := fmt.Sprintf("%s!A2:D%d", s.sheet, len(expenses)+1)
	vr := &gsheet.ValueRange{Values: values}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", store.ErrWriteFailed, rng, err)
	}

	slog.InfoContext(ctx, "expenses saved", "backend", "sheets", "count", len(expenses))
	return nil
}

func (s *Store) Add(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	rng := fmt.Sprintf("%s!A:D", s.sheet)
	vr := &gsheet.ValueRange{
		Values: [][]any{{e.Date.String(), string(e.Category), e.Amount.Dollars(), e.Notes}},
	}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append to %s: %v", store.ErrWriteFailed, rng, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.clearRows(ctx); err != nil {
		return err
	}
	return s.writeHeader(ctx)
}

func (s *Store) clearRows(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A2:D", s.sheet)
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: clear %s: %v", store.ErrWriteFailed, rng, err)
	}
	return nil
}

func (s *Store) writeHeader(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1:D1", s.sheet)
	vr := &gsheet.ValueRange{Values: [][]any{header}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: write header: %v", store.ErrWriteFailed, err)
	}
	return nil
}

func toStrings(row []any) []string {
	out := make([]string, 0, len(row))
	for _, cell := range row {
		out = append(out, strings.TrimSpace(fmt.Sprint(cell)))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func isTotalRow(row []string) bool {
	for i, cell := range row {
		if i > 1 {
			break
		}
		if strings.EqualFold(cell, store.TotalMarker) {
			return true
		}
	}
	return false
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
	return core.Expense{Date: date, Category: category, Amount: core.Money{Cents: cents}, Notes: notes}, nil
}
