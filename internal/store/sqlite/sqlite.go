// Package sqlite is a Store backed by a local SQLite database. Row order is
// preserved via the autoincrement id, so Load returns expenses in the order
// they were saved.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendlens/internal/core"
	"spendlens/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, category, amount_cents, notes FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query expenses: %v", store.ErrUnreadable, err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var (
			dateStr, categoryStr, notes string
			cents                       int64
		)
		if err := rows.Scan(&dateStr, &categoryStr, &cents, &notes); err != nil {
			return nil, fmt.Errorf("%w: scan expense: %v", store.ErrUnreadable, err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q: %v", store.ErrUnreadable, dateStr, err)
		}
		category, _ := core.CategoryFromString(categoryStr)
		expenses = append(expenses, core.Expense{
			Date:     date,
			Category: category,
			Amount:   core.Money{Cents: cents},
			Notes:    notes,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate expenses: %v", store.ErrUnreadable, err)
	}
	return expenses, nil
}

// Save replaces all rows inside one transaction so a failure leaves the
// previous contents intact.
func (s *Store) Save(ctx context.Context, expenses []core.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", store.ErrWriteFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("%w: delete: %v", store.ErrWriteFailed, err)
	}
	for _, e := range expenses {
		if err := insert(ctx, tx, e); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", store.ErrWriteFailed, err)
	}

	slog.InfoContext(ctx, "expenses saved", "backend", "sqlite", "count", len(expenses))
	return nil
}

func (s *Store) Add(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	return insert(ctx, s.db, e)
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("%w: clear: %v", store.ErrWriteFailed, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, e core.Expense) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO expenses (date, category, amount_cents, notes) VALUES (?, ?, ?, ?)`,
		e.Date.String(), string(e.Category), e.Amount.Cents, e.Notes)
	if err != nil {
		return fmt.Errorf("%w: insert expense: %v", store.ErrWriteFailed, err)
	}
	return nil
}
