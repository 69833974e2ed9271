// Package store defines the persistence port for expense records and the
// error kinds every backend surfaces.
package store

import (
	"context"
	"errors"

	"spendlens/internal/core"
)

// TotalMarker flags an aggregate row in spreadsheet-style backends. Load
// must never return such rows as expenses.
const TotalMarker = "TOTAL"

var (
	// ErrUnreadable marks a backing store that exists but cannot be read.
	// A store that does not exist yet is not an error: Load returns empty.
	ErrUnreadable = errors.New("store unreadable")

	// ErrWriteFailed marks a failed save, append, or clear.
	ErrWriteFailed = errors.New("store write failed")
)

// Store owns the durable expense list. The backing file is the single source
// of truth; callers reload rather than caching snapshots across operations.
type Store interface {
	// Load reads all persisted expenses in stored order, excluding any
	// aggregate rows. A missing backing store yields an empty slice.
	Load(ctx context.Context) ([]core.Expense, error)

	// Save overwrites the store with exactly the given sequence, in order.
	Save(ctx context.Context, expenses []core.Expense) error

	// Add appends one record without disturbing existing ones.
	Add(ctx context.Context, e core.Expense) error

	// Clear removes all records, leaving a valid empty store.
	Clear(ctx context.Context) error
}
