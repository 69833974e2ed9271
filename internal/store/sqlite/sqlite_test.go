package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"spendlens/internal/core"
	"spendlens/internal/store"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "spendlens.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	want := []core.Expense{
		{Date: core.NewDate(2025, 10, 10), Category: core.Food, Amount: core.Money{Cents: 2550}, Notes: "lunch"},
		{Date: core.NewDate(2025, 10, 11), Category: core.Transport, Amount: core.Money{Cents: 4500}},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d expenses, want 2", len(got))
	}
	for i := range want {
		if got[i].Date.String() != want[i].Date.String() ||
			got[i].Category != want[i].Category ||
			got[i].Amount.Cents != want[i].Amount.Cents ||
			got[i].Notes != want[i].Notes {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAddPreservesOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, notes := range []string{"first", "second", "third"} {
		e := core.Expense{
			Date:     core.NewDate(2025, 10, 10+i),
			Category: core.Food,
			Amount:   core.Money{Cents: int64(100 * (i + 1))},
			Notes:    notes,
		}
		if err := s.Add(ctx, e); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 || got[0].Notes != "first" || got[2].Notes != "third" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	s := testStore(t)

	bad := core.Expense{Date: core.NewDate(2025, 10, 10), Category: core.Food, Amount: core.Money{Cents: -1}}
	if err := s.Add(context.Background(), bad); !errors.Is(err, store.ErrWriteFailed) {
		t.Fatalf("got %v, want ErrWriteFailed", err)
	}
}

func TestClear(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, core.Expense{Date: core.NewDate(2025, 10, 10), Category: core.Food, Amount: core.Money{Cents: 100}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ := s.Load(ctx)
	if len(got) != 0 {
		t.Fatalf("%d expenses remain after clear", len(got))
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spendlens.db")
	ctx := context.Background()

	s, err := New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.Add(ctx, core.Expense{Date: core.NewDate(2025, 10, 10), Category: core.Food, Amount: core.Money{Cents: 2550}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Amount.Cents != 2550 {
		t.Fatalf("data lost across reopen: %+v", got)
	}
}
