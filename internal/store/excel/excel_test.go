package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"spendlens/internal/core"
	"spendlens/internal/store"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "expenses.xlsx"))
}

func sampleExpenses() []core.Expense {
	return []core.Expense{
		{Date: core.NewDate(2025, 10, 10), Category: core.Food, Amount: core.Money{Cents: 2550}, Notes: "lunch"},
		{Date: core.NewDate(2025, 10, 11), Category: core.Transport, Amount: core.Money{Cents: 4500}},
		{Date: core.NewDate(2025, 10, 12), Category: core.Food, Amount: core.Money{Cents: 1575}, Notes: "groceries"},
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := testStore(t)

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d expenses from a missing file", len(got))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	want := sampleExpenses()

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(s.path); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	if _, err := os.Stat(s.path + ".tmp.xlsx"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d expenses, want %d", len(got), len(want))
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

func TestAddAppends(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, e := range sampleExpenses() {
		if err := s.Add(ctx, e); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d expenses, want 3", len(got))
	}
	if got[2].Notes != "groceries" {
		t.Errorf("order not preserved: %+v", got)
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

	if err := s.Save(ctx, sampleExpenses()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("%d expenses remain after clear", len(got))
	}
}

func TestLoadSkipsTotalAndBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.xlsx")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		t.Fatalf("sheet: %v", err)
	}
	rows := [][]any{
		{"Date", "Category", "Amount", "Notes"},
		{"2025-10-10", "Food", 25.50, "lunch"},
		{"", "", "", ""},
		{"", "TOTAL", 25.50, ""},
	}
	for i, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				t.Fatalf("cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	f.Close()

	got, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d expenses, want 1: %+v", len(got), got)
	}
	if got[0].Amount.Cents != 2550 || got[0].Category != core.Food {
		t.Errorf("parsed %+v", got[0])
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.xlsx")
	if err := os.WriteFile(path, []byte("not an xlsx file"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := New(path).Load(context.Background()); !errors.Is(err, store.ErrUnreadable) {
		t.Fatalf("got %v, want ErrUnreadable", err)
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "expenses.xlsx")
	s := New(path)

	if err := s.Save(context.Background(), sampleExpenses()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}
}
