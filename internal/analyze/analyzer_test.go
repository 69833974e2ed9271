package analyze

import (
	"testing"

	"spendlens/internal/core"
)

func sampleExpenses() []core.Expense {
	return []core.Expense{
		{Date: core.NewDate(2025, 10, 10), Category: core.Food, Amount: core.Money{Cents: 2550}, Notes: "Lunch at Chipotle"},
		{Date: core.NewDate(2025, 10, 11), Category: core.Transport, Amount: core.Money{Cents: 4500}, Notes: "Shell station"},
		{Date: core.NewDate(2025, 10, 12), Category: core.Food, Amount: core.Money{Cents: 1575}, Notes: "Starbucks coffee"},
		{Date: core.NewDate(2025, 10, 13), Category: core.Entertainment, Amount: core.Money{Cents: 5000}, Notes: "Movie tickets"},
	}
}

func TestTotalsByCategory(t *testing.T) {
	totals := New().TotalsByCategory(sampleExpenses())
	if len(totals) != 3 {
		t.Fatalf("got %d categories, want 3", len(totals))
	}

	want := []core.CategoryTotal{
		{Category: core.Entertainment, Total: core.Money{Cents: 5000}, Count: 1},
		{Category: core.Transport, Total: core.Money{Cents: 4500}, Count: 1},
		{Category: core.Food, Total: core.Money{Cents: 4125}, Count: 2},
	}
	for i, w := range want {
		got := totals[i]
		if got.Category != w.Category || got.Total != w.Total || got.Count != w.Count {
			t.Fatalf("row %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestTotalsByCategoryTieBreak(t *testing.T) {
	expenses := []core.Expense{
		{Date: core.NewDate(2025, 1, 1), Category: core.Transport, Amount: core.Money{Cents: 1000}},
		{Date: core.NewDate(2025, 1, 2), Category: core.Food, Amount: core.Money{Cents: 1000}},
	}
	totals := New().TotalsByCategory(expenses)
	if totals[0].Category != core.Food || totals[1].Category != core.Transport {
		t.Fatalf("tie not broken by name ascending: %+v", totals)
	}
}

func TestEmptyInput(t *testing.T) {
	a := New()
	if totals := a.TotalsByCategory(nil); len(totals) != 0 {
		t.Fatalf("expected empty totals, got %+v", totals)
	}
	if total := a.TotalSpending(nil); total.Cents != 0 {
		t.Fatalf("expected 0 spending, got %d", total.Cents)
	}
}

func TestTotalSpending(t *testing.T) {
	total := New().TotalSpending(sampleExpenses())
	if total.Cents != 13625 {
		t.Fatalf("got %d cents, want 13625", total.Cents)
	}
}

func TestFilterByDateRange(t *testing.T) {
	a := New()
	expenses := sampleExpenses()

	// Inclusive bounds.
	got := a.FilterByDateRange(expenses, core.NewDate(2025, 10, 11), core.NewDate(2025, 10, 12))
	if len(got) != 2 {
		t.Fatalf("got %d expenses, want 2", len(got))
	}
	if got[0].Notes != "Shell station" || got[1].Notes != "Starbucks coffee" {
		t.Fatalf("input order not preserved: %+v", got)
	}

	// Inverted range is empty, not an error.
	got = a.FilterByDateRange(expenses, core.NewDate(2025, 10, 13), core.NewDate(2025, 10, 10))
	if len(got) != 0 {
		t.Fatalf("inverted range: got %d expenses, want 0", len(got))
	}

	// Range covering nothing.
	got = a.FilterByDateRange(expenses, core.NewDate(2024, 1, 1), core.NewDate(2024, 12, 31))
	if len(got) != 0 {
		t.Fatalf("out-of-range filter: got %d expenses, want 0", len(got))
	}
}

func TestSummarize(t *testing.T) {
	dash := New().Summarize(sampleExpenses())
	if dash.ExpenseCount != 4 {
		t.Fatalf("count %d, want 4", dash.ExpenseCount)
	}
	if dash.TotalSpending.Cents != 13625 {
		t.Fatalf("total %d, want 13625", dash.TotalSpending.Cents)
	}
	if len(dash.CategoryTotals) != 3 {
		t.Fatalf("categories %d, want 3", len(dash.CategoryTotals))
	}
}
