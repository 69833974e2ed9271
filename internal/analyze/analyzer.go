// Package analyze computes aggregates over in-memory expense snapshots.
package analyze

import (
	"sort"

	"spendlens/internal/core"
)

type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

// TotalsByCategory groups expenses by category, summing amounts and counting
// entries. Output is ordered by total descending, ties broken by category
// name ascending. Empty input yields an empty slice.
func (a *Analyzer) TotalsByCategory(expenses []core.Expense) []core.CategoryTotal {
	grouped := make(map[core.Category]*core.CategoryTotal)
	for _, e := range expenses {
		ct, ok := grouped[e.Category]
		if !ok {
			ct = &core.CategoryTotal{Category: e.Category}
			grouped[e.Category] = ct
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++
	}

	totals := make([]core.CategoryTotal, 0, len(grouped))
	for _, ct := range grouped {
		totals = append(totals, *ct)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total.Cents != totals[j].Total.Cents {
			return totals[i].Total.Cents > totals[j].Total.Cents
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// TotalSpending sums all amounts; zero for empty input.
func (a *Analyzer) TotalSpending(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// FilterByDateRange returns expenses with start <= date <= end, preserving
// input order. An inverted range yields an empty slice, not an error.
func (a *Analyzer) FilterByDateRange(expenses []core.Expense, start, end core.Date) []core.Expense {
	filtered := make([]core.Expense, 0, len(expenses))
	if start.After(end.Time) {
		return filtered
	}
	for _, e := range expenses {
		if e.Date.Before(start.Time) || e.Date.After(end.Time) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// Summarize builds the dashboard view for a snapshot.
func (a *Analyzer) Summarize(expenses []core.Expense) core.Dashboard {
	return core.Dashboard{
		CategoryTotals: a.TotalsByCategory(expenses),
		TotalSpending:  a.TotalSpending(expenses),
		ExpenseCount:   len(expenses),
	}
}
