package core

// CategoryTotal is one row of a by-category aggregation.
type CategoryTotal struct {
	Category Category
	Total    Money
	Count    int
}

// Dashboard is the aggregate view a UI renders for the current store state.
type Dashboard struct {
	CategoryTotals []CategoryTotal
	TotalSpending  Money
	ExpenseCount   int
}
