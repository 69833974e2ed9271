package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Other         Category = "Other"
)

type (
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		Date     Date
		Category Category
		Amount   Money
		Notes    string
	}

	// ParsedExpense is the parser's view of one utterance. Amount and
	// CategoryGuess are nil when nothing was detected; Date always carries a
	// value but DateDetected records whether it was found or defaulted.
	ParsedExpense struct {
		RawText       string
		Amount        *Money
		Date          Date
		DateDetected  bool
		CategoryGuess *Category
		Confidence    float64
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
)

// DateLayout is the canonical spreadsheet date format.
const DateLayout = "2006-01-02"

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{Food, Transport, Shopping, Bills, Entertainment, Other}
}

// CategoryFromString maps arbitrary input onto the fixed category set.
// Unrecognized values map to Other; ok reports whether the input matched.
func CategoryFromString(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "food":
		return Food, true
	case "transport":
		return Transport, true
	case "shopping":
		return Shopping, true
	case "bills":
		return Bills, true
	case "entertainment":
		return Entertainment, true
	case "other":
		return Other, true
	}
	return Other, false
}

func (c Category) Validate() error {
	for _, known := range Categories() {
		if c == known {
			return nil
		}
	}
	return ErrInvalidCategory
}

// NewDate creates a Date at day granularity in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to day granularity.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses the canonical spreadsheet format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.AddDate(0, 0, n))
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Category.Validate(); err != nil {
		return err
	}
	return e.Amount.Validate()
}
