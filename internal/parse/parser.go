// Package parse turns free-form expense descriptions into structured
// candidates. It never fails: missing fields are left absent and the
// confidence score communicates how much was actually detected.
package parse

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"spendlens/internal/core"
)

// Field weights for the confidence score. A defaulted field contributes
// nothing, so confidence is monotone in the number of detected fields.
const (
	amountWeight   = 0.5
	dateWeight     = 0.25
	categoryWeight = 0.25
)

var (
	dollarRe  = regexp.MustCompile(`\$\s*([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?|[0-9]+(?:\.[0-9]{1,2})?)`)
	decimalRe = regexp.MustCompile(`\b([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?|[0-9]+\.[0-9]{1,2})\b`)
	intRe     = regexp.MustCompile(`\b([0-9]+)\b`)

	isoDateRe   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	slashDateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	agoRe       = regexp.MustCompile(`\b(a|an|one|two|three|four|five|six|seven|eight|nine|ten|[0-9]+)\s+(day|week|month)s?\s+ago\b`)
)

// Keyword vocabulary per category; first match wins, in this order.
var categoryKeywords = []struct {
	category core.Category
	words    []string
}{
	{core.Food, []string{"restaurant", "lunch", "dinner", "breakfast", "coffee", "starbucks", "grocery", "groceries", "pizza", "snack", "food"}},
	{core.Transport, []string{"gas", "fuel", "uber", "lyft", "taxi", "bus", "train", "metro", "parking"}},
	{core.Shopping, []string{"amazon", "mall", "clothes", "shoes", "target", "walmart", "store", "shopping"}},
	{core.Bills, []string{"rent", "electric", "electricity", "water bill", "internet", "phone", "insurance", "subscription", "bill"}},
	{core.Entertainment, []string{"movie", "cinema", "netflix", "spotify", "concert", "theater", "game"}},
}

// Parser extracts amount, date, and a category guess from text.
type Parser struct {
	now  func() time.Time
	when *when.Parser
}

func New() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{now: time.Now, when: w}
}

// NewAt pins the parser's notion of "now"; relative dates resolve against it.
func NewAt(now func() time.Time) *Parser {
	p := New()
	p.now = now
	return p
}

// Parse extracts a ParsedExpense from text. Empty or unparseable input yields
// a candidate with absent fields and the date defaulted to today.
func (p *Parser) Parse(text string) core.ParsedExpense {
	now := p.now()
	parsed := core.ParsedExpense{
		RawText: text,
		Date:    core.DateOf(now),
	}

	clean := strings.ToLower(strings.Join(strings.Fields(text), " "))

	if cents, ok := p.parseAmount(clean); ok {
		parsed.Amount = &core.Money{Cents: cents}
	}
	if date, ok := p.parseDate(clean, now); ok {
		parsed.Date = date
		parsed.DateDetected = true
	}
	if cat, ok := guessCategory(clean); ok {
		parsed.CategoryGuess = &cat
	}
	parsed.Confidence = confidence(parsed)

	slog.Debug("expense parsed",
		"text", text,
		"amount_detected", parsed.Amount != nil,
		"date_detected", parsed.DateDetected,
		"category_detected", parsed.CategoryGuess != nil,
		"confidence", parsed.Confidence)

	return parsed
}

// parseAmount scans for a currency-like token, preferring an explicit dollar
// amount, then any decimal or thousands-separated number, then a bare
// integer, and finally spelled-out cardinals ("twenty dollars").
func (p *Parser) parseAmount(text string) (int64, bool) {
	// Numbers inside date expressions are not amounts.
	scrubbed := isoDateRe.ReplaceAllString(text, " ")
	scrubbed = slashDateRe.ReplaceAllString(scrubbed, " ")
	scrubbed = agoRe.ReplaceAllString(scrubbed, " ")

	for _, re := range []*regexp.Regexp{dollarRe, decimalRe, intRe} {
		if m := re.FindStringSubmatch(scrubbed); len(m) >= 2 {
			if cents, err := core.ParseAmountToCents(m[1]); err == nil {
				return cents, true
			}
		}
	}
	if dollars, ok := parseWordNumber(scrubbed); ok {
		return dollars * 100, true
	}
	return 0, false
}

// parseDate recognizes relative keywords and "N units ago" itself, then
// defers to the when library for weekday and absolute expressions.
func (p *Parser) parseDate(text string, now time.Time) (core.Date, bool) {
	today := core.DateOf(now)

	switch {
	case strings.Contains(text, "yesterday"):
		return today.AddDays(-1), true
	case strings.Contains(text, "tomorrow"):
		return today.AddDays(1), true
	case strings.Contains(text, "today"):
		return today, true
	}

	if m := agoRe.FindStringSubmatch(text); len(m) == 3 {
		n := 1
		if v, err := strconv.Atoi(m[1]); err == nil {
			n = v
		} else if v, ok := wordValues[m[1]]; ok {
			n = int(v)
		}
		switch m[2] {
		case "day":
			return today.AddDays(-n), true
		case "week":
			return today.AddDays(-7 * n), true
		case "month":
			return core.DateOf(today.AddDate(0, -n, 0)), true
		}
	}

	if m := isoDateRe.FindString(text); m != "" {
		if d, err := core.ParseDate(m); err == nil {
			return d, true
		}
	}

	if r, err := p.when.Parse(text, now); err == nil && r != nil {
		return core.DateOf(r.Time), true
	}
	return core.Date{}, false
}

func guessCategory(text string) (core.Category, bool) {
	for _, entry := range categoryKeywords {
		for _, word := range entry.words {
			if strings.Contains(text, word) {
				return entry.category, true
			}
		}
	}
	return core.Other, false
}

func confidence(parsed core.ParsedExpense) float64 {
	score := 0.0
	if parsed.Amount != nil {
		score += amountWeight
	}
	if parsed.DateDetected {
		score += dateWeight
	}
	if parsed.CategoryGuess != nil {
		score += categoryWeight
	}
	return score
}
