package parse

import "strings"

// wordValues covers the cardinals the parser resolves without a numeric
// token. Compounds like "twenty five" and "two hundred" are combined by
// parseWordNumber.
var wordValues = map[string]int64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
	"eighty": 80, "ninety": 90,
	"a": 1, "an": 1,
}

// parseWordNumber resolves the first run of spelled-out number words in text
// to a whole-dollar value. "a"/"an" only count next to "hundred".
func parseWordNumber(text string) (int64, bool) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '-'
	})

	var total, current int64
	found := false
	inRun := false
	for _, tok := range tokens {
		tok = strings.Trim(tok, ".,!?")
		if tok == "hundred" && inRun {
			if current == 0 {
				current = 1
			}
			current *= 100
			continue
		}
		v, ok := wordValues[tok]
		if !ok || ((tok == "a" || tok == "an") && !inRun && !startsHundred(tokens, tok)) {
			if inRun {
				break
			}
			continue
		}
		current += v
		found = true
		inRun = true
	}
	total += current
	if !found || total == 0 {
		return 0, false
	}
	return total, true
}

// startsHundred reports whether the article token is immediately followed by
// "hundred" somewhere in the token list.
func startsHundred(tokens []string, article string) bool {
	for i, tok := range tokens {
		if tok == article && i+1 < len(tokens) && strings.Trim(tokens[i+1], ".,!?") == "hundred" {
			return true
		}
	}
	return false
}
