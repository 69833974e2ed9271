package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"$25.50", 2550, true},
		{"$1,234.56", 123456, true},
		{"1,000", 100000, true},
		{"12.345", 1235, true}, // half-up rounding
		{"12.344", 1234, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"$", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestCentsFromDollars(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
	}{
		{0, 0},
		{25.5, 2550},
		{1234.56, 123456},
		{0.005, 1},
	}
	for _, tc := range cases {
		if got := CentsFromDollars(tc.in); got != tc.out {
			t.Fatalf("%v expected %d, got %d", tc.in, tc.out, got)
		}
	}
}

func TestMoneyString(t *testing.T) {
	m := Money{Cents: 123456}
	if got := m.String(); got != "$1234.56" {
		t.Fatalf("unexpected money string %q", got)
	}
}
