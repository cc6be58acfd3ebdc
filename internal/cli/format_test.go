package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"42.50", "42.5"},
		{" $1200.00 ", "1200"},
		{"$ 19.99", "19.99"},
		{"0", "0"},
		{"-5", "0"},       // negative clamps
		{"abc", "0"},      // garbage clamps
		{"", "0"},
		{"1e3", "1000"},
	}
	for _, c := range cases {
		want := decimal.RequireFromString(c.want)
		if got := ParseAmount(c.in); !got.Equal(want) {
			t.Errorf("ParseAmount(%q) = %s, want %s", c.in, got, want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"42.5", "$42.50"},
		{"1234.56", "$1,234.56"},
		{"1000000", "$1,000,000.00"},
		{"-99.9", "-$99.90"},
	}
	for _, c := range cases {
		if got := FormatAmount(decimal.RequireFromString(c.in)); got != c.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatRelativeDays(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "today"},
		{-1, "1d overdue"},
		{-14, "14d overdue"},
		{1, "in 1d"},
		{30, "in 30d"},
	}
	for _, c := range cases {
		if got := FormatRelativeDays(c.in); got != c.want {
			t.Errorf("FormatRelativeDays(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("ShortID of short id = %q", got)
	}
}
