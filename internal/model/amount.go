package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a printed statement amount like "$1,234.56",
// "(12.00)", "12.00-" or "45.10 CR" to a decimal. Parentheses, a leading or
// trailing minus and a DR suffix make the value negative.
func ParseAmount(s string) (decimal.Decimal, error) {
	orig := s
	s = strings.TrimSpace(s)
	negative := false

	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "CR"):
		s = strings.TrimSpace(s[:len(s)-2])
	case strings.HasSuffix(upper, "DR"):
		s = strings.TrimSpace(s[:len(s)-2])
		negative = true
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
		negative = !negative
	}
	if strings.HasSuffix(s, "-") {
		s = strings.TrimSuffix(s, "-")
		negative = !negative
	}
	if strings.HasPrefix(s, "-") {
		s = strings.TrimPrefix(s, "-")
		negative = !negative
	}
	s = strings.TrimPrefix(s, "+")

	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', '£', '€', ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)

	if s == "" {
		return decimal.Zero, fmt.Errorf("parsing amount %q: empty", orig)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", orig, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
