package util

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const maxAmountDigits = 9

var (
	thousandsDot    = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	amountSeparator = strings.NewReplacer(".", "", ",", "", "'", "", " ", "", "$", "")
)

// ParseAmount reads a receipt price token as whole currency units.
// Dots, commas and apostrophes are all thousands separators.
func ParseAmount(token string) (int, bool) {
	s := strings.TrimSpace(token)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	s = amountSeparator.Replace(s)
	if s == "" || len(s) > maxAmountDigits {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseQuantity reads a weight or unit count. Comma and colon are both
// accepted as the decimal mark.
func ParseQuantity(token string) (float64, bool) {
	norm := normalizeNumericToken(token)
	if norm == "" {
		return 0, false
	}
	q, err := strconv.ParseFloat(norm, 64)
	if err != nil || q < 0 {
		return 0, false
	}
	return q, true
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(strings.TrimSpace(token), " ", "")
	compact = strings.ReplaceAll(compact, ":", ".")
	if strings.Count(compact, ",") == 1 && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	if thousandsDot.MatchString(compact) && strings.Count(compact, ".") > 1 {
		return strings.ReplaceAll(compact, ".", "")
	}
	return compact
}

// FormatMoney renders whole currency units with dot thousands: 6540 -> "6.540".
func FormatMoney(n int) string {
	return humanize.FormatInteger("#.###,", n)
}

// FormatQuantity renders a quantity with a comma decimal mark: 0.305 -> "0,305".
func FormatQuantity(q float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(q, 'f', -1, 64), ".", ",")
}
