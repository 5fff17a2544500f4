package pipeline

import (
	"regexp"
	"strconv"

	"tiquete/internal"
)

var itemCountPattern = regexp.MustCompile(`(?i)\btotal\s+(?:de\s+)?(?:items?|[ií]tems?|art[ií]culos?|productos?)\s*:?\s*(\d{1,4})\b`)

// StatedItemCount returns the "Total Item: N" figure printed on the receipt.
func StatedItemCount(text string) (int, bool) {
	m := itemCountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ReconcileItemCount keeps only the first N products when the receipt
// states N and more were extracted. A short list is left alone.
func ReconcileItemCount(products []internal.Product, text string) []internal.Product {
	n, ok := StatedItemCount(text)
	if !ok || len(products) <= n {
		return products
	}
	return products[:n]
}
