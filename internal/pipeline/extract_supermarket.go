package pipeline

import (
	"regexp"

	"tiquete/internal"
	"tiquete/internal/util"
)

var (
	// "1 647413 HABICHUELA A GRANEL" or "2 3001 LECHE ENTERA 1100 ML 4.950 A".
	// An undotted price needs its tax letter, else it is part of the name.
	supermarketItemPattern = regexp.MustCompile(`^(\d{1,3})\s+(\d{3,14})\s+(.+?)(?:\s+\$?(?:(\d{1,3}(?:[.,]\d{3})+)(?:\s+[A-Z])?|(\d{3,7})\s+[A-E]))?$`)
	// "0.305/KGM X 9.340 V. Ahorro 854 [1.995]"
	supermarketWeightPattern = regexp.MustCompile(`(?i)^(` + qtyExpr + `)\s*/?\s*(KGM|KGS|KG|KL|UND|UN|U)\.?\s*` + timesExpr +
		`\s*\$?(` + amountExpr + `)(?:\s*V\.?\s*AHORRO\s*:?\s*\$?(` + looseAmountExpr + `))?(?:\s+\$?(` + amountExpr + `)(?:\s+[A-Z])?)?$`)
	supermarketPricePattern = regexp.MustCompile(`^\$?\s*(` + amountExpr + `)(?:\s+[A-Z])?$`)
)

// supermarketExtractor reads the shared layout of the two supermarket
// chains: an indexed PLU header, then a weight fragment one or two lines
// below, then an optional standalone price.
type supermarketExtractor struct {
	vendor internal.VendorType
}

func (e supermarketExtractor) Vendor() internal.VendorType { return e.vendor }

func (e supermarketExtractor) Extract(r Receipt) []internal.Product {
	lines := r.Lines
	out := []internal.Product{}

	for i := 0; i < len(lines); {
		m := supermarketItemPattern.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}
		name := m[3]
		headerPrice, hasHeaderPrice := firstAmount(m[4], m[5])
		next := i + 1

		var w []string
		if next < len(lines) {
			w = supermarketWeightPattern.FindStringSubmatch(lines[next])
			if w == nil && next+1 < len(lines) && isNameLine(lines[next]) {
				if w = supermarketWeightPattern.FindStringSubmatch(lines[next+1]); w != nil {
					name += " " + lines[next]
					next++
				}
			}
		}

		if w == nil {
			price, ok := headerPrice, hasHeaderPrice
			if !ok {
				price, ok = standalonePrice(lines, next)
				if ok {
					next++
				}
			}
			if ok {
				out = append(out, internal.Product{Description: SimpleDescription(name, e.vendor), Price: price})
			}
			i = next
			continue
		}
		next++

		qty, okQty := util.ParseQuantity(w[1])
		unitPrice, okUnit := amount(w[3])
		if !okQty || !okUnit {
			i = next
			continue
		}
		savings, _ := amount(w[4])

		price, ok := amount(w[5])
		if !ok && hasHeaderPrice {
			price, ok = headerPrice, true
		}
		if !ok {
			if price, ok = standalonePrice(lines, next); ok {
				next++
			}
		}
		if !ok {
			price = LineTotal(unitPrice, qty, savings)
		}

		desc := PerUnitDescription(name, e.vendor, roundQty(qty), unitPrice, savings)
		if isKilogramUnit(w[2]) {
			desc = WeightedDescription(name, e.vendor, qty, unitPrice, savings)
		}
		out = append(out, internal.Product{Description: desc, Price: price})
		i = next
	}

	return out
}

func standalonePrice(lines []string, i int) (int, bool) {
	if i >= len(lines) {
		return 0, false
	}
	p := supermarketPricePattern.FindStringSubmatch(lines[i])
	if p == nil {
		return 0, false
	}
	return amount(p[1])
}
