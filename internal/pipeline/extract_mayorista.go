package pipeline

import (
	"regexp"
	"strings"

	"tiquete/internal"
	"tiquete/internal/util"
)

var (
	// "2 BTO PAPA CAPIRA 85.000 170.000"; the two prices may wrap.
	wholesaleRowPattern = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)\s+(BTO|BULTO|CANASTILLA|CAN|KLS|KL|KGS|KG|ARROBA|ARR|UND|UN|DOC|ATADO|CAJA|CJ)\.?\s+(.+?)(?:\s+\$?(` +
		amountExpr + `)\s+\$?(` + amountExpr + `))?$`)
	wholesalePricesPattern = regexp.MustCompile(`^\$?(` + amountExpr + `)\s+\$?(` + amountExpr + `)$`)
)

var wholesaleUnitLabels = map[string]string{
	"BTO": "bto", "BULTO": "bto",
	"CAN": "can", "CANASTILLA": "can",
	"ARR": "arr", "ARROBA": "arr",
	"UND": "un", "UN": "un",
	"DOC": "doc", "ATADO": "atado",
	"CAJA": "caja", "CJ": "caja",
}

type wholesalerExtractor struct{}

func (wholesalerExtractor) Vendor() internal.VendorType { return internal.VendorMayorista }

func (wholesalerExtractor) Extract(r Receipt) []internal.Product {
	lines := r.Lines
	out := []internal.Product{}

	for i := 0; i < len(lines); i++ {
		m := wholesaleRowPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		unitToken, totalToken := m[4], m[5]
		if unitToken == "" && i+1 < len(lines) {
			if p := wholesalePricesPattern.FindStringSubmatch(lines[i+1]); p != nil {
				unitToken, totalToken = p[1], p[2]
				i++
			}
		}

		qty, okQty := util.ParseQuantity(m[1])
		unitPrice, okUnit := amount(unitToken)
		total, okTotal := amount(totalToken)
		if !okQty || !okUnit || !okTotal || qty == 0 {
			continue
		}
		savings := LineTotal(unitPrice, qty, 0) - total
		if savings < 0 {
			savings = 0
		}

		name := m[3]
		unit := strings.ToUpper(m[2])
		desc := UnitsDescription(name, internal.VendorMayorista, qty, wholesaleUnitLabels[unit], unitPrice, savings)
		if isKilogramUnit(unit) {
			desc = WeightedDescription(name, internal.VendorMayorista, qty, unitPrice, savings)
		}
		out = append(out, internal.Product{Description: desc, Price: total})
	}

	return out
}
