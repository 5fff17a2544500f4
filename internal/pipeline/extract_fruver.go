package pipeline

import (
	"regexp"
	"strings"

	"tiquete/internal"
	"tiquete/internal/util"
)

// "[TOMATE CHONTO] 1,250 kg x $3.200[/kg] [$4.000]"
var produceTriplePattern = regexp.MustCompile(`(?i)^(?:(.*?\p{L}.*?)\s+)?(` + qtyExpr + `)\s*(kgs|kg|k|und|un|u|lb)\.?\s*(?:x|\*|×|Ã—|@)\s*\$?(` + amountExpr +
	`)(?:\s*/\s*(?:kg|k|und|un|lb))?(?:\s+\$?(` + amountExpr + `))?$`)

// produceMarketExtractor reads weight triples. When the triple carries no
// name, the last name-only line above it is used.
type produceMarketExtractor struct{}

func (produceMarketExtractor) Vendor() internal.VendorType { return internal.VendorFruver }

func (produceMarketExtractor) Extract(r Receipt) []internal.Product {
	out := []internal.Product{}
	state := scanningHeader
	pendingName := ""

	for _, line := range r.Lines {
		m := produceTriplePattern.FindStringSubmatch(line)
		if m == nil {
			if isNameLine(line) {
				pendingName = line
				state = awaitingWeightLine
			}
			continue
		}

		name := strings.TrimSpace(m[1])
		if name == "" && state == awaitingWeightLine {
			name = pendingName
		}
		pendingName = ""
		state = scanningHeader
		if name == "" {
			continue
		}

		qty, okQty := util.ParseQuantity(m[2])
		unitPrice, okUnit := amount(m[4])
		if !okQty || !okUnit || qty == 0 {
			continue
		}
		price, ok := amount(m[5])
		if !ok {
			price = LineTotal(unitPrice, qty, 0)
		}

		var desc string
		switch unit := strings.ToLower(m[3]); {
		case isKilogramUnit(unit):
			desc = WeightedDescription(name, internal.VendorFruver, qty, unitPrice, 0)
		case unit == "lb":
			desc = UnitsDescription(name, internal.VendorFruver, qty, "lb", unitPrice, 0)
		default:
			desc = PerUnitDescription(name, internal.VendorFruver, roundQty(qty), unitPrice, 0)
		}
		out = append(out, internal.Product{Description: desc, Price: price})
	}

	return out
}
