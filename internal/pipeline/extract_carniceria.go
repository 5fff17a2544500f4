package pipeline

import (
	"regexp"

	"tiquete/internal"
	"tiquete/internal/util"
)

const perKiloExpr = `(?:\$\s*/\s*KG|PRECIO\s*/?\s*KG|P\s*/\s*KG|VR\.?\s*KG)`

var (
	// "PESO NETO: 1,200 KG" optionally followed by "$/KG 18.000"
	butcherWeightPattern = regexp.MustCompile(`(?i)^PESO(?:\s+NETO)?\s*:?\s*(\d+(?:[.,:]\d+)?)\s*(?:KGS|KG|K)\b(?:\s*` + perKiloExpr + `\s*:?\s*\$?(` + amountExpr + `))?$`)
	butcherPricePattern  = regexp.MustCompile(`(?i)^` + perKiloExpr + `\s*:?\s*\$?(` + amountExpr + `)$`)
	butcherTotalPattern  = regexp.MustCompile(`(?i)^(?:TOTAL|VALOR|IMPORTE)\s*:?\s*\$?(` + amountExpr + `)$`)
)

type butcherCut struct {
	name      string
	kg        float64
	unitPrice int
}

func (c butcherCut) product(total int, hasTotal bool) internal.Product {
	if !hasTotal {
		total = LineTotal(c.unitPrice, c.kg, 0)
	}
	return internal.Product{
		Description: WeightedDescription(c.name, internal.VendorCarniceria, c.kg, c.unitPrice, 0),
		Price:       total,
	}
}

// butcherExtractor follows the scale ticket: a cut name, its weight, the
// price per kilo and an optional total, each usually on its own line.
type butcherExtractor struct{}

func (butcherExtractor) Vendor() internal.VendorType { return internal.VendorCarniceria }

func (butcherExtractor) Extract(r Receipt) []internal.Product {
	lines := r.Lines
	out := []internal.Product{}
	state := scanningHeader
	var cut butcherCut

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch state {
		case scanningHeader:
			if isNameLine(line) {
				cut = butcherCut{name: line}
				state = awaitingWeightLine
			}
		case awaitingWeightLine:
			if m := butcherWeightPattern.FindStringSubmatch(line); m != nil {
				kg, ok := util.ParseQuantity(m[1])
				if !ok || kg == 0 {
					state = scanningHeader
					continue
				}
				cut.kg = kg
				state = awaitingPriceLine
				if unit, ok := amount(m[2]); ok {
					cut.unitPrice = unit
					state = awaitingTotalLine
				}
				continue
			}
			state = scanningHeader
			i--
		case awaitingPriceLine:
			if m := butcherPricePattern.FindStringSubmatch(line); m != nil {
				if unit, ok := amount(m[1]); ok {
					cut.unitPrice = unit
					state = awaitingTotalLine
					continue
				}
			}
			state = scanningHeader
			i--
		case awaitingTotalLine:
			if m := butcherTotalPattern.FindStringSubmatch(line); m != nil {
				total, ok := amount(m[1])
				out = append(out, cut.product(total, ok))
				state = scanningHeader
				continue
			}
			out = append(out, cut.product(0, false))
			state = scanningHeader
			i--
		}
	}
	if state == awaitingTotalLine {
		out = append(out, cut.product(0, false))
	}

	return out
}
