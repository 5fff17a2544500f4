package pipeline

import (
	"regexp"
	"strconv"

	"tiquete/internal"
)

var (
	dollarNamePattern   = regexp.MustCompile(`^(\d{6,12})\s+(\D.*)$`)
	dollarQtyPattern    = regexp.MustCompile(`^(\d{1,3})\s*(?:@|x|X|\*)\s*\$?(` + amountExpr + `)\s+\$?(` + amountExpr + `)(?:\s+[A-Z])?$`)
	dollarInlinePattern = regexp.MustCompile(`^(\d{6,12})\s+(.+?)\s+(\d{1,3})\s*@\s*\$?(` + amountExpr + `)\s+\$?(` + amountExpr + `)(?:\s+[A-Z])?$`)
)

type dollarStoreExtractor struct{}

func (dollarStoreExtractor) Vendor() internal.VendorType { return internal.VendorDollarcity }

func (dollarStoreExtractor) Extract(r Receipt) []internal.Product {
	lines := r.Lines
	out := []internal.Product{}

	emit := func(name, qtyToken, unitToken, totalToken string) {
		n, err := strconv.Atoi(qtyToken)
		unit, okUnit := amount(unitToken)
		total, okTotal := amount(totalToken)
		if err != nil || n <= 0 || !okUnit || !okTotal {
			return
		}
		savings := unit*n - total
		if savings < 0 {
			savings = 0
		}
		out = append(out, internal.Product{
			Description: PerUnitDescription(name, internal.VendorDollarcity, n, unit, savings),
			Price:       total,
		})
	}

	state := scanningHeader
	name := ""
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch state {
		case scanningHeader:
			if m := dollarInlinePattern.FindStringSubmatch(line); m != nil {
				emit(m[2], m[3], m[4], m[5])
				continue
			}
			if m := dollarNamePattern.FindStringSubmatch(line); m != nil {
				name = m[2]
				state = awaitingPriceLine
			}
		case awaitingPriceLine:
			if m := dollarQtyPattern.FindStringSubmatch(line); m != nil {
				emit(name, m[1], m[2], m[3])
				state = scanningHeader
				continue
			}
			// One wrapped continuation of the name is allowed before the
			// quantity line.
			if isNameLine(line) && i+1 < len(lines) && dollarQtyPattern.MatchString(lines[i+1]) {
				name += " " + line
				continue
			}
			state = scanningHeader
			i--
		}
	}

	return out
}
