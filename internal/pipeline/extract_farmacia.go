package pipeline

import (
	"regexp"
	"strconv"

	"tiquete/internal"
)

const pharmacyUnitExpr = `(?:UNID|UND|UN|CAJA|CJ|SOBRE|FCO|TAB)`

var (
	pharmacyNamePattern = regexp.MustCompile(`^(\d{8,14})\s+(\D.*)$`)
	// "1 UND PRECIO 4.200 DCTO 420 3.780"
	pharmacyQtyPattern = regexp.MustCompile(`(?i)^(\d{1,3})\s*` + pharmacyUnitExpr + `\.?\s+(?:PRECIO|P\.?\s?U\.?|VR\.?\s?UNIT)\s*:?\s*\$?(` + amountExpr +
		`)(?:\s+(?:DCTO|DESC|DTO)\.?\s*:?\s*-?\$?(` + looseAmountExpr + `))?\s+\$?(` + amountExpr + `)$`)
	// "7702184010157 ACETAMINOFEN 500 MG 1 UND 4.200 4.200"
	pharmacyInlinePattern = regexp.MustCompile(`(?i)^(\d{8,14})\s+(.+?)\s+(\d{1,3})\s*` + pharmacyUnitExpr + `\.?\s+\$?(` + amountExpr + `)\s+\$?(` + amountExpr + `)$`)
)

type pharmacyExtractor struct{}

func (pharmacyExtractor) Vendor() internal.VendorType { return internal.VendorFarmacia }

func (pharmacyExtractor) Extract(r Receipt) []internal.Product {
	lines := r.Lines
	out := []internal.Product{}

	emit := func(name, qtyToken, unitToken, discountToken, totalToken string) {
		n, err := strconv.Atoi(qtyToken)
		unit, okUnit := amount(unitToken)
		total, okTotal := amount(totalToken)
		if err != nil || n <= 0 || !okUnit || !okTotal {
			return
		}
		savings, ok := amount(discountToken)
		if !ok {
			savings = unit*n - total
		}
		if savings < 0 {
			savings = 0
		}
		out = append(out, internal.Product{
			Description: PerUnitDescription(name, internal.VendorFarmacia, n, unit, savings),
			Price:       total,
		})
	}

	for i := 0; i < len(lines); i++ {
		if m := pharmacyInlinePattern.FindStringSubmatch(lines[i]); m != nil {
			emit(m[2], m[3], m[4], "", m[5])
			continue
		}
		m := pharmacyNamePattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		name := m[2]
		for j := i + 1; j < len(lines) && j <= i+2; j++ {
			if q := pharmacyQtyPattern.FindStringSubmatch(lines[j]); q != nil {
				emit(name, q[1], q[2], q[3], q[4])
				i = j
				break
			}
			if !isNameLine(lines[j]) {
				break
			}
			name += " " + lines[j]
		}
	}

	return out
}
