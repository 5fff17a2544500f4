package pipeline

import (
	"regexp"
	"strconv"

	"tiquete/internal"
)

var (
	// "7702007 ARROZ DIANA 500 G 2.350"
	d1ItemPattern = regexp.MustCompile(`^(\d{6,13})\s+(.+?)\s+\$?(` + amountExpr + `)(?:\s*[A-Z])?$`)
	// "2 UN X 1.890", printed above the item it multiplies
	d1MultiplierPattern = regexp.MustCompile(`(?i)^(\d{1,3})\s*(?:UND|UN|U)\.?\s*` + timesExpr + `\s*\$?(` + amountExpr + `)$`)
	// "DESCUENTO -378", printed below the item it discounts
	d1DiscountPattern = regexp.MustCompile(`(?i)^(?:DESCUENTO|DESCTO|DCTO|AHORRO)\.?\s*:?\s*-?\s*\$?(` + looseAmountExpr + `)-?$`)
)

type d1Item struct {
	name      string
	linePrice int
	qty       int
	unitPrice int
	savings   int
}

func (it d1Item) product() internal.Product {
	price := it.linePrice - it.savings
	if price < 0 {
		price = 0
	}
	unit := it.unitPrice
	if unit == 0 {
		unit = it.linePrice
	}
	return internal.Product{
		Description: PerUnitDescription(it.name, internal.VendorD1, it.qty, unit, it.savings),
		Price:       price,
	}
}

// discountChainExtractor keeps one item pending so that a discount line
// printed under it can still be applied.
type discountChainExtractor struct{}

func (discountChainExtractor) Vendor() internal.VendorType { return internal.VendorD1 }

func (discountChainExtractor) Extract(r Receipt) []internal.Product {
	out := []internal.Product{}
	var pending *d1Item
	var multQty, multUnit int

	flush := func() {
		if pending != nil {
			out = append(out, pending.product())
			pending = nil
		}
	}

	for _, line := range r.Lines {
		if m := d1DiscountPattern.FindStringSubmatch(line); m != nil {
			if pending != nil {
				if d, ok := amount(m[1]); ok {
					pending.savings += d
				}
			}
			continue
		}
		if m := d1MultiplierPattern.FindStringSubmatch(line); m != nil {
			flush()
			n, err := strconv.Atoi(m[1])
			unit, ok := amount(m[2])
			if err == nil && ok && n > 0 {
				multQty, multUnit = n, unit
			}
			continue
		}
		if m := d1ItemPattern.FindStringSubmatch(line); m != nil {
			flush()
			price, ok := amount(m[3])
			if !ok {
				multQty, multUnit = 0, 0
				continue
			}
			pending = &d1Item{name: m[2], linePrice: price, qty: 1}
			if multQty > 0 {
				pending.qty, pending.unitPrice = multQty, multUnit
				multQty, multUnit = 0, 0
			}
		}
	}
	flush()

	return out
}
