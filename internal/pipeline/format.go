package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tiquete/internal"
	"tiquete/internal/util"
)

var hundred = decimal.NewFromInt(100)

// ComputeDiscount derives per-unit prices from a unit price, a quantity and
// the total amount saved on the line. ok is false when there is no
// meaningful discount to show.
func ComputeDiscount(unitPrice int, qty float64, savings int) (internal.DiscountInfo, bool) {
	if savings <= 0 || unitPrice <= 0 || qty <= 0 {
		return internal.DiscountInfo{}, false
	}
	q := decimal.NewFromFloat(qty)
	orig := decimal.NewFromInt(int64(unitPrice))
	originalTotal := orig.Mul(q)
	if !originalTotal.IsPositive() {
		return internal.DiscountInfo{}, false
	}
	saved := decimal.NewFromInt(int64(savings))
	finalTotal := originalTotal.Sub(saved)
	if finalTotal.IsNegative() {
		return internal.DiscountInfo{}, false
	}
	final := finalTotal.Div(q)
	if !orig.GreaterThan(final) {
		return internal.DiscountInfo{}, false
	}

	return internal.DiscountInfo{
		OriginalPricePerUnit: orig.InexactFloat64(),
		FinalPricePerUnit:    final.Round(0).InexactFloat64(),
		SavingsAmount:        saved.InexactFloat64(),
		SavingsPercentage:    saved.Div(originalTotal).Mul(hundred).Round(0).InexactFloat64(),
	}, true
}

// LineTotal is round(unitPrice × qty − savings), never below zero.
func LineTotal(unitPrice int, qty float64, savings int) int {
	total := decimal.NewFromInt(int64(unitPrice)).
		Mul(decimal.NewFromFloat(qty)).
		Sub(decimal.NewFromInt(int64(savings))).
		Round(0)
	if total.IsNegative() {
		return 0
	}
	return int(total.IntPart())
}

func FormatName(name string) string {
	return util.TitleCase(name)
}

func SimpleDescription(name string, vendor internal.VendorType) string {
	return fmt.Sprintf("%s [%s]", FormatName(name), vendor.Tag())
}

func WeightedDescription(name string, vendor internal.VendorType, kg float64, unitPrice, savings int) string {
	qty := util.FormatQuantity(kg)
	if d, ok := ComputeDiscount(unitPrice, kg, savings); ok {
		return fmt.Sprintf("%s — %s kg @ $%s/kg (antes $%s/kg, -%d%%) [%s]",
			FormatName(name), qty, util.FormatMoney(int(d.FinalPricePerUnit)),
			util.FormatMoney(unitPrice), int(d.SavingsPercentage), vendor.Tag())
	}
	return fmt.Sprintf("%s — %s kg @ $%s/kg [%s]", FormatName(name), qty, util.FormatMoney(unitPrice), vendor.Tag())
}

func PerUnitDescription(name string, vendor internal.VendorType, n int, unitPrice, savings int) string {
	if _, ok := ComputeDiscount(unitPrice, float64(n), savings); n <= 1 && !ok {
		return SimpleDescription(name, vendor)
	}
	return UnitsDescription(name, vendor, float64(n), "un", unitPrice, savings)
}

// UnitsDescription always renders the quantity clause, with a caller-chosen
// unit label such as "bto" or "can".
func UnitsDescription(name string, vendor internal.VendorType, qty float64, label string, unitPrice, savings int) string {
	q := util.FormatQuantity(qty)
	if d, ok := ComputeDiscount(unitPrice, qty, savings); ok {
		return fmt.Sprintf("%s — %s %s @ $%s (antes $%s, -%d%%) [%s]",
			FormatName(name), q, label, util.FormatMoney(int(d.FinalPricePerUnit)),
			util.FormatMoney(unitPrice), int(d.SavingsPercentage), vendor.Tag())
	}
	return fmt.Sprintf("%s — %s %s @ $%s [%s]", FormatName(name), q, label, util.FormatMoney(unitPrice), vendor.Tag())
}
