package internal

import "strings"

type VendorType string

const (
	VendorExito      VendorType = "exito"
	VendorCarulla    VendorType = "carulla"
	VendorD1         VendorType = "d1"
	VendorDollarcity VendorType = "dollarcity"
	VendorFruver     VendorType = "fruver"
	VendorFarmacia   VendorType = "farmacia"
	VendorCarniceria VendorType = "carniceria"
	VendorMayorista  VendorType = "mayorista"
	VendorGeneric    VendorType = "generic"
)

var vendorTags = map[VendorType]string{
	VendorExito:      "Éxito",
	VendorCarulla:    "Carulla",
	VendorD1:         "D1",
	VendorDollarcity: "Dollarcity",
	VendorFruver:     "Fruver",
	VendorFarmacia:   "Farmacia",
	VendorCarniceria: "Carnicería",
	VendorMayorista:  "Mayorista",
	VendorGeneric:    "Genérico",
}

// Vendors returns every vendor in declaration order, generic last.
func Vendors() []VendorType {
	return []VendorType{
		VendorExito, VendorCarulla, VendorD1, VendorDollarcity, VendorFruver,
		VendorFarmacia, VendorCarniceria, VendorMayorista, VendorGeneric,
	}
}

// Tag is the short label appended to every description as "[Tag]".
func (v VendorType) Tag() string {
	if tag, ok := vendorTags[v]; ok {
		return tag
	}
	return vendorTags[VendorGeneric]
}

// ParseVendor accepts the vendor value or its display tag, case-insensitive.
func ParseVendor(s string) (VendorType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, v := range Vendors() {
		if string(v) == s || strings.ToLower(v.Tag()) == s {
			return v, true
		}
	}
	return "", false
}

type Product struct {
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type DiscountInfo struct {
	OriginalPricePerUnit float64
	FinalPricePerUnit    float64
	SavingsAmount        float64
	SavingsPercentage    float64
}

type SourceKind string

const (
	SourceText SourceKind = "text"
	SourcePDF  SourceKind = "pdf"
	SourceEML  SourceKind = "eml"
	SourceHTML SourceKind = "html"
)

type ProductRow struct {
	LineNo      int    `json:"lineNo"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type ReceiptRecord struct {
	ID        int          `json:"id"`
	Source    string       `json:"source"`
	Vendor    VendorType   `json:"vendor"`
	Hash      string       `json:"hash"`
	CreatedAt string       `json:"createdAt"`
	Products  []ProductRow `json:"products"`
}

// Total sums the stored line prices.
func (r ReceiptRecord) Total() int {
	total := 0
	for _, p := range r.Products {
		total += p.Price
	}
	return total
}

// FetchedReceipt is one raw receipt picked up from an inbox.
type FetchedReceipt struct {
	Name       string
	Path       string
	Hash       string
	Raw        []byte
	ReceivedAt string
}
