package pipeline

import (
	"regexp"

	"tiquete/internal"
)

type DetectResult struct {
	Vendor internal.VendorType
	Reason string
}

type signature struct {
	name    string
	pattern *regexp.Regexp
}

// DefaultPriority is the order vendors are tested in when nothing else is
// configured. Carulla goes first because its tickets may print the parent
// company's name, which is also Éxito's signature.
var DefaultPriority = []internal.VendorType{
	internal.VendorCarulla,
	internal.VendorExito,
	internal.VendorD1,
	internal.VendorDollarcity,
	internal.VendorFarmacia,
	internal.VendorCarniceria,
	internal.VendorMayorista,
	internal.VendorFruver,
}

var vendorSignatures = map[internal.VendorType][]signature{
	internal.VendorCarulla: {
		{name: "carulla", pattern: regexp.MustCompile(`(?i)\bcarulla\b`)},
	},
	internal.VendorExito: {
		{name: "exito", pattern: regexp.MustCompile(`(?i)(?:^|[^\p{L}])[eé]xito(?:$|[^\p{L}])`)},
		{name: "plu_header", pattern: regexp.MustCompile(`(?i)\bPLU\s+DETALLE\b`)},
	},
	internal.VendorD1: {
		{name: "koba", pattern: regexp.MustCompile(`(?i)\bkoba\b`)},
		{name: "tiendas_d1", pattern: regexp.MustCompile(`(?i)\btiendas\s+d1\b`)},
		{name: "d1_sas", pattern: regexp.MustCompile(`(?i)\bd1\s+s\.?a\.?s\b`)},
	},
	internal.VendorDollarcity: {
		{name: "dollarcity", pattern: regexp.MustCompile(`(?i)\bdollar\s?city\b`)},
		{name: "at_price_row", pattern: regexp.MustCompile(`\b\d{1,3}\s*@\s*\$?\d{1,3}(?:[.,]\d{3})+\s+\$?\d{1,3}(?:[.,]\d{3})+`)},
	},
	internal.VendorFarmacia: {
		{name: "drogueria", pattern: regexp.MustCompile(`(?i)\bdroguer(?:i|í)a\b`)},
		{name: "farmacia", pattern: regexp.MustCompile(`(?i)\bfarmacia\b|\bcruz\s+verde\b|\bfarmatodo\b`)},
		{name: "precio_dcto", pattern: regexp.MustCompile(`(?i)\bPRECIO\s+\$?[\d.,]+\s+DCTO\b`)},
	},
	internal.VendorCarniceria: {
		{name: "carniceria", pattern: regexp.MustCompile(`(?i)\bcarnicer(?:i|í)a\b|\bcarnes\b|\bfama\b`)},
		{name: "price_per_kg", pattern: regexp.MustCompile(`(?i)\$\s*/\s*KG\b`)},
	},
	internal.VendorMayorista: {
		{name: "mayorista", pattern: regexp.MustCompile(`(?i)\bmayorista\b|\bcorabastos\b|\bcentral\s+de\s+abastos\b`)},
		{name: "unit_total_header", pattern: regexp.MustCompile(`(?i)\bV\.\s?UNIT\b.*\bV\.\s?TOTAL\b`)},
	},
	internal.VendorFruver: {
		{name: "fruver", pattern: regexp.MustCompile(`(?i)\bfruver\b`)},
		{name: "kg_triple", pattern: regexp.MustCompile(`(?i)\b\d+[,:]\d{1,3}\s*kg\s*(?:x|\*|×|Ã—)\s*\$?\d`)},
	},
}

// Classifier picks the extractor for a receipt by testing vendor
// signatures in a fixed priority order.
type Classifier struct {
	order []internal.VendorType
}

// NewClassifier tests vendors in order. Unknown and repeated entries are
// ignored; vendors left out are appended in DefaultPriority order.
func NewClassifier(order []internal.VendorType) *Classifier {
	seen := map[internal.VendorType]struct{}{}
	out := make([]internal.VendorType, 0, len(DefaultPriority))
	add := func(v internal.VendorType) {
		if _, ok := vendorSignatures[v]; !ok {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, v := range order {
		add(v)
	}
	for _, v := range DefaultPriority {
		add(v)
	}
	return &Classifier{order: out}
}

func (c *Classifier) Order() []internal.VendorType {
	out := make([]internal.VendorType, len(c.order))
	copy(out, c.order)
	return out
}

// Classify returns hint when it names a known vendor; otherwise the first
// vendor in priority order whose signature appears in text.
func (c *Classifier) Classify(text string, hint internal.VendorType) DetectResult {
	if _, ok := extractors[hint]; ok {
		return DetectResult{Vendor: hint, Reason: "hint"}
	}
	for _, v := range c.order {
		for _, sig := range vendorSignatures[v] {
			if sig.pattern.MatchString(text) {
				return DetectResult{Vendor: v, Reason: sig.name}
			}
		}
	}
	return DetectResult{Vendor: internal.VendorGeneric, Reason: "fallback"}
}

// ParseVendorList maps configured vendor names to vendors and returns the
// names it did not recognise.
func ParseVendorList(names []string) (vendors []internal.VendorType, unknown []string) {
	vendors = make([]internal.VendorType, 0, len(names))
	for _, n := range names {
		if v, ok := internal.ParseVendor(n); ok {
			vendors = append(vendors, v)
			continue
		}
		unknown = append(unknown, n)
	}
	return vendors, unknown
}
