package pipeline

import (
	"regexp"
	"strings"

	"tiquete/internal"
	"tiquete/internal/util"
)

// Shared regular expression fragments for receipt lines.
const (
	// amountExpr is a price: grouped thousands or a bare run of 3-7 digits.
	amountExpr = `\d{1,3}(?:[.,]\d{3})+|\d{3,7}`
	// looseAmountExpr also accepts short savings such as "85".
	looseAmountExpr = `\d{1,3}(?:[.,]\d{3})+|\d{1,7}`
	// qtyExpr is a weight or count with an optional dot, comma or colon decimal.
	qtyExpr = `\d+(?:[.,:]\d{1,3})?`
	// timesExpr is the multiplication sign in its OCR spellings.
	timesExpr = `(?:x|X|\*|×|Ã—)`
)

type scanState int

const (
	scanningHeader scanState = iota
	awaitingWeightLine
	awaitingPriceLine
	awaitingTotalLine
)

// Extractor turns a normalized receipt of one vendor into products. It
// skips lines it cannot read and never fails.
type Extractor interface {
	Vendor() internal.VendorType
	Extract(r Receipt) []internal.Product
}

var extractors = map[internal.VendorType]Extractor{
	internal.VendorExito:      supermarketExtractor{vendor: internal.VendorExito},
	internal.VendorCarulla:    supermarketExtractor{vendor: internal.VendorCarulla},
	internal.VendorD1:         discountChainExtractor{},
	internal.VendorDollarcity: dollarStoreExtractor{},
	internal.VendorFruver:     produceMarketExtractor{},
	internal.VendorFarmacia:   pharmacyExtractor{},
	internal.VendorCarniceria: butcherExtractor{},
	internal.VendorMayorista:  wholesalerExtractor{},
	internal.VendorGeneric:    genericExtractor{},
}

// ExtractorFor returns the extractor registered for v, falling back to the
// generic one.
func ExtractorFor(v internal.VendorType) Extractor {
	if e, ok := extractors[v]; ok {
		return e
	}
	return extractors[internal.VendorGeneric]
}

// Engine routes receipts through a classifier to the vendor extractors.
type Engine struct {
	classifier *Classifier
}

func NewEngine(classifier *Classifier) *Engine {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Engine{classifier: classifier}
}

// Run classifies, extracts and reconciles against the stated item count.
func (e *Engine) Run(ocrText string, hint internal.VendorType) (vendor internal.VendorType, products []internal.Product) {
	receipt := Normalize(ocrText)
	detected := e.classifier.Classify(receipt.Text, hint)
	vendor = detected.Vendor

	defer func() {
		if recover() != nil {
			products = []internal.Product{}
		}
	}()

	products = ExtractorFor(vendor).Extract(receipt)
	if products == nil {
		products = []internal.Product{}
	}
	return vendor, ReconcileItemCount(products, receipt.Text)
}

var defaultEngine = NewEngine(nil)

// ExtractProducts reads the line items of an OCR'd receipt. An empty hint
// lets the classifier decide the vendor.
func ExtractProducts(ocrText string, hint internal.VendorType) []internal.Product {
	_, products := defaultEngine.Run(ocrText, hint)
	return products
}

// nameLinePattern matches a line that can only be a product name: letters,
// spaces and light punctuation, no digits.
var nameLinePattern = regexp.MustCompile(`^[\p{L}][\p{L}\s.'/&-]*$`)

var nonNameWords = regexp.MustCompile(`(?i)^(?:total|subtotal|peso|nit|fecha|cajero|caja|gracias|iva|cambio|efectivo|tarjeta|factura|descripcion|valor|cant|precio|und|cliente)\b`)

func isNameLine(line string) bool {
	return nameLinePattern.MatchString(line) && util.HasLetters(line, 3) && !nonNameWords.MatchString(line)
}

func amount(token string) (int, bool) {
	return util.ParseAmount(token)
}

// firstAmount parses the first non-empty token.
func firstAmount(tokens ...string) (int, bool) {
	for _, t := range tokens {
		if strings.TrimSpace(t) != "" {
			return amount(t)
		}
	}
	return 0, false
}

func isKilogramUnit(unit string) bool {
	switch strings.ToUpper(strings.TrimSuffix(unit, ".")) {
	case "KG", "KGM", "KGS", "KL", "KLS", "K":
		return true
	}
	return false
}

func roundQty(q float64) int {
	if q < 1 {
		return 1
	}
	return int(q + 0.5)
}
