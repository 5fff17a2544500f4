package pipeline

import (
	"regexp"
	"strings"

	"tiquete/internal"
	"tiquete/internal/util"
)

var genericPricePattern = regexp.MustCompile(`\$\s?\d{3,7}\b|\b\d{1,3}(?:[.,]\d{3})+\b`)

var genericHeaderWords = map[string]struct{}{
	"descripcion": {}, "valor": {}, "cant": {}, "cantidad": {}, "precio": {}, "item": {},
	"codigo": {}, "und": {}, "detalle": {}, "producto": {}, "articulo": {}, "vr": {},
}

var genericSummaryWords = map[string]struct{}{
	"total": {}, "subtotal": {}, "iva": {}, "cambio": {}, "efectivo": {}, "nit": {},
	"tarjeta": {}, "pago": {}, "fecha": {}, "recibido": {}, "vuelto": {}, "impuesto": {},
	"base": {}, "saldo": {}, "credito": {}, "debito": {}, "factura": {},
}

// genericExtractor treats the text between consecutive price tokens as the
// description of the second price. Line breaks are kept so summary lines can
// be cut out of a span.
type genericExtractor struct{}

func (genericExtractor) Vendor() internal.VendorType { return internal.VendorGeneric }

func (genericExtractor) Extract(r Receipt) []internal.Product {
	text := strings.Join(r.Lines, "\n")
	out := []internal.Product{}

	prev := 0
	for _, loc := range genericPricePattern.FindAllStringIndex(text, -1) {
		span := text[prev:loc[0]]
		token := text[loc[0]:loc[1]]
		prev = loc[1]

		name, ok := genericName(span)
		if !ok {
			continue
		}
		price, ok := amount(token)
		if !ok {
			continue
		}
		out = append(out, internal.Product{Description: SimpleDescription(name, internal.VendorGeneric), Price: price})
	}

	return out
}

// genericName keeps the lines after the last summary line of span, so an
// item printed below a tax or NIT line survives while the summary amount
// itself never becomes an item.
func genericName(span string) (string, bool) {
	lines := strings.Split(span, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if hasSummaryWord(lines[i]) {
			lines = lines[i+1:]
			break
		}
	}

	words := strings.Fields(strings.Join(lines, " "))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := genericHeaderWords[util.NormalizeKey(w)]; ok {
			continue
		}
		if len(kept) == 0 && !util.HasLetters(w, 1) {
			continue
		}
		kept = append(kept, w)
	}

	name := util.StripNoise(strings.Join(kept, " "))
	if !util.HasLetters(name, 3) {
		return "", false
	}
	return name, true
}

func hasSummaryWord(line string) bool {
	for _, w := range util.Tokenize(line) {
		if _, ok := genericSummaryWords[w]; ok {
			return true
		}
	}
	return false
}
