package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	detailSeparator = " — "
	tagOpener       = " ["
)

var (
	reSpaces   = regexp.MustCompile(`\s+`)
	reNoise    = regexp.MustCompile(`[^\p{L}\p{N}\s.,%/-]+`)
	reKeyPunct = regexp.MustCompile(`[^a-z0-9\s]+`)
)

// NormalizeSpaces collapses every whitespace run to a single space.
func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// StripDiacritics removes combining marks: "Plátano" -> "Platano".
func StripDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// NormalizeKey is the lookup form of a product name: lowercase, no accents,
// punctuation turned into spaces.
func NormalizeKey(input string) string {
	s := strings.ToLower(StripDiacritics(norm.NFKC.String(input)))
	s = reKeyPunct.ReplaceAllString(s, " ")
	return NormalizeSpaces(s)
}

// StripNoise drops OCR symbols that never belong in a product name.
func StripNoise(input string) string {
	s := reNoise.ReplaceAllString(input, " ")
	s = NormalizeSpaces(s)
	return strings.Trim(s, " .,-/")
}

// TitleCase applies Spanish title casing. A Caser keeps state, so one is
// built per call.
func TitleCase(input string) string {
	return cases.Title(language.Spanish).String(NormalizeSpaces(input))
}

// Tokenize splits a name into its lookup tokens.
func Tokenize(input string) []string {
	return strings.Fields(NormalizeKey(input))
}

// SplitDescription separates the product name from the detail suffix that
// formatting appends (the quantity detail or the vendor tag). The suffix keeps its
// leading space.
func SplitDescription(desc string) (name, suffix string) {
	if i := strings.Index(desc, detailSeparator); i >= 0 {
		return desc[:i], desc[i:]
	}
	if i := strings.LastIndex(desc, tagOpener); i >= 0 {
		return desc[:i], desc[i:]
	}
	return desc, ""
}

// HasLetters reports whether input carries at least n letters.
func HasLetters(input string, n int) bool {
	count := 0
	for _, r := range input {
		if unicode.IsLetter(r) {
			count++
			if count >= n {
				return true
			}
		}
	}
	return false
}
