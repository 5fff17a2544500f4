package pipeline

import (
	"strings"

	"tiquete/internal/catalog"
	"tiquete/internal/util"
)

var defaultStopWords = []string{
	// units
	"kg", "kgs", "kgm", "gr", "grs", "un", "und", "unid", "unidad", "lt", "lts", "ml", "lb", "cc",
	// articles and connectors
	"de", "del", "la", "las", "el", "los", "con", "sin", "en", "por", "para",
	// store names
	"exito", "carulla", "d1", "dollarcity", "fruver", "mayorista", "carniceria", "farmacia",
}

// Canonicalizer maps raw product names onto a stable vocabulary: first the
// synonym index, then names already in use (exact before truncated), then a
// title-cased rendering of the name itself. A name already in use is itself
// passed through the index, so a result always canonicalizes to itself.
type Canonicalizer struct {
	index     *catalog.SynonymIndex
	stopWords map[string]struct{}
}

func NewCanonicalizer(index *catalog.SynonymIndex, stopWords ...string) *Canonicalizer {
	if len(stopWords) == 0 {
		stopWords = defaultStopWords
	}
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[util.NormalizeKey(w)] = struct{}{}
	}
	return &Canonicalizer{index: index, stopWords: stop}
}

// Canonicalize rewrites the name part of raw and keeps any detail suffix
// byte for byte. existing is read, never modified.
func (c *Canonicalizer) Canonicalize(raw string, existing []string) string {
	name, suffix := util.SplitDescription(raw)
	clean := util.StripNoise(name)

	if canonical, ok := c.index.Lookup(clean); ok {
		return canonical + suffix
	}

	key := util.NormalizeKey(clean)
	names := make([]string, 0, len(existing))
	for _, e := range existing {
		existingName, _ := util.SplitDescription(e)
		existingName = strings.TrimSpace(existingName)
		if util.NormalizeKey(util.StripNoise(existingName)) == key {
			return c.resolveExisting(existingName) + suffix
		}
		names = append(names, existingName)
	}

	if tokens := c.significantTokens(clean); len(tokens) > 0 {
		for _, existingName := range names {
			if truncationMatch(tokens, c.significantTokens(util.StripNoise(existingName))) {
				return c.resolveExisting(existingName) + suffix
			}
		}
	}

	return util.TitleCase(clean) + suffix
}

// resolveExisting returns the synonym canonical of a name already in use,
// or the name as stored.
func (c *Canonicalizer) resolveExisting(name string) string {
	if canonical, ok := c.index.Lookup(util.StripNoise(name)); ok {
		return canonical
	}
	return name
}

func (c *Canonicalizer) significantTokens(name string) []string {
	out := []string{}
	for _, t := range util.Tokenize(name) {
		if len([]rune(t)) <= 1 {
			continue
		}
		if _, stop := c.stopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// truncationMatch reports whether the shorter token list is a prefix of the
// longer one, letting its last token be cut off mid-word. The shorter list
// needs at least two tokens.
func truncationMatch(a, b []string) bool {
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) < 2 {
		return false
	}
	last := len(short) - 1
	for i := 0; i < last; i++ {
		if short[i] != long[i] {
			return false
		}
	}
	return strings.HasPrefix(long[last], short[last])
}

var defaultCanonicalizer = NewCanonicalizer(catalog.DefaultIndex())

// Canonicalize uses the built-in synonym table.
func Canonicalize(raw string, existing []string) string {
	return defaultCanonicalizer.Canonicalize(raw, existing)
}
