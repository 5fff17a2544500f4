package pipeline

import (
	"strings"

	"tiquete/internal/util"
)

// Receipt is OCR text split into non-empty, whitespace-collapsed lines.
type Receipt struct {
	Lines []string
	Text  string
}

func Normalize(raw string) Receipt {
	lines := splitLines(raw)
	return Receipt{Lines: lines, Text: strings.Join(lines, " ")}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = util.NormalizeSpaces(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
