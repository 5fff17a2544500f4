package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"

	"tiquete/internal"
	"tiquete/internal/util"
)

var ErrUnsupportedSource = errors.New("unsupported source kind")

const (
	blockSelector = "tr,h1,h2,h3,h4,h5,h6,p,li,pre,div,table"
	lineBreakMark = "[[br]]"
)

// SourceKindFromPath guesses the kind from the file extension.
func SourceKindFromPath(path string) internal.SourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return internal.SourcePDF
	case ".eml":
		return internal.SourceEML
	case ".html", ".htm":
		return internal.SourceHTML
	default:
		return internal.SourceText
	}
}

// ReadSource turns a stored receipt into the raw text the extractors read.
func ReadSource(kind internal.SourceKind, blob []byte) (string, error) {
	switch kind {
	case internal.SourceText, "":
		return string(blob), nil
	case internal.SourcePDF:
		return readPDF(blob)
	case internal.SourceHTML:
		return readHTML(string(blob))
	case internal.SourceEML:
		return readEmail(blob)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, kind)
	}
}

func readEmail(raw []byte) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("reading envelope: %w", err)
	}

	parts := []string{}
	if env.HTML != "" {
		if text, err := readHTML(env.HTML); err == nil && strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 && env.Text != "" {
		parts = append(parts, env.Text)
	}

	for _, att := range env.Attachments {
		switch SourceKindFromPath(att.FileName) {
		case internal.SourcePDF:
			if text, err := readPDF(att.Content); err == nil {
				parts = append(parts, text)
			}
		case internal.SourceHTML:
			if text, err := readHTML(string(att.Content)); err == nil {
				parts = append(parts, text)
			}
		default:
			if strings.HasSuffix(strings.ToLower(att.FileName), ".txt") {
				parts = append(parts, string(att.Content))
			}
		}
	}

	return strings.Join(parts, "\n"), nil
}

// readHTML writes every table row as one line of cells and every leaf
// block element as its own line; <br> breaks lines inside a block.
func readHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	doc.Find("script,style,head").Remove()
	doc.Find("br").ReplaceWithHtml(lineBreakMark)

	lines := []string{}
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "table":
			return
		case "tr":
			cells := []string{}
			s.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				if v := util.NormalizeSpaces(strings.ReplaceAll(cell.Text(), lineBreakMark, " ")); v != "" {
					cells = append(cells, v)
				}
			})
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
			return
		}
		if s.Closest("table").Length() > 0 || s.Find(blockSelector).Length() > 0 {
			return
		}
		text := s.Text()
		if goquery.NodeName(s) == "pre" {
			text = strings.ReplaceAll(text, "\n", lineBreakMark)
		}
		for _, part := range strings.Split(text, lineBreakMark) {
			lines = append(lines, util.NormalizeSpaces(part))
		}
	})

	if len(lines) == 0 {
		return strings.ReplaceAll(doc.Text(), lineBreakMark, "\n"), nil
	}
	return strings.Join(lines, "\n"), nil
}

func readPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	pages := []string{}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}
