package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiquete/internal"
)

func TestReadSourceHTMLTable(t *testing.T) {
	html := `<html><head><style>td{}</style></head><body>
<h1>TIENDAS D1</h1>
<table>
<tr><td>7702007</td><td>ARROZ DIANA 500 G</td><td>2.350</td></tr>
</table>
<p>GRACIAS<br>VUELVA PRONTO</p>
</body></html>`

	text, err := ReadSource(internal.SourceHTML, []byte(html))
	require.NoError(t, err)
	assert.Equal(t, []string{"TIENDAS D1", "7702007 ARROZ DIANA 500 G 2.350", "GRACIAS", "VUELVA PRONTO"}, Normalize(text).Lines)

	vendor, products := NewEngine(nil).Run(text, "")
	assert.Equal(t, internal.VendorD1, vendor)
	require.Len(t, products, 1)
	assert.Equal(t, internal.Product{Description: "Arroz Diana 500 G [D1]", Price: 2350}, products[0])
}

func TestReadSourceEmail(t *testing.T) {
	eml := strings.Join([]string{
		"From: tienda@example.com",
		"To: cliente@example.com",
		"Subject: Su factura",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"TIENDAS D1",
		"7702007 ARROZ DIANA 500 G 2.350",
		"",
	}, "\r\n")

	text, err := ReadSource(internal.SourceEML, []byte(eml))
	require.NoError(t, err)

	products := ExtractProducts(text, "")
	require.Len(t, products, 1)
	assert.Equal(t, 2350, products[0].Price)
}

func TestReadSourceText(t *testing.T) {
	text, err := ReadSource(internal.SourceText, []byte("PAN TAJADO 4.500"))
	if err != nil || text != "PAN TAJADO 4.500" {
		t.Fatalf("text=%q err=%v", text, err)
	}
}

func TestReadSourceRejects(t *testing.T) {
	if _, err := ReadSource("docx", []byte("x")); !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("err=%v", err)
	}
	if _, err := ReadSource(internal.SourcePDF, []byte("not a pdf")); err == nil {
		t.Fatal("expected pdf error")
	}
}

func TestSourceKindFromPath(t *testing.T) {
	cases := map[string]internal.SourceKind{
		"ticket.PDF":       internal.SourcePDF,
		"mail/receipt.eml": internal.SourceEML,
		"r.htm":            internal.SourceHTML,
		"r.html":           internal.SourceHTML,
		"scan.txt":         internal.SourceText,
		"scan":             internal.SourceText,
	}
	for path, want := range cases {
		if got := SourceKindFromPath(path); got != want {
			t.Fatalf("%s: %s", path, got)
		}
	}
}
