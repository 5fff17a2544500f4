package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"tiquete/internal"
)

func TestExportReceiptToXLSX(t *testing.T) {
	rec := internal.ReceiptRecord{
		ID:     7,
		Vendor: internal.VendorExito,
		Products: ProductRows([]internal.Product{
			{Description: "Habichuela A Granel — 0,305 kg @ $6.540/kg (antes $9.340/kg, -30%) [Éxito]", Price: 1995},
			{Description: "Leche Entera Alqueria 1100 Ml [Éxito]", Price: 4950},
		}),
	}

	out := filepath.Join(t.TempDir(), "nested", "receipt.xlsx")
	if err := ExportReceiptToXLSX(rec, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0][0] != "line_no" || rows[0][4] != "price" {
		t.Fatalf("header=%v", rows[0])
	}
	if rows[1][1] != "Éxito" || rows[1][2] != "Habichuela A Granel" || rows[1][4] != "1995" {
		t.Fatalf("row1=%v", rows[1])
	}
	if rows[2][0] != "2" || rows[2][2] != "Leche Entera Alqueria 1100 Ml" {
		t.Fatalf("row2=%v", rows[2])
	}
	if rows[3][3] != "total" || rows[3][4] != "6945" {
		t.Fatalf("total=%v", rows[3])
	}
}

func TestProductRowsSplitsName(t *testing.T) {
	rows := ProductRows([]internal.Product{
		{Description: "Tomate Chonto — 1,25 kg @ $3.200/kg [Fruver]", Price: 4000},
		{Description: "Banano [Fruver]", Price: 1800},
	})
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0].LineNo != 1 || rows[0].Name != "Tomate Chonto" || rows[1].LineNo != 2 || rows[1].Name != "Banano" {
		t.Fatalf("rows=%+v", rows)
	}
}
