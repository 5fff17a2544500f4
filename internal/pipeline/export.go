package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tiquete/internal"
)

// ExportReceiptToXLSX writes one row per product plus a closing total row.
func ExportReceiptToXLSX(rec internal.ReceiptRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"line_no", "vendor", "name", "description", "price"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rec.Products {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.LineNo)
		set(2, rec.Vendor.Tag())
		set(3, row.Name)
		set(4, row.Description)
		set(5, row.Price)
	}

	totalRow := len(rec.Products) + 2
	label, _ := excelize.CoordinatesToCellName(4, totalRow)
	total, _ := excelize.CoordinatesToCellName(5, totalRow)
	_ = f.SetCellValue(sheet, label, "total")
	_ = f.SetCellValue(sheet, total, rec.Total())

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ProductRows numbers products for storage and export, splitting each
// description into its canonical name.
func ProductRows(products []internal.Product) []internal.ProductRow {
	rows := make([]internal.ProductRow, 0, len(products))
	for i, p := range products {
		rows = append(rows, internal.ProductRow{
			LineNo:      i + 1,
			Name:        productName(p.Description),
			Description: p.Description,
			Price:       p.Price,
		})
	}
	return rows
}
