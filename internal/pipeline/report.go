package pipeline

import (
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"labelpress/internal"
)

// ExportReportToXLSX writes a validation report to a workbook file: one
// sheet with every row and its match outcome, one with suggested
// product-type phrases.
func ExportReportToXLSX(report internal.ValidationReport, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return reportWorkbook(report).SaveAs(outputPath)
}

// WriteReportXLSX streams the same workbook to w, for download
// endpoints.
func WriteReportXLSX(report internal.ValidationReport, w io.Writer) error {
	return reportWorkbook(report).Write(w)
}

func reportWorkbook(report internal.ValidationReport) *excelize.File {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"row_number", "status", "item_name", "order_number", "sku",
		"matched_product_type", "size", "title",
		"product", "quantity", "datamatrix_url",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	r := 2
	writeRow := func(status string, row internal.ValidationRow) {
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, row.RowNumber)
		set(2, status)
		set(3, row.ItemName)
		set(4, row.OrderNumber)
		set(5, row.SKU)
		set(6, row.MatchedProductType)
		set(7, row.Size)
		set(8, row.Title)
		set(9, row.Product)
		set(10, row.Quantity)
		set(11, row.ImageURL)
		r++
	}

	for _, row := range report.MatchedRows {
		writeRow("matched", row)
	}
	for _, row := range report.UnmatchedRows {
		writeRow("unmatched", row)
	}

	if len(report.Suggestions) > 0 {
		if _, err := f.NewSheet("suggestions"); err == nil {
			_ = f.SetCellValue("suggestions", "A1", "suggested_product_type")
			for i, s := range report.Suggestions {
				cell, _ := excelize.CoordinatesToCellName(1, i+2)
				_ = f.SetCellValue("suggestions", cell, s)
			}
		}
	}

	return f
}
