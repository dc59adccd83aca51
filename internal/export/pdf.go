package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

var columnWidths = []float64{35, 65, 50, 40}

const (
	rowHeight   = 8
	pageBottom  = 280
	headerColor = 230
)

// WritePDF writes an A4 table of the payments, repeating the header on every page.
func WritePDF(w io.Writer, t Table) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 10)
	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(headerColor, headerColor, headerColor)
		for i, h := range headers {
			pdf.CellFormat(columnWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 12, tr(t.Title), "", 1, "L", false, 0, "")
	header()

	for _, p := range t.Payments {
		if pdf.GetY()+rowHeight > pageBottom {
			pdf.AddPage()
			header()
		}
		pdf.CellFormat(columnWidths[0], rowHeight, p.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[1], rowHeight, tr(p.StudentName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[2], rowHeight, tr(p.GroupName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[3], rowHeight, amount(p.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if pdf.GetY()+rowHeight > pageBottom {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(columnWidths[0]+columnWidths[1]+columnWidths[2], rowHeight, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(columnWidths[3], rowHeight, amount(t.Total), "1", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
