package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Payments"

// WriteXLSX writes an Excel workbook with a header row, one row per payment and a total row.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]any{t.Title}); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A2", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "D2", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	row := 3
	for _, p := range t.Payments {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &[]any{p.Date, p.StudentName, p.GroupName, p.Amount}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(3, row)
	totalCell, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetCellValue(sheetName, totalLabel, "Total"); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellValue(sheetName, totalCell, t.Total); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellStyle(sheetName, totalLabel, totalCell, bold); err != nil {
		return fmt.Errorf("failed to style total: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "D", 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
