package export

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

const spreadsheetNS = "urn:schemas-microsoft-com:office:spreadsheet"

// WriteSpreadsheetML writes an Excel 2003 XML workbook.
func WriteSpreadsheetML(w io.Writer, t Table) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	workbook := doc.CreateElement("Workbook")
	workbook.CreateAttr("xmlns", spreadsheetNS)
	workbook.CreateAttr("xmlns:ss", spreadsheetNS)

	worksheet := workbook.CreateElement("Worksheet")
	worksheet.CreateAttr("ss:Name", sheetName)
	table := worksheet.CreateElement("Table")

	addRow := func(values ...any) {
		row := table.CreateElement("Row")
		for _, v := range values {
			data := row.CreateElement("Cell").CreateElement("Data")
			switch v := v.(type) {
			case float64:
				data.CreateAttr("ss:Type", "Number")
				data.SetText(amount(v))
			default:
				data.CreateAttr("ss:Type", "String")
				data.SetText(fmt.Sprint(v))
			}
		}
	}

	addRow(t.Title)
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	addRow(header...)
	for _, p := range t.Payments {
		addRow(p.Date, p.StudentName, p.GroupName, p.Amount)
	}
	addRow("", "", "Total", t.Total)

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet xml: %w", err)
	}
	return nil
}
