// Package export renders payment reports as downloadable files.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Dan9191/tutor-service/internal/models"
)

// Format names a supported file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatXML  Format = "xml"
)

var headers = []string{"Date", "Student", "Group", "Amount"}

// Table is the data every writer renders.
type Table struct {
	Title    string
	Payments []models.Payment
	Total    float64
}

// ParseFormat validates a format query value, defaulting to xlsx.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatXML:
		return FormatXML, nil
	}
	return "", fmt.Errorf("unsupported export format %q", value)
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXML:
		return "application/vnd.ms-excel"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// Write renders t in format f.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, t)
	case FormatXML:
		return WriteSpreadsheetML(w, t)
	default:
		return WriteXLSX(w, t)
	}
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
