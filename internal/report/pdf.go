package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
)

// PDFMeta is printed in the header of a transcript PDF.
type PDFMeta struct {
	SessionID   string
	GeneratedAt time.Time
}

// WritePDF renders transcript lines on A4 pages in a monospace font.
// Lines wider than the page wrap onto the next row.
func WritePDF(w io.Writer, meta PDFMeta, lines []string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Voyage Transcript", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "VOYAGE TRANSCRIPT")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Session   : "+meta.SessionID)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated : "+meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(10)

	pdf.SetFont("Courier", "", 9)
	for _, line := range lines {
		if line == "" {
			pdf.Ln(4.5)
			continue
		}
		pdf.MultiCell(0, 4.5, line, "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render transcript pdf: %w", err)
	}
	return nil
}
