package export

import (
	"fmt"
	"io"
	"realitycheck/internal/model"
	"time"

	"github.com/go-pdf/fpdf"
)

var now = time.Now

const (
	pdfLineHeight = 5.0
	pdfCellPad    = 1.5
)

var pdfHeaders = []string{"Tool Name", "Pros", "Cons", "Gaps/Needs"}

// PDF writes a title page with the comparison table, then a summary page and
// an ideas page.
func PDF(result *model.AnalysisResult, w io.Writer) error {
	result = normalize(result)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 16, 14)
	pdf.SetAutoPageBreak(true, 16)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr("Competitive Tool Analysis"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated: "+now().Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(pdfHeaders))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	drawRow(pdf, pdfHeaders, colW, true)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range result.Rows {
		cells := []string{tr(r.Name), tr(r.Pros), tr(r.Cons), tr(r.Gaps)}
		drawRow(pdf, cells, colW, false)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "AI Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(result.Summary), "", "L", false)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Product Ideas", "", 1, "L", false, 0, "")
	for i, idea := range result.Ideas {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, idea.Title)), "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		for _, f := range idea.Features {
			pdf.MultiCell(0, 6, tr("    • "+f), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// drawRow draws one table row whose height fits the tallest wrapped cell
func drawRow(pdf *fpdf.Fpdf, cells []string, colW float64, fill bool) {
	lines := 1
	for _, c := range cells {
		if n := len(pdf.SplitLines([]byte(c), colW-2*pdfCellPad)); n > lines {
			lines = n
		}
	}
	rowH := float64(lines)*pdfLineHeight + 2*pdfCellPad

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+rowH > pageH-bottom {
		pdf.AddPage()
	}

	left, _, _, _ := pdf.GetMargins()
	y := pdf.GetY()
	style := "D"
	if fill {
		style = "FD"
	}
	for i, c := range cells {
		x := left + float64(i)*colW
		pdf.Rect(x, y, colW, rowH, style)
		pdf.SetXY(x+pdfCellPad, y+pdfCellPad)
		pdf.MultiCell(colW-2*pdfCellPad, pdfLineHeight, c, "", "L", false)
	}
	pdf.SetXY(left, y+rowH)
}
