package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const footerText = "Generated from Scholarship Management Dashboard"

// Report describes the text above the table.
type Report struct {
	Title string
	// Noun completes the "Total <Noun>: N" line.
	Noun        string
	GeneratedOn time.Time
	Summary     string
}

type rgb struct{ r, g, b int }

var (
	headerFill = rgb{66, 139, 202}
	stripeFill = rgb{245, 245, 245}

	// compress is switched off in tests so the page text can be inspected.
	compress = true
)

const (
	marginX    = 10.0
	marginTop  = 20.0
	marginFoot = 20.0
	rowHeight  = 7.0
	fontFamily = "Helvetica"
)

// WriteReport renders rows as a paginated PDF table and returns the number of
// pages written.
func WriteReport[T any](w io.Writer, rep Report, cols []Column[T], rows []T) (int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb} | %s", pdf.PageNo(), footerText), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(0, 10, tr(rep.Title), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont(fontFamily, "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, "Generated on: "+rep.GeneratedOn.Format("1/2/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total %s: %d", rep.Noun, len(rows)), "", 1, "L", false, 0, "")
	if rep.Summary != "" {
		pdf.CellFormat(0, 8, tr(rep.Summary), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	header := func() {
		pdf.SetFont(fontFamily, "B", 9)
		pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range cols {
			pdf.CellFormat(col.Width, rowHeight, tr(col.Label), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", 8)
		pdf.SetTextColor(40, 40, 40)
	}

	header()

	_, pageHeight := pdf.GetPageSize()
	for i, row := range rows {
		if pdf.GetY()+rowHeight > pageHeight-marginFoot {
			pdf.AddPage()
			header()
		}

		shade := i%2 == 1
		if shade {
			pdf.SetFillColor(stripeFill.r, stripeFill.g, stripeFill.b)
		}
		for _, col := range cols {
			text := col.Value(row)
			if col.Truncate {
				text = Truncate(text, TruncateAt)
			}
			pdf.CellFormat(col.Width, rowHeight, fitWidth(pdf, tr(text), col.Width), "", 0, "L", shade, 0, "")
		}
		pdf.Ln(-1)
	}

	pages := pdf.PageCount()
	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("failed to write report: %w", err)
	}

	return pages, nil
}

// fitWidth clips text that would overflow its cell.
func fitWidth(pdf *fpdf.Fpdf, text string, width float64) string {
	limit := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"..") > limit {
		text = text[:len(text)-1]
	}
	return text + ".."
}
