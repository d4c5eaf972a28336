package presenter

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer lays out the loan summary as a one page A4 document using the
// core Helvetica font, so no font files are needed at runtime.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (p *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (p *PDFRenderer) RenderQuote(w io.Writer, s Summary) error {
	pdf := newDocument()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Loan Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(70, 10, "Monthly P&I:")
	pdf.CellFormat(0, 10, s.MonthlyPayment, "", 0, "R", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range [][2]string{
		{"Loan Amount:", s.LoanAmount},
		{"Term:", s.Term},
		{"Rate:", s.Rate},
	} {
		pdf.Cell(70, 7, row[0])
		pdf.CellFormat(0, 7, row[1], "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, s.Disclaimer, "", "C", false)

	return pdf.Output(w)
}

func (p *PDFRenderer) RenderError(w io.Writer, message string) error {
	pdf := newDocument()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(200, 30, 30)
	pdf.MultiCell(0, 6, message, "", "C", false)
	return pdf.Output(w)
}

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Loan Summary", false)
	pdf.AddPage()
	return pdf
}
