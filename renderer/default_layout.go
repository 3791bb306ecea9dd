package renderer

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ProgrammaticData is the fixed data set the built-in layout prints.
type ProgrammaticData struct {
	StudentName       string
	CourseName        string
	IssueDate         string
	CertificateNumber string
}

// RenderProgrammatic draws the hardcoded certificate layout used when no
// visual template is attached: an A4 landscape page with a double border,
// centered headline blocks and the QR annotation in the usual corner.
func RenderProgrammatic(data ProgrammaticData, outputPath, qrCodeData string) error {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	pdf.SetDrawColor(23, 54, 93)
	pdf.SetLineWidth(3)
	pdf.Rect(24, 24, pageW-48, pageH-48, "D")
	pdf.SetLineWidth(1)
	pdf.Rect(34, 34, pageW-68, pageH-68, "D")

	centered := func(text, family, style string, size, y float64) {
		pdf.SetFont(family, style, size)
		pdf.SetXY(0, y)
		pdf.CellFormat(pageW, size+6, text, "", 0, "C", false, 0, "")
	}

	pdf.SetTextColor(23, 54, 93)
	centered("CERTIFICATE OF COMPLETION", "Helvetica", "B", 34, 90)

	pdf.SetTextColor(80, 80, 80)
	centered("This is to certify that", "Times", "I", 16, 170)

	pdf.SetTextColor(0, 0, 0)
	centered(data.StudentName, "Times", "B", 30, 210)

	pdf.SetTextColor(80, 80, 80)
	centered("has successfully completed the course", "Times", "I", 16, 270)

	pdf.SetTextColor(23, 54, 93)
	centered(data.CourseName, "Helvetica", "B", 22, 308)

	pdf.SetTextColor(80, 80, 80)
	footer := fmt.Sprintf("Issued on %s   |   %s", data.IssueDate, data.CertificateNumber)
	centered(footer, "Helvetica", "", 12, pageH-120)

	annotateQR(pdf, qrCodeData, pageW, pageH)

	return writePDF(pdf, outputPath)
}
