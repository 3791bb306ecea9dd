package renderer

import (
	"fmt"
	"os"
	"sync"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// The gofpdi bridge keeps a package-level importer whose state is read
// again when the document is serialized, so a vector render holds this
// for its whole import, draw and output sequence.
var importMu sync.Mutex

// PDFRenderer produces a certificate PDF from a pdf-type template by
// importing the first page of the existing document and drawing core-font
// text on top of its content. Existing marks are never replaced.
type PDFRenderer struct {
	opts Options
}

func (r *PDFRenderer) Render(req Request) error {
	if _, statErr := os.Stat(req.TemplatePath); statErr != nil {
		if os.IsNotExist(statErr) {
			return fmt.Errorf("template not found at %s", req.TemplatePath)
		}
		return fmt.Errorf("failed to read template: %v", statErr)
	}

	importMu.Lock()
	defer importMu.Unlock()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	tpl, pageW, pageH, err := importFirstPage(pdf, req.TemplatePath)
	if err != nil {
		return err
	}

	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageW, Ht: pageH})
	gofpdi.UseImportedTemplate(pdf, tpl, 0, 0, pageW, pageH)

	actual := Canvas{Width: pageW, Height: pageH}
	declared := Canvas{Width: req.TemplateWidth, Height: req.TemplateHeight}
	if declared.Width <= 0 || declared.Height <= 0 {
		declared = actual
	}

	for _, field := range req.Fields {
		value := req.Data[field.Name]
		if value == "" {
			continue
		}

		sf := scaleField(field, declared, actual, true)
		if r.opts.StrictBounds {
			if err := checkBounds(sf, actual, true); err != nil {
				return fmt.Errorf("field %q: %v", field.Name, err)
			}
		}

		pdf.SetFont(coreFontFamily(field.FontFamily), coreFontStyle(field.FontWeight, field.FontStyle), sf.FontSize)
		cr, cg, cb := parseHexColor(field.FontColor)
		pdf.SetTextColor(cr, cg, cb)

		textW := pdf.GetStringWidth(value)
		x := alignedX(sf, field.TextAlign, textW)
		// sf.Y is in PDF bottom-left coordinates; gofpdf draws from the
		// top-left, so convert back before placing the baseline.
		pdf.Text(x, actual.Height-sf.Y, value)
	}

	if pdf.Err() {
		return fmt.Errorf("failed to draw onto template page: %v", pdf.Error())
	}

	annotateQR(pdf, req.QRCodeData, pageW, pageH)

	return writePDF(pdf, req.OutputPath)
}

// importFirstPage pulls page one of the source document into pdf and
// returns its template id and true point dimensions. The caller holds
// importMu. gofpdi panics on files it cannot parse, so the panic is
// converted into a render error.
func importFirstPage(pdf *gofpdf.Fpdf, path string) (tpl int, w, h float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unsupported PDF template: %v", r)
		}
	}()

	tpl = gofpdi.ImportPage(pdf, path, 1, "/MediaBox")
	if pdf.Err() {
		return 0, 0, 0, fmt.Errorf("failed to import template page: %v", pdf.Error())
	}

	box, ok := gofpdi.GetPageSizes()[1]["/MediaBox"]
	if !ok {
		return 0, 0, 0, fmt.Errorf("template page has no MediaBox")
	}
	return tpl, box["w"], box["h"], nil
}
