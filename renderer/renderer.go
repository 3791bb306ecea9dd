package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/amwangi254/certihub/models"
	"github.com/jung-kurt/gofpdf"
)

// Request is the single contract between the orchestration layer and the
// renderers: everything needed to turn one template plus resolved field
// values into a PDF at OutputPath.
type Request struct {
	TemplatePath   string
	TemplateType   string
	Fields         []models.TemplateField
	Data           map[string]string
	OutputPath     string
	TemplateWidth  float64
	TemplateHeight float64
	QRCodeData     string
}

// Renderer produces a certificate PDF from a Request. The two
// implementations diverge completely in coordinate semantics (raster keeps
// the editor's top-left origin, vector flips to PDF's bottom-left), so they
// are deliberately not unified beyond this interface.
type Renderer interface {
	Render(req Request) error
}

type Options struct {
	// StrictBounds rejects fields whose scaled box falls outside the target
	// surface. Off by default: oversized canvases are legal and some
	// templates position fields deliberately past the visible edge.
	StrictBounds bool
}

// ForTemplateType selects the renderer for a template's declared type.
func ForTemplateType(templateType string, opts Options) (Renderer, error) {
	switch templateType {
	case models.TemplateTypeImage:
		return &ImageRenderer{opts: opts}, nil
	case models.TemplateTypePDF:
		return &PDFRenderer{opts: opts}, nil
	}
	return nil, fmt.Errorf("unsupported template type %q", templateType)
}

// parseHexColor decodes a #rrggbb (or #rgb) string; anything unparseable
// falls back to black.
func parseHexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff)
}

func writePDF(pdf *gofpdf.Fpdf, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write PDF: %v", err)
	}
	return nil
}
