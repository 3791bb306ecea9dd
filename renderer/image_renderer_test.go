package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/amwangi254/certihub/models"
)

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}

	path := filepath.Join(dir, "template.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test PNG: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return path
}

func readPDF(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (starts with %q)", data[:4])
	}
	return data
}

func TestImageRendererSingleField(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTestPNG(t, dir, 842, 595)
	out := filepath.Join(dir, "out.pdf")

	req := Request{
		TemplatePath: tpl,
		TemplateType: models.TemplateTypeImage,
		Fields: []models.TemplateField{
			{
				Name: "studentName", Kind: "text",
				X: 100, Y: 100, Width: 200, FontSize: 20,
				FontColor: "#000000", TextAlign: "left",
				FontWeight: "normal", FontStyle: "normal",
			},
		},
		Data:           map[string]string{"studentName": "Jane Doe"},
		OutputPath:     out,
		TemplateWidth:  842,
		TemplateHeight: 595,
	}

	r := &ImageRenderer{}
	if err := r.Render(req); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data := readPDF(t, out)

	// 842×595 px at the fixed 96→72 DPI conversion is a 631.5×446.25 pt page.
	if !bytes.Contains(data, []byte("631.50")) || !bytes.Contains(data, []byte("446.25")) {
		t.Error("output page is not sized at pixel dimensions x 0.75")
	}
}

// A field whose name resolves to nothing must leave the page identical to
// rendering with no fields at all.
func TestImageRendererSkipsEmptyValues(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTestPNG(t, dir, 400, 300)

	outEmpty := filepath.Join(dir, "empty.pdf")
	outUnknown := filepath.Join(dir, "unknown.pdf")

	base := Request{
		TemplatePath:   tpl,
		TemplateType:   models.TemplateTypeImage,
		OutputPath:     outEmpty,
		TemplateWidth:  400,
		TemplateHeight: 300,
	}

	r := &ImageRenderer{}
	if err := r.Render(base); err != nil {
		t.Fatalf("render without fields failed: %v", err)
	}

	withUnknown := base
	withUnknown.OutputPath = outUnknown
	withUnknown.Fields = []models.TemplateField{
		{Name: "unknownField", X: 50, Y: 50, Width: 100, FontSize: 14},
	}
	withUnknown.Data = map[string]string{"unknownField": ""}

	if err := r.Render(withUnknown); err != nil {
		t.Fatalf("render with unknown field failed: %v", err)
	}

	a := readPDF(t, outEmpty)
	b := readPDF(t, outUnknown)
	if len(a) != len(b) {
		t.Errorf("expected identical page content, got %d vs %d bytes", len(a), len(b))
	}
}

func TestImageRendererWithQRCode(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTestPNG(t, dir, 400, 300)
	out := filepath.Join(dir, "qr.pdf")

	req := Request{
		TemplatePath:   tpl,
		TemplateType:   models.TemplateTypeImage,
		OutputPath:     out,
		TemplateWidth:  400,
		TemplateHeight: 300,
		QRCodeData:     "https://certs.example.com/verify/CERT-2026-ABC123",
	}

	r := &ImageRenderer{}
	if err := r.Render(req); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	plain := readPDF(t, filepath.Join(dir, "qr.pdf"))

	// The QR page must carry an embedded image beyond the flattened
	// template itself.
	if !bytes.Contains(plain, []byte("/XObject")) {
		t.Error("expected an embedded XObject for the QR code")
	}
}

func TestImageRendererMissingTemplate(t *testing.T) {
	r := &ImageRenderer{}
	err := r.Render(Request{
		TemplatePath: filepath.Join(t.TempDir(), "nope.png"),
		OutputPath:   filepath.Join(t.TempDir(), "out.pdf"),
	})
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("template not found")) {
		t.Errorf("expected 'template not found' in error, got %q", err)
	}
}

func TestImageRendererRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.png")
	if err := os.WriteFile(path, []byte("definitely not a PNG"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &ImageRenderer{}
	err := r.Render(Request{TemplatePath: path, OutputPath: filepath.Join(dir, "out.pdf")})
	if err == nil {
		t.Fatal("expected error for undecodable template")
	}
}

func TestImageRendererStrictBounds(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTestPNG(t, dir, 400, 300)

	req := Request{
		TemplatePath:   tpl,
		TemplateType:   models.TemplateTypeImage,
		OutputPath:     filepath.Join(dir, "out.pdf"),
		TemplateWidth:  400,
		TemplateHeight: 300,
		Fields: []models.TemplateField{
			{Name: "studentName", X: 390, Y: 50, Width: 100, FontSize: 12},
		},
		Data: map[string]string{"studentName": "Jane Doe"},
	}

	permissive := &ImageRenderer{}
	if err := permissive.Render(req); err != nil {
		t.Fatalf("permissive render should accept off-canvas fields: %v", err)
	}

	strict := &ImageRenderer{opts: Options{StrictBounds: true}}
	req.OutputPath = filepath.Join(dir, "strict.pdf")
	if err := strict.Render(req); err == nil {
		t.Fatal("strict render should reject off-canvas fields")
	}
}
