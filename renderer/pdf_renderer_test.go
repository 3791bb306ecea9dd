package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/amwangi254/certihub/models"
	"github.com/jung-kurt/gofpdf"
)

func writeTestPDF(t *testing.T, dir string) string {
	t.Helper()

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(100, 100, "Certificate of Achievement")

	path := filepath.Join(dir, "template.pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to create test PDF: %v", err)
	}
	return path
}

// Rendering a PDF template with zero fields and no QR data must keep the
// source page count and dimensions.
func TestPDFRendererPassThrough(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTestPDF(t, dir)
	out := filepath.Join(dir, "out.pdf")

	r := &PDFRenderer{}
	err := r.Render(Request{
		TemplatePath:   tpl,
		TemplateType:   models.TemplateTypePDF,
		OutputPath:     out,
		TemplateWidth:  841.89,
		TemplateHeight: 595.28,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	info, err := ProbeAsset(out)
	if err != nil {
		t.Fatalf("failed to probe output: %v", err)
	}
	if info.PageCount != 1 {
		t.Errorf("expected 1 page, got %d", info.PageCount)
	}
	// A4 landscape in points, within rounding tolerance.
	if info.Width < 841 || info.Width > 843 || info.Height < 594 || info.Height > 596 {
		t.Errorf("expected ~841.89x595.28 page, got %gx%g", info.Width, info.Height)
	}
}

func TestPDFRendererDrawsFields(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTestPDF(t, dir)
	out := filepath.Join(dir, "out.pdf")

	r := &PDFRenderer{}
	err := r.Render(Request{
		TemplatePath: tpl,
		TemplateType: models.TemplateTypePDF,
		Fields: []models.TemplateField{
			{
				Name: "student_name", Kind: "text",
				X: 100, Y: 250, Width: 400, FontSize: 28,
				FontFamily: "Times", FontColor: "#17365d",
				TextAlign: "center", FontWeight: "bold",
			},
			{Name: "unknown_field", X: 10, Y: 10, Width: 50, FontSize: 10},
		},
		Data: map[string]string{
			"student_name":  "Jane Doe",
			"unknown_field": "",
		},
		OutputPath:     out,
		TemplateWidth:  841.89,
		TemplateHeight: 595.28,
		QRCodeData:     "https://certs.example.com/verify/CERT-2026-XYZ789",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	readPDF(t, out)
}

// Certificate generations may run concurrently, and the gofpdi bridge
// behind the vector branch is a package-level singleton. Every render
// must come out with its own template's geometry intact.
func TestPDFRendererConcurrentRenders(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTestPDF(t, dir)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	outs := make([]string, workers)

	for i := 0; i < workers; i++ {
		outs[i] = filepath.Join(dir, fmt.Sprintf("out-%d.pdf", i))
		wg.Add(1)
		go func(out string) {
			defer wg.Done()
			r := &PDFRenderer{}
			errs <- r.Render(Request{
				TemplatePath: tpl,
				TemplateType: models.TemplateTypePDF,
				Fields: []models.TemplateField{
					{Name: "student_name", X: 100, Y: 250, Width: 400, FontSize: 28},
				},
				Data:           map[string]string{"student_name": "Jane Doe"},
				OutputPath:     out,
				TemplateWidth:  841.89,
				TemplateHeight: 595.28,
			})
		}(outs[i])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent render failed: %v", err)
		}
	}
	for _, out := range outs {
		info, err := ProbeAsset(out)
		if err != nil {
			t.Fatalf("failed to probe %s: %v", out, err)
		}
		if info.PageCount != 1 {
			t.Errorf("%s: expected 1 page, got %d", out, info.PageCount)
		}
		if info.Width < 841 || info.Width > 843 || info.Height < 594 || info.Height > 596 {
			t.Errorf("%s: page geometry corrupted, got %gx%g", out, info.Width, info.Height)
		}
	}
}

func TestPDFRendererMissingTemplate(t *testing.T) {
	r := &PDFRenderer{}
	err := r.Render(Request{
		TemplatePath: filepath.Join(t.TempDir(), "nope.pdf"),
		OutputPath:   filepath.Join(t.TempDir(), "out.pdf"),
	})
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if !strings.Contains(err.Error(), "template not found") {
		t.Errorf("expected 'template not found' in error, got %q", err)
	}
}

func TestPDFRendererRejectsCorruptTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &PDFRenderer{}
	err := r.Render(Request{TemplatePath: path, OutputPath: filepath.Join(dir, "out.pdf")})
	if err == nil {
		t.Fatal("expected error for corrupt template")
	}
}

func TestForTemplateType(t *testing.T) {
	if _, err := ForTemplateType(models.TemplateTypeImage, Options{}); err != nil {
		t.Errorf("image type should dispatch: %v", err)
	}
	if _, err := ForTemplateType(models.TemplateTypePDF, Options{}); err != nil {
		t.Errorf("pdf type should dispatch: %v", err)
	}
	if _, err := ForTemplateType("docx", Options{}); err == nil {
		t.Error("unknown type should be rejected")
	}
}
