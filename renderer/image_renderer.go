package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"os"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// rasterPointScale converts template pixels to PDF points assuming the
// source raster was authored at 96 DPI (96 px/in → 72 pt/in).
const rasterPointScale = 0.75

// ImageRenderer produces a certificate PDF from an image-type template:
// the template raster is the page background, resolved field values are
// drawn onto it in field order, the composite is flattened and wrapped as a
// single-page PDF sized at pixel dimensions × 0.75.
type ImageRenderer struct {
	opts Options
}

func (r *ImageRenderer) Render(req Request) error {
	f, err := os.Open(req.TemplatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("template not found at %s", req.TemplatePath)
		}
		return fmt.Errorf("failed to open template: %v", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("unsupported image template: %v", err)
	}
	if format != "png" && format != "jpeg" {
		return fmt.Errorf("unsupported image template format %q", format)
	}

	bounds := img.Bounds()
	actual := Canvas{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	declared := Canvas{Width: req.TemplateWidth, Height: req.TemplateHeight}
	if declared.Width <= 0 || declared.Height <= 0 {
		declared = actual
	}

	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, image.Point{}, draw.Src)

	faces := newFaceCache()
	for _, field := range req.Fields {
		value := req.Data[field.Name]
		if value == "" {
			continue
		}

		sf := scaleField(field, declared, actual, false)
		if r.opts.StrictBounds {
			if err := checkBounds(sf, actual, false); err != nil {
				return fmt.Errorf("field %q: %v", field.Name, err)
			}
		}

		face, err := faces.face(field.FontWeight, field.FontStyle, sf.FontSize)
		if err != nil {
			return fmt.Errorf("field %q: %v", field.Name, err)
		}

		cr, cg, cb := parseHexColor(field.FontColor)
		d := &font.Drawer{
			Dst:  rgba,
			Src:  image.NewUniform(color.RGBA{uint8(cr), uint8(cg), uint8(cb), 255}),
			Face: face,
		}

		textW := float64(d.MeasureString(value)) / 64
		x := alignedX(sf, field.TextAlign, textW)
		baseline := sf.Y + sf.FontSize
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(baseline * 64),
		}
		d.DrawString(value)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("failed to flatten composite: %v", err)
	}

	pageW := actual.Width * rasterPointScale
	pageH := actual.Height * rasterPointScale
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	pdf.RegisterImageOptionsReader("template", opts, &buf)
	pdf.ImageOptions("template", 0, 0, pageW, pageH, false, opts, 0, "")

	annotateQR(pdf, req.QRCodeData, pageW, pageH)

	return writePDF(pdf, req.OutputPath)
}
