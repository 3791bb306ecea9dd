package renderer

import (
	"bytes"
	"log"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	qrSize      = 60.0
	qrMargin    = 30.0
	qrCaption   = "Scan to verify"
	qrImageSide = 256
)

// annotateQR composites the verification QR code onto the bottom-right
// corner of the current page, with a caption centered beneath it. The
// placement is identical for every template. Failures are logged and
// swallowed: a certificate without a QR code is still verifiable by its
// number, so QR trouble must never sink the whole render.
func annotateQR(pdf *gofpdf.Fpdf, data string, pageW, pageH float64) {
	if data == "" {
		return
	}

	png, err := qrcode.Encode(data, qrcode.Medium, qrImageSide)
	if err != nil {
		log.Printf("⚠️ Skipping QR code: %v", err)
		return
	}

	const name = "verify-qr"
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

	x := pageW - qrMargin - qrSize
	y := pageH - qrMargin - qrSize
	pdf.ImageOptions(name, x, y, qrSize, qrSize, false, opts, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	captionW := pdf.GetStringWidth(qrCaption)
	pdf.Text(x+(qrSize-captionW)/2, pageH-qrMargin+8, qrCaption)
}
