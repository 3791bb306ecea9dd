package renderer

import (
	"fmt"

	"github.com/amwangi254/certihub/models"
)

// Canvas is a width/height pair in one coordinate space.
type Canvas struct {
	Width  float64
	Height float64
}

type scaledField struct {
	X, Y, Width, Height, FontSize float64
}

// scaleField maps a field's editor-space geometry onto the target surface.
// X and Y scale independently; aspect ratio is not preserved when the
// declared canvas and the actual surface disagree. flipY converts the
// vertical origin to PDF convention (bottom-left); raster targets keep the
// editor's top-left origin. Output is never clamped: a mismatch between
// declared and actual dimensions yields off-surface coordinates, not errors.
func scaleField(f models.TemplateField, declared, actual Canvas, flipY bool) scaledField {
	scaleX := actual.Width / declared.Width
	scaleY := actual.Height / declared.Height
	sf := scaledField{
		X:        f.X * scaleX,
		Width:    f.Width * scaleX,
		Height:   f.Height * scaleY,
		FontSize: f.FontSize * scaleY,
	}
	if flipY {
		sf.Y = actual.Height - f.Y*scaleY
	} else {
		sf.Y = f.Y * scaleY
	}
	return sf
}

// alignedX returns the pen origin for text of measured width textW inside
// the field's scaled box. The box only drives alignment math; it never
// clips or wraps, so overflow to the left or right is allowed.
func alignedX(sf scaledField, align string, textW float64) float64 {
	switch align {
	case "center":
		return sf.X + (sf.Width-textW)/2
	case "right":
		return sf.X + sf.Width - textW
	}
	return sf.X
}

// checkBounds is only consulted when StrictBounds is enabled.
func checkBounds(sf scaledField, actual Canvas, flipY bool) error {
	top := sf.Y
	if flipY {
		top = actual.Height - sf.Y
	}
	if sf.X < 0 || top < 0 || sf.X+sf.Width > actual.Width || top+sf.Height > actual.Height {
		return fmt.Errorf("field box (%.1f,%.1f %.1fx%.1f) falls outside %gx%g surface",
			sf.X, top, sf.Width, sf.Height, actual.Width, actual.Height)
	}
	return nil
}
