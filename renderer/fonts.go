package renderer

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// The raster branch draws with the embedded Go font family so no font files
// ship with the binary; weight and style pick the variant. The vector
// branch uses the real PDF core fonts instead, where the requested family
// is honored.
var rasterFonts = map[string][]byte{
	"regular":     goregular.TTF,
	"bold":        gobold.TTF,
	"italic":      goitalic.TTF,
	"bold-italic": gobolditalic.TTF,
}

func variantName(weight, style string) string {
	bold := weight == "bold"
	italic := style == "italic"
	switch {
	case bold && italic:
		return "bold-italic"
	case bold:
		return "bold"
	case italic:
		return "italic"
	}
	return "regular"
}

// faceCache is built fresh for each render call and lives for exactly one
// invocation, so no font state leaks across requests.
type faceCache struct {
	parsed map[string]*opentype.Font
	faces  map[string]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{
		parsed: make(map[string]*opentype.Font),
		faces:  make(map[string]font.Face),
	}
}

func (c *faceCache) face(weight, style string, size float64) (font.Face, error) {
	variant := variantName(weight, style)
	key := fmt.Sprintf("%s:%.2f", variant, size)
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	parsed, ok := c.parsed[variant]
	if !ok {
		f, err := opentype.Parse(rasterFonts[variant])
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s font: %v", variant, err)
		}
		parsed = f
		c.parsed[variant] = f
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s font face: %v", variant, err)
	}
	c.faces[key] = face
	return face, nil
}

// coreFontFamily maps an editor font family onto one of the PDF standard
// font families available without embedding.
func coreFontFamily(family string) string {
	switch {
	case family == "" || containsFold(family, "helvetica") || containsFold(family, "arial"):
		return "Helvetica"
	case containsFold(family, "times"):
		return "Times"
	case containsFold(family, "courier"):
		return "Courier"
	}
	return "Helvetica"
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

func coreFontStyle(weight, style string) string {
	s := ""
	if weight == "bold" {
		s += "B"
	}
	if style == "italic" {
		s += "I"
	}
	return s
}
