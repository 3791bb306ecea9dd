package renderer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/amwangi254/certihub/models"
	realgofpdi "github.com/phpdave11/gofpdi"
)

// AssetInfo describes an uploaded template asset as it actually is on
// disk. The true dimensions reported here are what the editor must declare
// as the template canvas; every downstream positioning computation depends
// on that contract being honored.
type AssetInfo struct {
	TemplateType string  `json:"template_type"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	PageCount    int     `json:"page_count"`
}

// ProbeAsset classifies a template asset and reads its true dimensions:
// pixel dimensions for PNG/JPEG rasters, first-page point dimensions for
// PDFs. Anything else is rejected.
func ProbeAsset(path string) (*AssetInfo, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return probeImage(path)
	case ".pdf":
		return probePDF(path)
	}
	return nil, fmt.Errorf("unsupported template format %q", filepath.Ext(path))
}

func probeImage(path string) (*AssetInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("template not found at %s: %v", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image template: %v", err)
	}

	return &AssetInfo{
		TemplateType: models.TemplateTypeImage,
		Width:        float64(cfg.Width),
		Height:       float64(cfg.Height),
		PageCount:    1,
	}, nil
}

// probePDF reads the page inventory with gofpdi, which panics on files it
// cannot parse; the panic is converted into a probe error.
func probePDF(path string) (info *AssetInfo, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, fmt.Errorf("template not found at %s: %v", path, statErr)
	}

	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("failed to read PDF template: %v", r)
		}
	}()

	imp := realgofpdi.NewImporter()
	imp.SetSourceFile(path)

	pages := imp.GetNumPages()
	if pages < 1 {
		return nil, fmt.Errorf("PDF template has no pages")
	}

	box, ok := imp.GetPageSizes()[1]["/MediaBox"]
	if !ok {
		return nil, fmt.Errorf("PDF template page has no MediaBox")
	}

	return &AssetInfo{
		TemplateType: models.TemplateTypePDF,
		Width:        box["w"],
		Height:       box["h"],
		PageCount:    pages,
	}, nil
}
