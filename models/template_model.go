package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TemplateTypeImage = "image"
	TemplateTypePDF   = "pdf"
)

// TemplateField is one positionable text slot of a template. Geometry is
// expressed in the coordinate space of the template's declared canvas
// dimensions (top-left origin), exactly as the visual editor laid it out.
// The JSON shape matches the editor payload; unknown extra keys are
// tolerated on decode so older backends keep accepting newer editors.
type TemplateField struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	FontColor  string  `json:"fontColor"`
	TextAlign  string  `json:"textAlign"`
	FontWeight string  `json:"fontWeight"`
	FontStyle  string  `json:"fontStyle"`
}

// TemplateFields is stored as a single JSON column; slice order is the
// editor's field order and is preserved as-is.
type TemplateFields []TemplateField

type CertificateTemplate struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	TemplateType string         `gorm:"size:10;not null" json:"template_type"`
	FilePath     string         `gorm:"size:512;not null" json:"file_path"`
	Width        float64        `gorm:"not null" json:"width"`
	Height       float64        `gorm:"not null" json:"height"`
	Fields       TemplateFields `gorm:"serializer:json" json:"fields"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
