package handlers

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	config "github.com/amwangi254/certihub/configs"
	"github.com/amwangi254/certihub/database"
	"github.com/amwangi254/certihub/models"
	"github.com/amwangi254/certihub/renderer"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadTemplateAsset is phase one of template creation: store the raw
// asset, probe its true dimensions and report them back so the editor can
// declare a canvas that matches reality. Declared dimensions that diverge
// from the actual asset are the dominant failure mode of the whole
// rendering pipeline, which is why upload must happen before metadata.
func UploadTemplateAsset(c *fiber.Ctx) error {
	file, err := c.FormFile("template")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Template file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".pdf":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only PNG, JPG and PDF templates are supported"})
	}

	dir := filepath.Join(config.UploadDir(), "templates")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare upload directory"})
	}

	path := filepath.Join(dir, uuid.New().String()+ext)
	if err := c.SaveFile(file, path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store template file"})
	}

	info, err := renderer.ProbeAsset(path)
	if err != nil {
		os.Remove(path)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"file_path":     path,
		"template_type": info.TemplateType,
		"width":         info.Width,
		"height":        info.Height,
		"page_count":    info.PageCount,
	})
}

type TemplateRequest struct {
	Name         string                `json:"name" validate:"required,min=2"`
	TemplateType string                `json:"template_type" validate:"required,oneof=image pdf"`
	FilePath     string                `json:"file_path" validate:"required"`
	Width        float64               `json:"width" validate:"required,gt=0"`
	Height       float64               `json:"height" validate:"required,gt=0"`
	Fields       models.TemplateFields `json:"fields"`
	IsActive     *bool                 `json:"is_active"`
}

// CreateTemplate is phase two: attach metadata and the field layout to a
// previously uploaded asset.
func CreateTemplate(c *fiber.Ctx) error {
	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := os.Stat(req.FilePath); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Template asset not found; upload it first"})
	}

	// Declared canvas dimensions should match the asset. Divergence is
	// logged rather than rejected: templates authored against a scaled
	// editor canvas still render, just at the author's own risk.
	if info, err := renderer.ProbeAsset(req.FilePath); err == nil {
		if math.Abs(info.Width-req.Width) > 1 || math.Abs(info.Height-req.Height) > 1 {
			log.Printf("⚠️ Template %q declares %gx%g but asset is %gx%g; fields may render off-canvas",
				req.Name, req.Width, req.Height, info.Width, info.Height)
		}
		if info.TemplateType != req.TemplateType {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Asset is a %s template, not %s", info.TemplateType, req.TemplateType),
			})
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	template := models.CertificateTemplate{
		Name:         req.Name,
		TemplateType: req.TemplateType,
		FilePath:     req.FilePath,
		Width:        req.Width,
		Height:       req.Height,
		Fields:       req.Fields,
		IsActive:     isActive,
	}
	if err := database.DB.Create(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

func ListTemplates(c *fiber.Ctx) error {
	var templates []models.CertificateTemplate
	if err := database.DB.Order("created_at DESC").Find(&templates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(templates)
}

func GetTemplate(c *fiber.Ctx) error {
	var template models.CertificateTemplate
	if err := database.DB.First(&template, "id = ?", c.Params("templateId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return c.JSON(template)
}

type TemplateUpdateRequest struct {
	Name     string                `json:"name" validate:"required,min=2"`
	Fields   models.TemplateFields `json:"fields"`
	IsActive *bool                 `json:"is_active"`
}

// UpdateTemplate changes name, field layout and the active flag in place.
// The template type and backing asset are immutable after creation.
func UpdateTemplate(c *fiber.Ctx) error {
	var template models.CertificateTemplate
	if err := database.DB.First(&template, "id = ?", c.Params("templateId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	var req TemplateUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	template.Name = req.Name
	template.Fields = req.Fields
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update template"})
	}
	return c.JSON(template)
}

// DeleteTemplate removes the database row and the backing asset file.
func DeleteTemplate(c *fiber.Ctx) error {
	var template models.CertificateTemplate
	if err := database.DB.First(&template, "id = ?", c.Params("templateId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	if err := database.DB.Delete(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete template"})
	}

	if err := os.Remove(template.FilePath); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Failed to remove template asset %s: %v", template.FilePath, err)
	}

	return c.JSON(fiber.Map{"message": "Template deleted"})
}
