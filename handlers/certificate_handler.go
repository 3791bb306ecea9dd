package handlers

import (
	"log"
	"os"

	"github.com/amwangi254/certihub/database"
	"github.com/amwangi254/certihub/models"
	"github.com/amwangi254/certihub/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GenerateCertificateRequest struct {
	StudentID  string  `json:"student_id" validate:"required,uuid4"`
	CourseID   string  `json:"course_id" validate:"required,uuid4"`
	TemplateID *string `json:"template_id" validate:"omitempty,uuid4"`
}

// GenerateCertificate issues a single certificate. With no template_id the
// built-in programmatic layout is used.
func GenerateCertificate(c *fiber.Ctx) error {
	var req GenerateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	studentID, _ := uuid.Parse(req.StudentID)
	courseID, _ := uuid.Parse(req.CourseID)

	var templateID *uuid.UUID
	if req.TemplateID != nil {
		id, err := uuid.Parse(*req.TemplateID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template_id"})
		}
		templateID = &id
	}

	cert, err := services.GenerateCertificate(studentID, courseID, templateID)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(cert)
}

type BulkGenerateRequest struct {
	CourseID   string   `json:"course_id" validate:"required,uuid4"`
	TemplateID *string  `json:"template_id" validate:"omitempty,uuid4"`
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,uuid4"`
}

func BulkGenerateCertificates(c *fiber.Ctx) error {
	var req BulkGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID, _ := uuid.Parse(req.CourseID)

	var templateID *uuid.UUID
	if req.TemplateID != nil {
		id, err := uuid.Parse(*req.TemplateID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template_id"})
		}
		templateID = &id
	}

	studentIDs := make([]uuid.UUID, 0, len(req.StudentIDs))
	for _, raw := range req.StudentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id: " + raw})
		}
		studentIDs = append(studentIDs, id)
	}

	results := services.GenerateBulk(courseID, templateID, studentIDs)

	generated := 0
	for _, r := range results {
		if r.Error == "" {
			generated++
		}
	}

	return c.JSON(fiber.Map{
		"generated": generated,
		"failed":    len(results) - generated,
		"results":   results,
	})
}

func ListCertificates(c *fiber.Ctx) error {
	query := database.DB.Preload("Student").Preload("Course").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var certs []models.Certificate
	if err := query.Find(&certs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(certs)
}

func GetCertificate(c *fiber.Ctx) error {
	var cert models.Certificate
	err := database.DB.Preload("Student").Preload("Course").
		First(&cert, "id = ?", c.Params("certificateId")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate not found"})
	}
	return c.JSON(cert)
}

func DownloadCertificate(c *fiber.Ctx) error {
	var cert models.Certificate
	if err := database.DB.First(&cert, "id = ?", c.Params("certificateId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate not found"})
	}

	if cert.Status != models.CertificateStatusRendered || cert.FilePath == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate PDF is not available"})
	}

	return c.Download(*cert.FilePath, cert.CertificateNumber+".pdf")
}

func DeleteCertificate(c *fiber.Ctx) error {
	var cert models.Certificate
	if err := database.DB.First(&cert, "id = ?", c.Params("certificateId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate not found"})
	}

	if err := database.DB.Delete(&cert).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete certificate"})
	}

	if cert.FilePath != nil {
		if err := os.Remove(*cert.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to remove certificate file %s: %v", *cert.FilePath, err)
		}
	}

	return c.JSON(fiber.Map{"message": "Certificate deleted"})
}
