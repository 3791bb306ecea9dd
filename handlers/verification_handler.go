package handlers

import (
	"github.com/amwangi254/certihub/database"
	"github.com/amwangi254/certihub/models"
	"github.com/gofiber/fiber/v2"
)

// VerifyCertificate is the public endpoint the QR code points at. It is
// keyed by certificate number, so verification works even when the QR
// annotation was skipped at render time.
func VerifyCertificate(c *fiber.Ctx) error {
	var cert models.Certificate
	err := database.DB.Preload("Student").Preload("Course").
		First(&cert, "certificate_number = ?", c.Params("number")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"valid":   false,
			"message": "No certificate found for this number",
		})
	}

	return c.JSON(fiber.Map{
		"valid":              cert.Status == models.CertificateStatusRendered,
		"certificate_number": cert.CertificateNumber,
		"student_name":       cert.Student.FullName(),
		"course_name":        cert.Course.Name,
		"issue_date":         cert.IssueDate,
		"status":             cert.Status,
	})
}
