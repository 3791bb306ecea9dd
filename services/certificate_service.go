package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	config "github.com/amwangi254/certihub/configs"
	"github.com/amwangi254/certihub/database"
	"github.com/amwangi254/certihub/models"
	"github.com/amwangi254/certihub/notifications"
	"github.com/amwangi254/certihub/renderer"
	"github.com/amwangi254/certihub/utils"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateCertificate issues one certificate for a student/course pair.
// The record is created in pending state first so the verification URL can
// embed its identity, then updated once rendering lands the PDF. Record
// creation and the final update are deliberately not atomic with rendering;
// a crash in between leaves a pending row for the orphan sweep to flag.
func GenerateCertificate(studentID, courseID uuid.UUID, templateID *uuid.UUID) (*models.Certificate, error) {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return nil, fmt.Errorf("student not found: %v", err)
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return nil, fmt.Errorf("course not found: %v", err)
	}

	var template *models.CertificateTemplate
	if templateID != nil {
		var t models.CertificateTemplate
		if err := database.DB.First(&t, "id = ?", *templateID).Error; err != nil {
			return nil, fmt.Errorf("template not found: %v", err)
		}
		if !t.IsActive {
			return nil, fmt.Errorf("template %q is not active", t.Name)
		}
		template = &t
	}

	number, err := utils.GenerateCertificateNumber(database.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to generate certificate number: %v", err)
	}

	verificationURL := fmt.Sprintf("%s/verify/%s", strings.TrimRight(config.Config("BASE_URL"), "/"), number)

	cert := models.Certificate{
		CertificateNumber: number,
		StudentID:         student.ID,
		CourseID:          course.ID,
		TemplateID:        templateID,
		IssueDate:         time.Now(),
		VerificationURL:   verificationURL,
		QRCodeData:        verificationURL,
		Status:            models.CertificateStatusPending,
	}
	if err := database.DB.Create(&cert).Error; err != nil {
		return nil, fmt.Errorf("failed to create certificate record: %v", err)
	}

	outputPath := filepath.Join(config.UploadDir(), "certificates", number+".pdf")

	if err := renderCertificate(&cert, student, course, template, outputPath); err != nil {
		reason := err.Error()
		cert.Status = models.CertificateStatusFailed
		cert.FailureReason = &reason
		if saveErr := database.DB.Save(&cert).Error; saveErr != nil {
			log.Printf("🔥 Failed to record failure for certificate %s: %v", number, saveErr)
		}
		return nil, fmt.Errorf("certificate generation failed: %v", err)
	}

	cert.Status = models.CertificateStatusRendered
	cert.FilePath = &outputPath

	if url, err := mirrorToCloudinary(outputPath, number); err != nil {
		log.Printf("⚠️ Failed to mirror certificate %s to Cloudinary: %v", number, err)
	} else if url != "" {
		cert.RemoteURL = &url
	}

	if err := database.DB.Save(&cert).Error; err != nil {
		return nil, fmt.Errorf("failed to update certificate record: %v", err)
	}

	go notifications.SendCertificateIssuedEmail(student, course, verificationURL)

	log.Printf("✅ Generated certificate %s for %s (%s)", number, student.FullName(), course.Name)
	return &cert, nil
}

func renderCertificate(cert *models.Certificate, student models.Student, course models.Course, template *models.CertificateTemplate, outputPath string) error {
	if template == nil {
		return renderer.RenderProgrammatic(renderer.ProgrammaticData{
			StudentName:       student.FullName(),
			CourseName:        course.Name,
			IssueDate:         cert.IssueDate.Format("January 2, 2006"),
			CertificateNumber: cert.CertificateNumber,
		}, outputPath, cert.QRCodeData)
	}

	subject := FieldSubject{
		Student:           student,
		Course:            course,
		CertificateNumber: cert.CertificateNumber,
		IssueDate:         cert.IssueDate,
	}
	values := ResolveFieldValues(template.Fields, subject)
	for _, f := range template.Fields {
		log.Printf("Certificate %s: field %q resolved to %q", cert.CertificateNumber, f.Name, values[f.Name])
	}

	r, err := renderer.ForTemplateType(template.TemplateType, renderer.Options{
		StrictBounds: config.StrictFieldBounds(),
	})
	if err != nil {
		return err
	}

	return r.Render(renderer.Request{
		TemplatePath:   template.FilePath,
		TemplateType:   template.TemplateType,
		Fields:         template.Fields,
		Data:           values,
		OutputPath:     outputPath,
		TemplateWidth:  template.Width,
		TemplateHeight: template.Height,
		QRCodeData:     cert.QRCodeData,
	})
}

// BulkResult is the per-student outcome of a bulk generation run.
type BulkResult struct {
	StudentID         uuid.UUID  `json:"student_id"`
	CertificateID     *uuid.UUID `json:"certificate_id,omitempty"`
	CertificateNumber string     `json:"certificate_number,omitempty"`
	Error             string     `json:"error,omitempty"`
}

// GenerateBulk issues certificates with a sequential loop of independent
// single-certificate operations; one failure is recorded per item without
// aborting the remaining items.
func GenerateBulk(courseID uuid.UUID, templateID *uuid.UUID, studentIDs []uuid.UUID) []BulkResult {
	results := make([]BulkResult, 0, len(studentIDs))
	for _, sid := range studentIDs {
		cert, err := GenerateCertificate(sid, courseID, templateID)
		if err != nil {
			results = append(results, BulkResult{StudentID: sid, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{
			StudentID:         sid,
			CertificateID:     &cert.ID,
			CertificateNumber: cert.CertificateNumber,
		})
	}
	return results
}

// mirrorToCloudinary uploads the rendered PDF when CLOUDINARY_URL is
// configured; an empty URL with nil error means mirroring is disabled.
func mirrorToCloudinary(path, number string) (string, error) {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		return "", nil
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := cld.Upload.Upload(ctx, f, uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s", number),
		Folder:       "certihub_certificates",
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
