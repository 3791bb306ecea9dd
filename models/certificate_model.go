package models

import (
	"time"

	"github.com/google/uuid"
)

// Certificate rows move through a short-lived state machine: created as
// pending before rendering starts (the verification URL needs the row's
// identity), updated to rendered once the PDF exists, or to failed with a
// reason. Rows stuck in pending are orphans and are swept by a cron job.
const (
	CertificateStatusPending  = "pending"
	CertificateStatusRendered = "rendered"
	CertificateStatusFailed   = "failed"
)

type Certificate struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CertificateNumber string     `gorm:"size:30;not null;unique" json:"certificate_number"`
	StudentID         uuid.UUID  `gorm:"not null" json:"student_id"`
	CourseID          uuid.UUID  `gorm:"not null" json:"course_id"`
	TemplateID        *uuid.UUID `json:"template_id"`
	IssueDate         time.Time  `gorm:"not null" json:"issue_date"`
	FilePath          *string    `gorm:"size:512" json:"file_path"`
	RemoteURL         *string    `gorm:"size:512" json:"remote_url"`
	VerificationURL   string     `gorm:"size:512;not null" json:"verification_url"`
	QRCodeData        string     `gorm:"size:512;not null" json:"qr_code_data"`
	Status            string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	FailureReason     *string    `gorm:"type:text" json:"failure_reason,omitempty"`

	Student Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course  Course  `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
