package jobs

import (
	"fmt"
	"testing"
	"time"

	"github.com/amwangi254/certihub/database"
	"github.com/amwangi254/certihub/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB swaps the global handle for an in-memory sqlite database.
// The production schema leans on a postgres-side uuid default, so the
// certificates table is created by hand instead of automigrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec(`CREATE TABLE certificates (
		id text PRIMARY KEY,
		certificate_number text NOT NULL UNIQUE,
		student_id text NOT NULL,
		course_id text NOT NULL,
		template_id text,
		issue_date datetime NOT NULL,
		file_path text,
		remote_url text,
		verification_url text NOT NULL,
		qr_code_data text NOT NULL,
		status text NOT NULL DEFAULT 'pending',
		failure_reason text,
		created_at datetime,
		updated_at datetime
	)`).Error; err != nil {
		t.Fatalf("failed to create certificates table: %v", err)
	}

	previous := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = previous })
	return db
}

func seedCertificate(t *testing.T, db *gorm.DB, number, status string, age time.Duration) {
	t.Helper()

	url := fmt.Sprintf("https://certs.example.com/verify/%s", number)
	cert := models.Certificate{
		ID:                uuid.New(),
		CertificateNumber: number,
		StudentID:         uuid.New(),
		CourseID:          uuid.New(),
		IssueDate:         time.Now(),
		VerificationURL:   url,
		QRCodeData:        url,
		Status:            status,
		CreatedAt:         time.Now().Add(-age),
	}
	if err := db.Omit("Student", "Course").Create(&cert).Error; err != nil {
		t.Fatalf("failed to seed certificate %s: %v", number, err)
	}
}

func certificateStatus(t *testing.T, db *gorm.DB, number string) (string, *string) {
	t.Helper()

	var cert models.Certificate
	if err := db.Where("certificate_number = ?", number).First(&cert).Error; err != nil {
		t.Fatalf("failed to load certificate %s: %v", number, err)
	}
	return cert.Status, cert.FailureReason
}

func TestSweepMarksStaleOrphansOnly(t *testing.T) {
	db := openTestDB(t)

	seedCertificate(t, db, "CERT-2026-STALE1", models.CertificateStatusPending, time.Hour)
	seedCertificate(t, db, "CERT-2026-FRESH1", models.CertificateStatusPending, time.Minute)
	seedCertificate(t, db, "CERT-2026-DONE01", models.CertificateStatusRendered, time.Hour)

	SweepOrphanedCertificates()

	status, reason := certificateStatus(t, db, "CERT-2026-STALE1")
	if status != models.CertificateStatusFailed {
		t.Errorf("stale pending certificate: got status %q, want failed", status)
	}
	if reason == nil || *reason == "" {
		t.Error("stale pending certificate should carry a failure reason")
	}

	if status, _ := certificateStatus(t, db, "CERT-2026-FRESH1"); status != models.CertificateStatusPending {
		t.Errorf("fresh pending certificate: got status %q, want pending", status)
	}
	if status, _ := certificateStatus(t, db, "CERT-2026-DONE01"); status != models.CertificateStatusRendered {
		t.Errorf("rendered certificate: got status %q, want rendered", status)
	}
}

// A failed save for one orphan must not stop the sweep from marking the
// rest.
func TestSweepContinuesPastSaveFailure(t *testing.T) {
	db := openTestDB(t)

	seedCertificate(t, db, "CERT-2026-LOCKED", models.CertificateStatusPending, time.Hour)
	seedCertificate(t, db, "CERT-2026-STALE2", models.CertificateStatusPending, time.Hour)

	if err := db.Exec(`CREATE TRIGGER reject_locked_update
		BEFORE UPDATE ON certificates
		WHEN NEW.certificate_number = 'CERT-2026-LOCKED'
		BEGIN SELECT RAISE(ABORT, 'update rejected'); END`).Error; err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	SweepOrphanedCertificates()

	if status, _ := certificateStatus(t, db, "CERT-2026-LOCKED"); status != models.CertificateStatusPending {
		t.Errorf("unsavable certificate: got status %q, want pending", status)
	}
	if status, _ := certificateStatus(t, db, "CERT-2026-STALE2"); status != models.CertificateStatusFailed {
		t.Errorf("other stale certificate: got status %q, want failed", status)
	}
}
