package jobs

import (
	"log"
	"time"

	"github.com/amwangi254/certihub/database"
	"github.com/amwangi254/certihub/models"
)

const orphanAge = 15 * time.Minute

// SweepOrphanedCertificates marks certificates stuck in pending for longer
// than orphanAge as failed. Record creation and the post-render update are
// not atomic, so a crash mid-render leaves a pending row with no PDF; this
// sweep turns that gap into a queryable condition instead of a silent one.
func SweepOrphanedCertificates() {
	log.Println("Running job: SweepOrphanedCertificates...")

	cutoff := time.Now().Add(-orphanAge)

	var orphans []models.Certificate
	err := database.DB.
		Where("status = ? AND created_at < ?", models.CertificateStatusPending, cutoff).
		Find(&orphans).Error
	if err != nil {
		log.Printf("Error checking for orphaned certificates: %v", err)
		return
	}

	if len(orphans) == 0 {
		log.Println("No orphaned certificates found.")
		return
	}

	marked := 0
	for _, cert := range orphans {
		reason := "renderer never completed"
		cert.Status = models.CertificateStatusFailed
		cert.FailureReason = &reason
		if err := database.DB.Save(&cert).Error; err != nil {
			log.Printf("Error marking certificate %s as failed: %v", cert.CertificateNumber, err)
			continue
		}
		marked++
	}

	log.Printf("Marked %d of %d orphaned certificate(s) as failed.", marked, len(orphans))
}
