package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amwangi254/certihub/models"
	"gorm.io/gorm"
)

const certificateSuffixLength = 6
const suffixBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomSuffix(r *rand.Rand) string {
	b := make([]byte, certificateSuffixLength)
	for i := range b {
		b[i] = suffixBytes[r.Intn(len(suffixBytes))]
	}
	return string(b)
}

// GenerateCertificateNumber produces a unique human-readable number of the
// form CERT-2026-A1B2C3, retrying until the suffix is unused.
func GenerateCertificateNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		number := fmt.Sprintf("CERT-%d-%s", time.Now().Year(), randomSuffix(seededRand))

		var cert models.Certificate
		err := tx.Where("certificate_number = ?", number).First(&cert).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}
