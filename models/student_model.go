package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName      string    `gorm:"size:100;not null" json:"first_name"`
	LastName       string    `gorm:"size:100;not null" json:"last_name"`
	Email          string    `gorm:"size:255;not null;unique" json:"email"`
	NationalID     *string   `gorm:"size:50" json:"national_id"`
	PassportNumber *string   `gorm:"size:50" json:"passport_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first and last name with a single space.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
