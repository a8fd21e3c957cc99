package training

import (
	"time"

	"gorm.io/gorm"
)

// UserCertificate is the immutable proof that a user fully completed a
// training. The composite unique index is what makes certificate issuance
// exactly-once under concurrent completions: two racing inserts resolve at
// the storage layer, not in application code.
type UserCertificate struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_training"`
	TrainingID      uint      `json:"training_id" gorm:"not null;uniqueIndex:idx_user_training"`
	CertificateCode string    `json:"certificate_code" gorm:"size:64;unique"`
	IssuedAt        time.Time `json:"issued_at" gorm:"index"`
}
