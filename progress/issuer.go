package progress

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	trainingModels "trainhub/models/training"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Issuer is the only writer of UserCertificate rows. Issuance is exactly-once
// per (user, training): the conditional insert rides the storage-level unique
// constraint, so the guarantee holds across concurrent service instances, not
// just within one process.
type Issuer struct {
	db     *gorm.DB
	secret []byte
}

// NewIssuer creates an Issuer; secret keys the certificate code hash
func NewIssuer(db *gorm.DB, secret string) *Issuer {
	return &Issuer{db: db, secret: []byte(secret)}
}

// CertificateCode derives the certificate code from the issuance facts with a
// keyed hash: regenerable for audit, unique (DB-enforced), not guessable.
func CertificateCode(secret []byte, userID, trainingID uint, issuedAt time.Time) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%d|%d|%d", userID, trainingID, issuedAt.UnixNano())
	return "CERT-" + strings.ToUpper(hex.EncodeToString(mac.Sum(nil)[:12]))
}

// Issue creates the certificate for (user, training), or resolves to the
// existing one when a concurrent completion got there first. The boolean
// reports whether this call created the row.
func (i *Issuer) Issue(userID, trainingID uint) (*trainingModels.UserCertificate, bool, error) {
	issuedAt := time.Now().UTC()
	cert := trainingModels.UserCertificate{
		UserID:          userID,
		TrainingID:      trainingID,
		CertificateCode: CertificateCode(i.secret, userID, trainingID, issuedAt),
		IssuedAt:        issuedAt,
	}

	res := i.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "training_id"}},
		DoNothing: true,
	}).Create(&cert)
	if res.Error != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, res.Error)
	}

	if res.RowsAffected == 1 {
		return &cert, true, nil
	}

	// Conflict: another completion already issued. Resolve to the existing
	// record instead of surfacing the conflict.
	existing, err := i.Lookup(userID, trainingID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("%w: certificate for user %d training %d vanished after conflict", ErrCertificateConflict, userID, trainingID)
	}
	return existing, false, nil
}

// Lookup reads the certificate for (user, training), nil when none exists
func (i *Issuer) Lookup(userID, trainingID uint) (*trainingModels.UserCertificate, error) {
	var cert trainingModels.UserCertificate
	err := i.db.Where("user_id = ? AND training_id = ?", userID, trainingID).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return &cert, nil
}

// List returns the user's certificates, newest first
func (i *Issuer) List(userID uint) ([]trainingModels.UserCertificate, error) {
	var certs []trainingModels.UserCertificate
	err := i.db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return certs, nil
}
