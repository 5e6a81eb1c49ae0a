package model

import "time"

// Certification is one-per-user, enforced by the unique index on
// user_id so that two concurrent issuance requests cannot both insert.
type Certification struct {
	BaseModel
	UserID             uint       `gorm:"uniqueIndex;not null" json:"userId"`
	CertificationLevel string     `gorm:"size:10;not null" json:"certificationLevel"` // B2, B1, ...
	IssuedDate         time.Time  `gorm:"autoCreateTime" json:"issuedDate"`
	ExpiryDate         *time.Time `json:"expiryDate"`
	CertificateURL     string     `gorm:"size:255" json:"certificateUrl"`
}

func (Certification) TableName() string {
	return "certifications"
}
