package repository

import (
	"callcenter_english_backend/internal/model"

	"gorm.io/gorm"
)

type CertificationRepository struct {
	DB *gorm.DB
}

func NewCertificationRepository(db *gorm.DB) *CertificationRepository {
	return &CertificationRepository{DB: db}
}

func (r *CertificationRepository) FindByUser(userID uint) (*model.Certification, error) {
	var cert model.Certification
	err := r.DB.Where("user_id = ?", userID).First(&cert).Error
	return &cert, err
}

// Create relies on the unique index on user_id: a second insert for the
// same user fails with a duplicate-key error even when two requests
// pass the existence check at the same time.
func (r *CertificationRepository) Create(cert *model.Certification) error {
	return r.DB.Create(cert).Error
}
