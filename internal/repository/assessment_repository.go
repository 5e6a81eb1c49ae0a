package repository

import (
	"callcenter_english_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) CreateResult(result *model.AssessmentResult) error {
	return r.DB.Create(result).Error
}

func (r *AssessmentRepository) FindResultsByUser(userID uint) ([]model.AssessmentResult, error) {
	var results []model.AssessmentResult
	err := r.DB.Where("user_id = ?", userID).Order("completed_at DESC").Find(&results).Error
	return results, err
}
