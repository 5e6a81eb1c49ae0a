package repository

import (
	"callcenter_english_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizRepository) FindByUser(userID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ?", userID).Order("completed_at DESC").Find(&results).Error
	return results, err
}
