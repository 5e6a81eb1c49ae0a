package repository

import (
	"callcenter_english_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) FindByUser(userID uint) ([]model.SkillMastery, error) {
	var skills []model.SkillMastery
	err := r.DB.Where("user_id = ?", userID).Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) FindByUserAndName(userID uint, skillName string) (*model.SkillMastery, error) {
	var skill model.SkillMastery
	err := r.DB.Where("user_id = ? AND skill_name = ?", userID, skillName).First(&skill).Error
	return &skill, err
}

func (r *SkillRepository) Create(skill *model.SkillMastery) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) Update(skill *model.SkillMastery) error {
	return r.DB.Save(skill).Error
}

// FindWeakByUser returns the user's skills scored under the threshold,
// weakest first.
func (r *SkillRepository) FindWeakByUser(userID uint, threshold float64) ([]model.SkillMastery, error) {
	var skills []model.SkillMastery
	err := r.DB.Where("user_id = ? AND mastery_score < ?", userID, threshold).
		Order("mastery_score ASC").
		Find(&skills).Error
	return skills, err
}
