package repository

import (
	"callcenter_english_backend/internal/model"

	"gorm.io/gorm"
)

type ScenarioRepository struct {
	DB *gorm.DB
}

func NewScenarioRepository(db *gorm.DB) *ScenarioRepository {
	return &ScenarioRepository{DB: db}
}

// List returns scenarios, optionally filtered by difficulty.
func (r *ScenarioRepository) List(difficulty string) ([]model.Scenario, error) {
	query := r.DB.Model(&model.Scenario{})
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var scenarios []model.Scenario
	err := query.Find(&scenarios).Error
	return scenarios, err
}

func (r *ScenarioRepository) FindByName(name string) (*model.Scenario, error) {
	var scenario model.Scenario
	err := r.DB.Where("scenario_name = ?", name).First(&scenario).Error
	return &scenario, err
}

func (r *ScenarioRepository) FindByID(id uint) (*model.Scenario, error) {
	var scenario model.Scenario
	err := r.DB.First(&scenario, id).Error
	return &scenario, err
}

func (r *ScenarioRepository) CountAttempts(userID, scenarioID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserScenarioPractice{}).
		Where("user_id = ? AND scenario_id = ?", userID, scenarioID).
		Count(&count).Error
	return count, err
}

func (r *ScenarioRepository) CreateAttempt(attempt *model.UserScenarioPractice) error {
	return r.DB.Create(attempt).Error
}
