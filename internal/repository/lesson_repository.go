package repository

import (
	"callcenter_english_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

// List returns lessons filtered by module and/or week. Zero means no
// filter.
func (r *LessonRepository) List(module, week int) ([]model.Lesson, error) {
	query := r.DB.Model(&model.Lesson{})
	if module > 0 {
		query = query.Where("module = ?", module)
	}
	if week > 0 {
		query = query.Where("week = ?", week)
	}

	var lessons []model.Lesson
	err := query.Order("module, week, day").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindProgress(userID, lessonID uint) (*model.UserLessonProgress, error) {
	var progress model.UserLessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	return &progress, err
}

func (r *LessonRepository) CreateProgress(progress *model.UserLessonProgress) error {
	return r.DB.Create(progress).Error
}

func (r *LessonRepository) UpdateProgress(progress *model.UserLessonProgress) error {
	return r.DB.Save(progress).Error
}
