package repository

import (
	"callcenter_english_backend/internal/model"

	"gorm.io/gorm"
)

type SpeakingRepository struct {
	DB *gorm.DB
}

func NewSpeakingRepository(db *gorm.DB) *SpeakingRepository {
	return &SpeakingRepository{DB: db}
}

func (r *SpeakingRepository) Create(session *model.SpeakingSession) error {
	return r.DB.Create(session).Error
}

func (r *SpeakingRepository) FindByID(id uint) (*model.SpeakingSession, error) {
	var session model.SpeakingSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

// Update overwrites the stored scores and transcript. Resubmitting a
// session replaces whatever was there, by design.
func (r *SpeakingRepository) Update(session *model.SpeakingSession) error {
	return r.DB.Save(session).Error
}

func (r *SpeakingRepository) FindByUser(userID uint) ([]model.SpeakingSession, error) {
	var sessions []model.SpeakingSession
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}
