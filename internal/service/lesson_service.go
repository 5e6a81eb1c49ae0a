package service

import (
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository) *LessonService {
	return &LessonService{LessonRepo: lessonRepo}
}

func (s *LessonService) List(module, week int) ([]model.Lesson, error) {
	return s.LessonRepo.List(module, week)
}

func (s *LessonService) Get(lessonID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

func (s *LessonService) GetProgress(userID, lessonID uint) (*model.UserLessonProgress, error) {
	progress, err := s.LessonRepo.FindProgress(userID, lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProgressNotFound
	}
	return progress, err
}

// Complete marks the lesson done, upserting the per-user record. Zero
// timeSpent or a nil score keeps whatever was stored on a prior
// attempt.
func (s *LessonService) Complete(userID, lessonID uint, timeSpentSeconds int, score *float64) (*model.UserLessonProgress, error) {
	now := time.Now()

	existing, err := s.LessonRepo.FindProgress(userID, lessonID)
	if err == nil {
		existing.Completed = true
		existing.CompletedAt = &now
		if timeSpentSeconds > 0 {
			existing.TimeSpentSeconds = timeSpentSeconds
		}
		if score != nil {
			existing.Score = score
		}
		if err := s.LessonRepo.UpdateProgress(existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress := &model.UserLessonProgress{
		UserID:           userID,
		LessonID:         lessonID,
		Completed:        true,
		CompletedAt:      &now,
		TimeSpentSeconds: timeSpentSeconds,
		Score:            score,
	}
	if err := s.LessonRepo.CreateProgress(progress); err != nil {
		return nil, err
	}
	return progress, nil
}
