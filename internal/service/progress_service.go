package service

import (
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// weakSkillThreshold marks a skill as needing work for the
// recommendation prompt.
const weakSkillThreshold = 70

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	SkillRepo    *repository.SkillRepository
	AI           *AIService
}

func NewProgressService(progressRepo *repository.ProgressRepository, skillRepo *repository.SkillRepository, ai *AIService) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		SkillRepo:    skillRepo,
		AI:           ai,
	}
}

func (s *ProgressService) GetProgress(userID uint) (*model.UserProgress, error) {
	progress, err := s.ProgressRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProgressNotFound
	}
	return progress, err
}

// ProgressUpdate carries the optional fields of a progress update;
// nil pointers keep the stored value.
type ProgressUpdate struct {
	CurrentModule       *int
	CurrentWeek         *int
	OverallMasteryScore *float64
	TotalHoursCompleted *float64
}

func (s *ProgressService) UpdateProgress(userID uint, update ProgressUpdate) (*model.UserProgress, error) {
	progress, err := s.ProgressRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProgressNotFound
	} else if err != nil {
		return nil, err
	}

	if update.CurrentModule != nil {
		progress.CurrentModule = *update.CurrentModule
	}
	if update.CurrentWeek != nil {
		progress.CurrentWeek = *update.CurrentWeek
	}
	if update.OverallMasteryScore != nil {
		progress.OverallMasteryScore = *update.OverallMasteryScore
	}
	if update.TotalHoursCompleted != nil {
		progress.TotalHoursCompleted = *update.TotalHoursCompleted
	}

	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) GetSkills(userID uint) ([]model.SkillMastery, error) {
	return s.SkillRepo.FindByUser(userID)
}

// UpsertSkill records a practice event. The mastery score is replaced
// by the submitted value, not averaged, and the practice count grows by
// one either way.
func (s *ProgressService) UpsertSkill(userID uint, skillName string, category model.SkillCategory, masteryScore float64) (*model.SkillMastery, error) {
	now := time.Now()

	existing, err := s.SkillRepo.FindByUserAndName(userID, skillName)
	if err == nil {
		existing.MasteryScore = masteryScore
		existing.PracticeCount++
		existing.LastPracticedAt = &now
		if err := s.SkillRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	skill := &model.SkillMastery{
		UserID:          userID,
		SkillName:       skillName,
		SkillCategory:   category,
		MasteryScore:    masteryScore,
		PracticeCount:   1,
		LastPracticedAt: &now,
	}
	if err := s.SkillRepo.Create(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// GetRecommendations asks the feedback adapter for personalized study
// advice based on current progress and weak skills. Provider failures
// degrade to the static default recommendations.
func (s *ProgressService) GetRecommendations(userID uint) (*model.LearningRecommendations, error) {
	progress, err := s.GetProgress(userID)
	if err != nil {
		return nil, err
	}

	weak, err := s.SkillRepo.FindWeakByUser(userID, weakSkillThreshold)
	if err != nil {
		return nil, err
	}

	weakNames := make([]string, 0, len(weak))
	for _, skill := range weak {
		weakNames = append(weakNames, skill.SkillName)
	}

	recs, err := s.AI.GenerateRecommendations(progress, weakNames)
	if err != nil {
		fallback := model.DefaultLearningRecommendations()
		return &fallback, nil
	}
	return recs, nil
}
