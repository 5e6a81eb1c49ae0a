package service

import (
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
}

func NewUserService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UpdateProfile applies a partial update: empty fields keep their
// stored values.
func (s *UserService) UpdateProfile(userID uint, firstName, lastName string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// InitializeProgress creates the one-per-user progress row. The course
// is planned at three months, so the expected completion date is
// 90 days out.
func (s *UserService) InitializeProgress(userID uint) (*model.UserProgress, error) {
	_, err := s.ProgressRepo.FindByUserID(userID)
	if err == nil {
		return nil, util.ErrProgressInitialized
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	expected := time.Now().AddDate(0, 0, 90)
	progress := &model.UserProgress{
		UserID:                 userID,
		CurrentModule:          1,
		CurrentWeek:            1,
		OverallMasteryScore:    0,
		TotalHoursCompleted:    0,
		ExpectedCompletionDate: &expected,
	}

	if err := s.ProgressRepo.Create(progress); err != nil {
		return nil, err
	}
	return progress, nil
}
