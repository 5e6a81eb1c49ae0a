package service

import (
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/util"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// AssessmentService handles the final certification assessment and the
// certificate that a passing learner earns.
type AssessmentService struct {
	assessmentRepo    *repository.AssessmentRepository
	certificationRepo *repository.CertificationRepository
	progressRepo      *repository.ProgressRepository
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	certificationRepo *repository.CertificationRepository,
	progressRepo *repository.ProgressRepository,
) *AssessmentService {
	return &AssessmentService{
		assessmentRepo:    assessmentRepo,
		certificationRepo: certificationRepo,
		progressRepo:      progressRepo,
	}
}

// AssessmentStatus reports eligibility for the final assessment and
// any previous attempts.
type AssessmentStatus struct {
	CanTakeAssessment bool                     `json:"canTakeAssessment"`
	CurrentModule     int                      `json:"currentModule"`
	CurrentWeek       int                      `json:"currentWeek"`
	PreviousResults   []model.AssessmentResult `json:"previousResults"`
}

// Status reports whether the user has reached the final assessment.
// Eligibility is strictly module 3, week 4; a user without initialized
// progress is simply not eligible.
func (s *AssessmentService) Status(userID uint) (*AssessmentStatus, error) {
	status := &AssessmentStatus{PreviousResults: []model.AssessmentResult{}}

	progress, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		status.CurrentModule = progress.CurrentModule
		status.CurrentWeek = progress.CurrentWeek
		status.CanTakeAssessment = progress.CurrentModule == 3 && progress.CurrentWeek == 4
	}

	results, err := s.assessmentRepo.FindResultsByUser(userID)
	if err != nil {
		return nil, err
	}
	status.PreviousResults = results

	return status, nil
}

// SubmitResult records one assessment part. Passed is derived here
// from the submitted scores, never taken from the client.
func (s *AssessmentService) SubmitResult(userID uint, assessmentType string, score, passingScore float64, feedback string) (*model.AssessmentResult, error) {
	result := &model.AssessmentResult{
		UserID:         userID,
		AssessmentType: assessmentType,
		Score:          score,
		PassingScore:   passingScore,
		Passed:         score >= passingScore,
		Feedback:       feedback,
	}
	if err := s.assessmentRepo.CreateResult(result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetCertification returns the user's certification, or
// ErrCertificationNotFound.
func (s *AssessmentService) GetCertification(userID uint) (*model.Certification, error) {
	cert, err := s.certificationRepo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificationNotFound
		}
		return nil, err
	}
	return cert, nil
}

// IssueCertification creates the user's certificate, valid for two
// years. At most one certification per user: a pre-check catches the
// common case and the unique index on user_id closes the race, with
// the duplicate-key insert reported the same way.
func (s *AssessmentService) IssueCertification(userID uint, level string) (*model.Certification, error) {
	if level == "" {
		level = "B2"
	}

	if _, err := s.certificationRepo.FindByUser(userID); err == nil {
		return nil, util.ErrCertificationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	expiry := time.Now().AddDate(2, 0, 0)
	cert := &model.Certification{
		UserID:             userID,
		CertificationLevel: level,
		ExpiryDate:         &expiry,
		CertificateURL:     fmt.Sprintf("/certificates/%d-%s.pdf", userID, level),
	}

	if err := s.certificationRepo.Create(cert); err != nil {
		if isDuplicateKeyError(err) {
			return nil, util.ErrCertificationExists
		}
		return nil, err
	}
	return cert, nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
