package service

import (
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"fmt"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
}

func NewQuizService(quizRepo *repository.QuizRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo}
}

func (s *QuizService) Results(userID uint) ([]model.QuizResult, error) {
	return s.QuizRepo.FindByUser(userID)
}

// Submit records one quiz attempt. The score is exactly
// correct/total*100; the caller validates total >= 1.
func (s *QuizService) Submit(userID uint, quizType string, totalQuestions, correctAnswers, timeSpentSeconds int) (*model.QuizResult, error) {
	score := float64(correctAnswers) / float64(totalQuestions) * 100

	result := &model.QuizResult{
		UserID:           userID,
		QuizType:         quizType,
		Score:            score,
		TotalQuestions:   totalQuestions,
		CorrectAnswers:   correctAnswers,
		TimeSpentSeconds: timeSpentSeconds,
	}

	if err := s.QuizRepo.Create(result); err != nil {
		return nil, err
	}
	return result, nil
}

type QuizStats struct {
	TotalQuizzes  int            `json:"totalQuizzes"`
	AverageScore  string         `json:"averageScore"`
	QuizzesByType map[string]int `json:"quizzesByType"`
}

func (s *QuizService) Stats(userID uint) (*QuizStats, error) {
	results, err := s.QuizRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	var sum float64
	byType := make(map[string]int)
	for _, r := range results {
		sum += r.Score
		byType[r.QuizType]++
	}

	average := 0.0
	if len(results) > 0 {
		average = sum / float64(len(results))
	}

	return &QuizStats{
		TotalQuizzes:  len(results),
		AverageScore:  fmt.Sprintf("%.2f", average),
		QuizzesByType: byType,
	}, nil
}
