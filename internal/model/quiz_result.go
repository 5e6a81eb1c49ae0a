package model

import "time"

// QuizResult is an append-only per-attempt record.
type QuizResult struct {
	BaseModel
	UserID           uint      `gorm:"index;not null" json:"userId"`
	QuizType         string    `gorm:"size:30;not null" json:"quizType"` // Grammar, Vocabulary, Listening, Speaking, Cultural
	Score            float64   `gorm:"type:decimal(5,2);not null" json:"score"`
	TotalQuestions   int       `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers   int       `gorm:"not null" json:"correctAnswers"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	CompletedAt      time.Time `gorm:"autoCreateTime" json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
