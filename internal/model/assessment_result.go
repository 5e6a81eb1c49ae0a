package model

import "time"

// AssessmentResult is an append-only per-attempt record of the final
// certification assessment parts.
type AssessmentResult struct {
	BaseModel
	UserID         uint      `gorm:"index;not null" json:"userId"`
	AssessmentType string    `gorm:"size:30;not null" json:"assessmentType"` // Written, Listening, Speaking, Cultural
	Score          float64   `gorm:"type:decimal(5,2);not null" json:"score"`
	PassingScore   float64   `gorm:"type:decimal(5,2);not null" json:"passingScore"`
	Passed         bool      `gorm:"not null" json:"passed"`
	Feedback       string    `gorm:"type:text" json:"feedback"`
	CompletedAt    time.Time `gorm:"autoCreateTime" json:"completedAt"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}
