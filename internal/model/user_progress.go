package model

import "time"

// UserProgress tracks a user's position in the three-module curriculum.
// One row per user, created by the initialize-progress endpoint.
type UserProgress struct {
	BaseModel
	UserID                 uint       `gorm:"uniqueIndex;not null" json:"userId"`
	CurrentModule          int        `gorm:"default:1" json:"currentModule"` // 1..3
	CurrentWeek            int        `gorm:"default:1" json:"currentWeek"`   // 1..4 per module
	OverallMasteryScore    float64    `gorm:"type:decimal(5,2);default:0" json:"overallMasteryScore"`
	TotalHoursCompleted    float64    `gorm:"type:decimal(8,2);default:0" json:"totalHoursCompleted"`
	StartDate              time.Time  `gorm:"autoCreateTime" json:"startDate"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
