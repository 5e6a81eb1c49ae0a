package model

import "time"

// UserLessonProgress is a per-user-per-lesson join record, upserted on
// completion.
type UserLessonProgress struct {
	BaseModel
	UserID           uint       `gorm:"index:idx_user_lesson,unique;not null" json:"userId"`
	LessonID         uint       `gorm:"index:idx_user_lesson,unique;not null" json:"lessonId"`
	Completed        bool       `gorm:"default:false" json:"completed"`
	CompletedAt      *time.Time `json:"completedAt"`
	TimeSpentSeconds int        `gorm:"default:0" json:"timeSpentSeconds"`
	Score            *float64   `gorm:"type:decimal(5,2)" json:"score"`
}

func (UserLessonProgress) TableName() string {
	return "user_lesson_progress"
}
