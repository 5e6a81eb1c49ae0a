package model

import "time"

// UserScenarioPractice records one attempt at a scenario together with
// the evaluation the feedback adapter produced for it.
type UserScenarioPractice struct {
	BaseModel
	UserID        uint               `gorm:"index;not null" json:"userId"`
	ScenarioID    uint               `gorm:"index;not null" json:"scenarioId"`
	AttemptNumber int                `gorm:"default:1" json:"attemptNumber"`
	UserResponse  string             `gorm:"type:text" json:"userResponse"`
	AIEvaluation  ScenarioEvaluation `gorm:"type:json;serializer:json" json:"aiEvaluation"`
	CompletedAt   time.Time          `gorm:"autoCreateTime" json:"completedAt"`
}

func (UserScenarioPractice) TableName() string {
	return "user_scenario_practice"
}
