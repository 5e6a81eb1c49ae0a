package model

import "time"

// SpeakingSession is one recorded-and-scored attempt at a scenario.
// A row starts with zero duration and nil scores; submission fills them
// in. Resubmitting the same session overwrites the previous values.
type SpeakingSession struct {
	BaseModel
	UserID             uint       `gorm:"index;not null" json:"userId"`
	ScenarioType       string     `gorm:"size:50;not null" json:"scenarioType"`
	Duration           int        `gorm:"not null;default:0" json:"duration"` // seconds
	FluencyScore       *float64   `gorm:"type:decimal(5,2)" json:"fluencyScore"`
	PronunciationScore *float64   `gorm:"type:decimal(5,2)" json:"pronunciationScore"`
	GrammarScore       *float64   `gorm:"type:decimal(5,2)" json:"grammarScore"`
	CulturalNuanceScore *float64  `gorm:"type:decimal(5,2)" json:"culturalNuanceScore"`
	OverallScore       *float64   `gorm:"type:decimal(5,2)" json:"overallScore"`
	RecordingURL       string     `gorm:"size:255" json:"recordingUrl"`
	AITranscript       string     `gorm:"type:text" json:"aiTranscript"`
	AIFeedback         string     `gorm:"type:text" json:"aiFeedback"`
	CompletedAt        *time.Time `json:"completedAt"`
}

func (SpeakingSession) TableName() string {
	return "speaking_sessions"
}
