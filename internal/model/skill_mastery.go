package model

import "time"

type SkillCategory string

const (
	SkillGrammar    SkillCategory = "Grammar"
	SkillCallCenter SkillCategory = "CallCenter"
	SkillCultural   SkillCategory = "Cultural"
)

// SkillMastery is upserted on every practice event. The score holds the
// latest submitted value, not a running average.
type SkillMastery struct {
	BaseModel
	UserID          uint          `gorm:"index;not null" json:"userId"`
	SkillName       string        `gorm:"size:100;not null" json:"skillName"`
	SkillCategory   SkillCategory `gorm:"size:30;not null" json:"skillCategory"`
	MasteryScore    float64       `gorm:"type:decimal(5,2);default:0" json:"masteryScore"` // 0-100
	PracticeCount   int           `gorm:"default:0" json:"practiceCount"`
	LastPracticedAt *time.Time    `json:"lastPracticedAt"`
}

func (SkillMastery) TableName() string {
	return "skill_mastery"
}
