package model

// Lesson is static curriculum content seeded from fixtures.
type Lesson struct {
	BaseModel
	Module        int    `gorm:"not null;index:idx_lessons_module_week" json:"module"` // 1..3
	Week          int    `gorm:"not null;index:idx_lessons_module_week" json:"week"`   // 1..4
	Day           int    `gorm:"not null" json:"day"`                                  // 1..5 (Mon-Fri)
	LessonTitle   string `gorm:"size:255;not null" json:"lessonTitle"`
	LessonContent string `gorm:"type:text;not null" json:"lessonContent"`
	LessonType    string `gorm:"size:30;not null" json:"lessonType"` // Grammar, Vocabulary, Listening, Speaking, Cultural
	Duration      int    `gorm:"not null" json:"duration"`           // minutes
}

func (Lesson) TableName() string {
	return "lessons"
}
