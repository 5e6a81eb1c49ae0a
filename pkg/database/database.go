package database

import (
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.UserProgress{},
		&model.SkillMastery{},
		&model.QuizResult{},
		&model.SpeakingSession{},
		&model.Lesson{},
		&model.UserLessonProgress{},
		&model.Scenario{},
		&model.UserScenarioPractice{},
		&model.AssessmentResult{},
		&model.Certification{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedFixtures(db)

	return db, nil
}

// seedFixtures inserts the static curriculum content when the tables
// are empty. Lessons and scenarios are reference data, never mutated at
// runtime.
func seedFixtures(db *gorm.DB) {
	var lessonCount int64
	db.Model(&model.Lesson{}).Count(&lessonCount)
	if lessonCount == 0 {
		defaultLessons := []model.Lesson{
			{Module: 1, Week: 1, Day: 1, LessonTitle: "Greetings and Introductions", LessonType: "Vocabulary", Duration: 45,
				LessonContent: "# Greetings\n\nProfessional openings for inbound calls: \"Thank you for calling, my name is..., how may I help you today?\""},
			{Module: 1, Week: 1, Day: 2, LessonTitle: "Present Simple for Procedures", LessonType: "Grammar", Duration: 45,
				LessonContent: "# Present Simple\n\nUse the present simple to describe standard procedures: \"Our system sends a confirmation email within minutes.\""},
			{Module: 1, Week: 1, Day: 3, LessonTitle: "Active Listening Signals", LessonType: "Listening", Duration: 30,
				LessonContent: "# Active Listening\n\nBack-channel phrases: \"I see\", \"Absolutely\", \"I understand how frustrating that must be.\""},
			{Module: 2, Week: 1, Day: 1, LessonTitle: "Empathy Statements", LessonType: "Cultural", Duration: 45,
				LessonContent: "# Empathy\n\nAmerican business English favors explicit empathy before solutions: acknowledge, apologize, act."},
			{Module: 2, Week: 2, Day: 1, LessonTitle: "De-escalation Techniques", LessonType: "Speaking", Duration: 60,
				LessonContent: "# De-escalation\n\nLower your pace, avoid conditional blame (\"if you had...\"), offer concrete next steps."},
			{Module: 3, Week: 1, Day: 1, LessonTitle: "Past Perfect in Incident Reports", LessonType: "Grammar", Duration: 45,
				LessonContent: "# Past Perfect\n\n\"By the time the technician arrived, the outage had already been resolved.\""},
		}
		for _, l := range defaultLessons {
			db.Create(&l)
		}
	}

	var scenarioCount int64
	db.Model(&model.Scenario{}).Count(&scenarioCount)
	if scenarioCount == 0 {
		defaultScenarios := []model.Scenario{
			{
				ScenarioName:        "BasicGreeting",
				ScenarioDescription: "A customer calls to ask about their account balance. Open the call professionally and verify their identity.",
				Difficulty:          "Beginner",
				CustomerPersona:     model.CustomerPersona{Name: "Sarah Mitchell", Mood: "neutral", Accent: "American Midwest"},
				ExpectedResponses: []string{
					"Thank you for calling, my name is ..., how may I help you today?",
					"I'd be happy to help you with that. May I have your account number, please?",
				},
				CulturalContext: "American callers expect a warm but efficient greeting within the first few seconds.",
			},
			{
				ScenarioName:        "ComplaintHandling",
				ScenarioDescription: "An upset customer was double-charged for their subscription and wants an immediate refund.",
				Difficulty:          "Intermediate",
				CustomerPersona:     model.CustomerPersona{Name: "David Reyes", Mood: "frustrated", Accent: "East Coast", Issue: "double charge"},
				ExpectedResponses: []string{
					"I completely understand your frustration, and I apologize for the inconvenience.",
					"Let me look into this right away and make sure we get that refund processed for you.",
				},
				CulturalContext: "Acknowledge the emotion explicitly before moving to the fix; skipping empathy reads as dismissive.",
			},
			{
				ScenarioName:        "TechnicalSupport",
				ScenarioDescription: "A non-technical customer cannot connect their router after a service upgrade.",
				Difficulty:          "Advanced",
				CustomerPersona:     model.CustomerPersona{Name: "Margaret Olsen", Mood: "confused", Accent: "Southern US", Issue: "router setup"},
				ExpectedResponses: []string{
					"No problem at all, we'll take this one step at a time.",
					"Could you tell me what lights you see on the front of the router right now?",
				},
				CulturalContext: "Avoid jargon; confirm each step was completed before moving on.",
			},
		}
		for _, s := range defaultScenarios {
			db.Create(&s)
		}
	}
}
