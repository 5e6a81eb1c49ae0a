package model

// CustomerPersona describes the synthetic customer a scenario puts on
// the line.
type CustomerPersona struct {
	Name   string `json:"name"`
	Mood   string `json:"mood"`
	Accent string `json:"accent"`
	Issue  string `json:"issue,omitempty"`
}

// Scenario is a scripted role-play exercise seeded from fixtures.
type Scenario struct {
	BaseModel
	ScenarioName        string          `gorm:"size:100;not null" json:"scenarioName"`
	ScenarioDescription string          `gorm:"type:text" json:"scenarioDescription"`
	Difficulty          string          `gorm:"size:20;not null;index" json:"difficulty"` // Beginner, Intermediate, Advanced
	CustomerPersona     CustomerPersona `gorm:"type:json;serializer:json" json:"customerPersona"`
	ExpectedResponses   []string        `gorm:"type:json;serializer:json" json:"expectedResponses"`
	CulturalContext     string          `gorm:"type:text" json:"culturalContext"`
}

func (Scenario) TableName() string {
	return "scenarios"
}
