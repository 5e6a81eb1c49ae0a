package model

// SpeakingFeedback is what the feedback adapter returns for a speaking
// session. When the provider call or the JSON parse fails, callers fall
// back to DefaultSpeakingFeedback so the response shape never changes.
type SpeakingFeedback struct {
	FluencyScore        float64  `json:"fluencyScore"`
	PronunciationScore  float64  `json:"pronunciationScore"`
	GrammarScore        float64  `json:"grammarScore"`
	CulturalNuanceScore float64  `json:"culturalNuanceScore"`
	OverallScore        float64  `json:"overallScore"`
	Feedback            string   `json:"feedback"`
	Suggestions         []string `json:"suggestions"`
}

// DefaultSpeakingFeedback is the fixed fallback payload used when the
// analysis call fails. Callers cannot distinguish it from a genuine
// analysis by shape alone; that masking is deliberate.
func DefaultSpeakingFeedback() SpeakingFeedback {
	return SpeakingFeedback{
		FluencyScore:        75,
		PronunciationScore:  78,
		GrammarScore:        72,
		CulturalNuanceScore: 80,
		OverallScore:        76.25,
		Feedback:            "Good effort! Your pronunciation is clear and your grammar is mostly correct.",
		Suggestions: []string{
			"Try to speak more naturally with better intonation",
			"Pay attention to stress patterns in words",
			"Use more varied vocabulary",
		},
	}
}

type TutorResponse struct {
	Answer        string   `json:"answer"`
	Explanation   string   `json:"explanation"`
	Examples      []string `json:"examples"`
	RelatedTopics []string `json:"relatedTopics"`
}

func DefaultTutorResponse() TutorResponse {
	return TutorResponse{
		Answer:        "This is a great question! Let me explain...",
		Explanation:   "Here is a detailed explanation of the concept.",
		Examples:      []string{"Example 1: ...", "Example 2: ..."},
		RelatedTopics: []string{"Related Topic 1", "Related Topic 2"},
	}
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index 0-3
	Explanation   string   `json:"explanation"`
}

func DefaultQuizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{
			Question:      "What is the correct form of the present simple tense?",
			Options:       []string{"He go to school", "He goes to school", "He going to school", "He gone to school"},
			CorrectAnswer: 1,
			Explanation:   "In third person singular, we add -s to the verb.",
		},
		{
			Question:      "Which word means the same as \"customer\"?",
			Options:       []string{"Client", "Employee", "Manager", "Supervisor"},
			CorrectAnswer: 0,
			Explanation:   "A client is another word for a customer of a service.",
		},
	}
}

type ScenarioEvaluation struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

func DefaultScenarioEvaluation() ScenarioEvaluation {
	return ScenarioEvaluation{
		Score:        80,
		Feedback:     "Good response! You handled the scenario well.",
		Strengths:    []string{"Clear communication", "Professional tone"},
		Improvements: []string{"Could be more concise"},
	}
}

type LearningRecommendations struct {
	Recommendations   []string `json:"recommendations"`
	FocusAreas        []string `json:"focusAreas"`
	EstimatedTimeToB2 int      `json:"estimatedTimeToB2"` // weeks
}

func DefaultLearningRecommendations() LearningRecommendations {
	return LearningRecommendations{
		Recommendations: []string{
			"Review this week's grammar lessons before moving on",
			"Record yourself handling one scenario per day",
			"Practice de-escalation phrases with the AI tutor",
		},
		FocusAreas:        []string{"Fluency", "Cultural nuance"},
		EstimatedTimeToB2: 8,
	}
}
