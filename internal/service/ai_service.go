package service

import (
	"bytes"
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// AIService is the chat-completion adapter behind speaking analysis,
// the tutor, quiz generation, scenario evaluation, and study
// recommendations. The provider returns free text that is expected to
// contain an embedded JSON object; parsing is best-effort and the
// caller substitutes a static default when the call or the parse
// fails.
type AIService struct {
	mu     sync.RWMutex
	config config.OpenAIConfig
	client *http.Client
}

func NewAIService(cfg config.OpenAIConfig) *AIService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// SetConfig swaps provider settings at runtime (config hot-reload).
func (s *AIService) SetConfig(cfg config.OpenAIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *AIService) cfg() config.OpenAIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends one completion request and returns the raw content of the
// first choice. One attempt, no retry.
func (s *AIService) Chat(systemPrompt, userPrompt string) (string, error) {
	cfg := s.cfg()

	messages := []AIChatMessage{}
	if systemPrompt != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: userPrompt})

	reqBody := ChatCompletionRequest{
		Model:       cfg.ChatModel,
		Messages:    messages,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		monitoring.ProviderCallCounter.WithLabelValues("chat", "error").Inc()
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		monitoring.ProviderCallCounter.WithLabelValues("chat", "error").Inc()
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		monitoring.ProviderCallCounter.WithLabelValues("chat", "error").Inc()
		return "", err
	}

	if len(result.Choices) == 0 {
		monitoring.ProviderCallCounter.WithLabelValues("chat", "error").Inc()
		return "", fmt.Errorf("AI returned no choices")
	}

	monitoring.ProviderCallCounter.WithLabelValues("chat", "ok").Inc()
	return result.Choices[0].Message.Content, nil
}

var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSONObject pulls the first {...} block out of free text.
func ExtractJSONObject(content string, v interface{}) error {
	match := jsonObjectRe.FindString(content)
	if match == "" {
		return fmt.Errorf("could not parse JSON from response")
	}
	return json.Unmarshal([]byte(match), v)
}

// ExtractJSONArray pulls the first [...] block out of free text.
func ExtractJSONArray(content string, v interface{}) error {
	match := jsonArrayRe.FindString(content)
	if match == "" {
		return fmt.Errorf("could not parse JSON array from response")
	}
	return json.Unmarshal([]byte(match), v)
}

// ClampScore bounds a model-produced score to [0,100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// AnalyzeSpeaking evaluates a transcript against a scenario. Sub-scores
// are clamped here; the overall score is the arithmetic mean of the
// four clamped sub-scores.
func (s *AIService) AnalyzeSpeaking(transcript, scenarioType string, expectedResponses []string) (*model.SpeakingFeedback, error) {
	prompt := fmt.Sprintf(`You are an English language expert evaluating a call center agent's speaking performance.

Scenario: %s
Expected Response Examples: %s
User's Actual Response: "%s"

Please evaluate the user's response on the following criteria (0-100 scale):
1. Fluency: How naturally and smoothly they speak
2. Pronunciation: Clarity and correctness of pronunciation
3. Grammar: Correctness of grammar and sentence structure
4. Cultural Nuance: Appropriateness for the cultural context (American business English)

Provide your response in this exact JSON format:
{
  "fluencyScore": <number>,
  "pronunciationScore": <number>,
  "grammarScore": <number>,
  "culturalNuanceScore": <number>,
  "feedback": "<detailed feedback about their performance>",
  "suggestions": ["<suggestion 1>", "<suggestion 2>", "<suggestion 3>"]
}`, scenarioType, strings.Join(expectedResponses, "; "), transcript)

	content, err := s.Chat("", prompt)
	if err != nil {
		return nil, err
	}

	var parsed model.SpeakingFeedback
	if err := ExtractJSONObject(content, &parsed); err != nil {
		return nil, err
	}

	parsed.FluencyScore = ClampScore(parsed.FluencyScore)
	parsed.PronunciationScore = ClampScore(parsed.PronunciationScore)
	parsed.GrammarScore = ClampScore(parsed.GrammarScore)
	parsed.CulturalNuanceScore = ClampScore(parsed.CulturalNuanceScore)
	parsed.OverallScore = (parsed.FluencyScore +
		parsed.PronunciationScore +
		parsed.GrammarScore +
		parsed.CulturalNuanceScore) / 4

	return &parsed, nil
}

// TutorAnswer answers a learner question. When the model replies with
// plain prose instead of JSON, the prose becomes the answer as-is.
func (s *AIService) TutorAnswer(question, context string) (*model.TutorResponse, error) {
	systemPrompt := "You are an expert English language tutor specializing in business English and call center communication.\n" +
		"Your role is to help learners improve their English for call center work.\n" +
		"Provide clear, practical explanations with examples relevant to call center scenarios."
	if context != "" {
		systemPrompt += "\nContext: " + context
	}

	content, err := s.Chat(systemPrompt, question)
	if err != nil {
		return nil, err
	}

	var parsed model.TutorResponse
	if err := ExtractJSONObject(content, &parsed); err == nil {
		if parsed.Answer == "" {
			parsed.Answer = content
		}
		return &parsed, nil
	}

	return &model.TutorResponse{Answer: content}, nil
}

// GenerateQuizQuestions builds adaptive multiple-choice questions.
func (s *AIService) GenerateQuizQuestions(category, difficulty string, count int) ([]model.QuizQuestion, error) {
	if count <= 0 {
		count = 5
	}

	prompt := fmt.Sprintf(`Generate %d multiple choice quiz questions for English learners at %s level.
Category: %s
Context: Call center communication and business English

For each question, provide:
- question: The quiz question
- options: Array of 4 answer options
- correctAnswer: Index of correct answer (0-3)
- explanation: Why this is correct

Format as JSON array of objects.`, count, difficulty, category)

	content, err := s.Chat("", prompt)
	if err != nil {
		return nil, err
	}

	var questions []model.QuizQuestion
	if err := ExtractJSONArray(content, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// EvaluateScenario scores a free-text response against a role-play
// scenario.
func (s *AIService) EvaluateScenario(userResponse, description string, persona model.CustomerPersona, expectedResponses []string) (*model.ScenarioEvaluation, error) {
	personaJSON, _ := json.Marshal(persona)

	prompt := fmt.Sprintf(`You are evaluating a call center agent's response to a customer scenario.

Scenario: %s
Customer Profile: %s
Expected Response Examples: %s
User's Response: "%s"

Evaluate the response and provide:
1. A score from 0-100
2. Specific feedback
3. What they did well (strengths)
4. What could be improved

Respond in this JSON format:
{
  "score": <number>,
  "feedback": "<overall feedback>",
  "strengths": ["<strength 1>", "<strength 2>"],
  "improvements": ["<improvement 1>", "<improvement 2>"]
}`, description, string(personaJSON), strings.Join(expectedResponses, "; "), userResponse)

	content, err := s.Chat("", prompt)
	if err != nil {
		return nil, err
	}

	var parsed model.ScenarioEvaluation
	if err := ExtractJSONObject(content, &parsed); err != nil {
		return nil, err
	}

	parsed.Score = ClampScore(parsed.Score)
	return &parsed, nil
}

// GenerateRecommendations turns progress plus weak skills into a study
// plan.
func (s *AIService) GenerateRecommendations(progress *model.UserProgress, weakSkills []string) (*model.LearningRecommendations, error) {
	prompt := fmt.Sprintf(`Based on a learner's progress in an English course for call center agents:

Current Progress:
- Module: %d/3
- Week: %d/4
- Mastery Score: %.2f%%
- Hours Completed: %.2f

Weak Skills: %s

Provide personalized recommendations:
1. Specific areas to focus on
2. Recommended practice activities
3. Estimated weeks to reach B2 level

Respond in JSON format:
{
  "recommendations": ["<recommendation 1>", "<recommendation 2>", "<recommendation 3>"],
  "focusAreas": ["<area 1>", "<area 2>"],
  "estimatedTimeToB2": <number of weeks>
}`, progress.CurrentModule, progress.CurrentWeek, progress.OverallMasteryScore, progress.TotalHoursCompleted,
		strings.Join(weakSkills, ", "))

	content, err := s.Chat("", prompt)
	if err != nil {
		return nil, err
	}

	var parsed model.LearningRecommendations
	if err := ExtractJSONObject(content, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
