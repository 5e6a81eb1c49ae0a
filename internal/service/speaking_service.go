package service

import (
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/util"
	"callcenter_english_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SpeakingService runs the speaking-practice loop: open a session,
// accept a recording, transcribe it, score it, persist everything.
type SpeakingService struct {
	speakingRepo  *repository.SpeakingRepository
	scenarioRepo  *repository.ScenarioRepository
	ai            *AIService
	transcription *TranscriptionService
	storage       *StorageService
}

func NewSpeakingService(
	speakingRepo *repository.SpeakingRepository,
	scenarioRepo *repository.ScenarioRepository,
	ai *AIService,
	transcription *TranscriptionService,
	storage *StorageService,
) *SpeakingService {
	return &SpeakingService{
		speakingRepo:  speakingRepo,
		scenarioRepo:  scenarioRepo,
		ai:            ai,
		transcription: transcription,
		storage:       storage,
	}
}

// StartSession opens an empty session for the scenario type. Scores
// stay null until the recording is submitted.
func (s *SpeakingService) StartSession(userID uint, scenarioType string) (*model.SpeakingSession, error) {
	session := &model.SpeakingSession{
		UserID:       userID,
		ScenarioType: scenarioType,
	}
	if err := s.speakingRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmissionResult bundles what the client sees after a submission.
type SubmissionResult struct {
	Session    *model.SpeakingSession  `json:"session"`
	Transcript string                  `json:"transcript"`
	Feedback   *model.SpeakingFeedback `json:"feedback"`
}

// SubmitSession processes a submission for an open session. When
// audioPath is set the audio has already passed extension and size
// validation, and a transcription failure aborts the submission. When
// audioPath is empty the client-provided transcript is scored directly
// and no recording is stored. A feedback failure never aborts, the
// default feedback stands in so the learner always gets a result.
func (s *SpeakingService) SubmitSession(ctx context.Context, sessionID, userID uint, audioPath, transcript string, duration int) (*SubmissionResult, error) {
	session, err := s.speakingRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}

	if audioPath != "" {
		if duration <= 0 {
			if info, err := util.ProbeAudio(audioPath); err == nil {
				duration = int(info.Duration)
			} else {
				logger.Log.Warn("could not probe audio duration", zap.Error(err))
			}
		}

		transcript, err = s.transcription.Transcribe(audioPath)
		if err != nil {
			return nil, fmt.Errorf("transcription failed: %w", err)
		}
	}

	var expectedResponses []string
	if scenario, err := s.scenarioRepo.FindByName(session.ScenarioType); err == nil {
		expectedResponses = scenario.ExpectedResponses
	}

	feedback, err := s.ai.AnalyzeSpeaking(transcript, session.ScenarioType, expectedResponses)
	if err != nil {
		logger.Log.Warn("speaking analysis failed, using default feedback",
			zap.Uint("session_id", sessionID), zap.Error(err))
		fallback := model.DefaultSpeakingFeedback()
		feedback = &fallback
	}

	var recordingURL string
	if audioPath != "" {
		objectName := fmt.Sprintf("recordings/%d/%s", userID, util.UniqueFilename("recording.webm"))
		recordingURL, err = s.storage.UploadFile(ctx, objectName, audioPath, "audio/webm")
		if err != nil {
			logger.Log.Warn("failed to store recording", zap.Error(err))
		}
	}

	feedbackJSON, _ := json.Marshal(feedback)
	now := time.Now()

	session.Duration = duration
	session.FluencyScore = &feedback.FluencyScore
	session.PronunciationScore = &feedback.PronunciationScore
	session.GrammarScore = &feedback.GrammarScore
	session.CulturalNuanceScore = &feedback.CulturalNuanceScore
	session.OverallScore = &feedback.OverallScore
	if recordingURL != "" {
		session.RecordingURL = recordingURL
	}
	session.AITranscript = transcript
	session.AIFeedback = string(feedbackJSON)
	session.CompletedAt = &now

	if err := s.speakingRepo.Update(session); err != nil {
		return nil, err
	}

	return &SubmissionResult{
		Session:    session,
		Transcript: transcript,
		Feedback:   feedback,
	}, nil
}

// Sessions returns the user's sessions, newest first.
func (s *SpeakingService) Sessions(userID uint) ([]model.SpeakingSession, error) {
	return s.speakingRepo.FindByUser(userID)
}

// Scenarios lists practice scenarios, optionally filtered by
// difficulty.
func (s *SpeakingService) Scenarios(difficulty string) ([]model.Scenario, error) {
	return s.scenarioRepo.List(difficulty)
}

// Scenario fetches one scenario by id.
func (s *SpeakingService) Scenario(id uint) (*model.Scenario, error) {
	scenario, err := s.scenarioRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScenarioNotFound
		}
		return nil, err
	}
	return scenario, nil
}

// ScenarioAttemptResult is the outcome of one text attempt at a
// scenario.
type ScenarioAttemptResult struct {
	Evaluation    *model.ScenarioEvaluation `json:"evaluation"`
	AttemptNumber int                       `json:"attemptNumber"`
}

// AttemptScenario evaluates a typed response against a scenario. An
// evaluation failure falls back to the default evaluation rather than
// failing the attempt.
func (s *SpeakingService) AttemptScenario(userID, scenarioID uint, userResponse string) (*ScenarioAttemptResult, error) {
	scenario, err := s.scenarioRepo.FindByID(scenarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScenarioNotFound
		}
		return nil, err
	}

	evaluation, err := s.ai.EvaluateScenario(userResponse, scenario.ScenarioDescription, scenario.CustomerPersona, scenario.ExpectedResponses)
	if err != nil {
		logger.Log.Warn("scenario evaluation failed, using default evaluation",
			zap.Uint("scenario_id", scenarioID), zap.Error(err))
		fallback := model.DefaultScenarioEvaluation()
		evaluation = &fallback
	}

	count, err := s.scenarioRepo.CountAttempts(userID, scenarioID)
	if err != nil {
		return nil, err
	}
	attemptNumber := int(count) + 1

	attempt := &model.UserScenarioPractice{
		UserID:        userID,
		ScenarioID:    scenarioID,
		AttemptNumber: attemptNumber,
		UserResponse:  userResponse,
		AIEvaluation:  *evaluation,
	}
	if err := s.scenarioRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	return &ScenarioAttemptResult{
		Evaluation:    evaluation,
		AttemptNumber: attemptNumber,
	}, nil
}
