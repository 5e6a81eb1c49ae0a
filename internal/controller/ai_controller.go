package controller

import (
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/internal/util"
	"errors"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	SpeakingService *service.SpeakingService
	AIService       *service.AIService
	UploadDir       string
}

func NewAIController(speakingService *service.SpeakingService, aiService *service.AIService, cfg *config.Config) *AIController {
	return &AIController{
		SpeakingService: speakingService,
		AIService:       aiService,
		UploadDir:       cfg.Upload.Dir,
	}
}

// StartSessionRequest opens a speaking practice session.
type StartSessionRequest struct {
	ScenarioType string `json:"scenarioType" binding:"required"`
}

// StartSession godoc
// @Summary Open a speaking practice session
// @Description Creates an empty session; scores stay null until a recording is submitted
// @Tags ai
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StartSessionRequest true "Scenario to practice"
// @Success 201 {object} util.Response{data=model.SpeakingSession}
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/ai/speaking-session [post]
func (c *AIController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SpeakingService.StartSession(claims.UserID, req.ScenarioType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// SubmitSession godoc
// @Summary Submit a speaking session response
// @Description Transcribes the uploaded audio, scores the transcript, stores the recording, and fills in the session. A client that could not record may post a plain-text transcript instead of audio; it is scored directly. The temp upload is removed on every path.
// @Tags ai
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path int true "Session ID"
// @Param   audio formData file false "Audio recording (mp3, mp4, mpeg, mpga, m4a, wav, webm; max 25MB)"
// @Param   transcript formData string false "Plain-text transcript, used when no audio is uploaded"
// @Param   duration formData int false "Recording duration in seconds"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 400 {object} util.Response "No audio or transcript, or invalid audio file"
// @Failure 404 {object} util.Response "Session not found"
// @Failure 500 {object} util.Response "Transcription failed"
// @Router /api/ai/speaking-session/{sessionId}/submit [post]
func (c *AIController) SubmitSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	sessionID := util.MustParseUint(ctx.Param("sessionId"))

	duration, _ := strconv.Atoi(ctx.PostForm("duration"))

	tempPath := ""
	transcript := ""
	fileHeader, err := ctx.FormFile("audio")
	if err == nil {
		if err := service.ValidateAudioUpload(fileHeader.Filename, fileHeader.Size); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}

		tempPath = filepath.Join(c.UploadDir, util.UniqueFilename(fileHeader.Filename))
		if err := ctx.SaveUploadedFile(fileHeader, tempPath); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer util.CleanupFile(tempPath)
	} else {
		transcript = ctx.PostForm("transcript")
		if transcript == "" {
			util.BadRequest(ctx, "an audio file or a transcript is required")
			return
		}
	}

	result, err := c.SpeakingService.SubmitSession(ctx.Request.Context(), sessionID, claims.UserID, tempPath, transcript, duration)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Sessions godoc
// @Summary List the user's speaking sessions
// @Tags ai
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SpeakingSession}
// @Router /api/ai/speaking-sessions [get]
func (c *AIController) Sessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.SpeakingService.Sessions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}

// Scenarios godoc
// @Summary List practice scenarios
// @Tags ai
// @Produce  json
// @Security BearerAuth
// @Param   difficulty query string false "Beginner, Intermediate or Advanced"
// @Success 200 {object} util.Response{data=[]model.Scenario}
// @Router /api/ai/scenarios [get]
func (c *AIController) Scenarios(ctx *gin.Context) {
	scenarios, err := c.SpeakingService.Scenarios(ctx.Query("difficulty"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, scenarios)
}

// AttemptScenarioRequest carries a typed response to a scenario.
type AttemptScenarioRequest struct {
	UserResponse string `json:"userResponse" binding:"required"`
}

// AttemptScenario godoc
// @Summary Attempt a scenario with a typed response
// @Description Evaluates the response against the scenario; an evaluation failure falls back to a generic evaluation rather than failing the attempt
// @Tags ai
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   scenarioId path int true "Scenario ID"
// @Param   body body AttemptScenarioRequest true "The response to evaluate"
// @Success 200 {object} util.Response{data=service.ScenarioAttemptResult}
// @Failure 404 {object} util.Response "Scenario not found"
// @Router /api/ai/scenario/{scenarioId}/attempt [post]
func (c *AIController) AttemptScenario(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	scenarioID := util.MustParseUint(ctx.Param("scenarioId"))

	var req AttemptScenarioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SpeakingService.AttemptScenario(claims.UserID, scenarioID, req.UserResponse)
	if err != nil {
		if errors.Is(err, util.ErrScenarioNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// AskTutorRequest is a free-form question for the AI tutor.
type AskTutorRequest struct {
	Question string `json:"question" binding:"required"`
	Context  string `json:"context"`
}

// AskTutor godoc
// @Summary Ask the AI English tutor a question
// @Description A provider failure returns a canned tutor response rather than an error
// @Tags ai
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AskTutorRequest true "The question"
// @Success 200 {object} util.Response{data=model.TutorResponse}
// @Router /api/ai/ask-tutor [post]
func (c *AIController) AskTutor(ctx *gin.Context) {
	var req AskTutorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.AIService.TutorAnswer(req.Question, req.Context)
	if err != nil {
		fallback := model.DefaultTutorResponse()
		answer = &fallback
	}

	util.Success(ctx, answer)
}

// GenerateQuizRequest asks for adaptive quiz questions.
type GenerateQuizRequest struct {
	Category   string `json:"category" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Count      int    `json:"count" binding:"omitempty,min=1,max=20"`
}

// GenerateQuiz godoc
// @Summary Generate adaptive quiz questions
// @Description A provider failure returns a small set of fixed questions rather than an error
// @Tags ai
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} util.Response{data=[]model.QuizQuestion}
// @Router /api/ai/generate-quiz [post]
func (c *AIController) GenerateQuiz(ctx *gin.Context) {
	var req GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.AIService.GenerateQuizQuestions(req.Category, req.Difficulty, req.Count)
	if err != nil {
		questions = model.DefaultQuizQuestions()
	}

	util.Success(ctx, questions)
}

// Health godoc
// @Summary AI subsystem health
// @Tags ai
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Router /api/ai/health [get]
func (c *AIController) Health(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status":  "ok",
		"service": "ai",
	})
}
