package controller

import (
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/internal/util"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type TTSController struct {
	TTSService      *service.TTSService
	LessonService   *service.LessonService
	SpeakingService *service.SpeakingService
}

func NewTTSController(ttsService *service.TTSService, lessonService *service.LessonService, speakingService *service.SpeakingService) *TTSController {
	return &TTSController{
		TTSService:      ttsService,
		LessonService:   lessonService,
		SpeakingService: speakingService,
	}
}

// GenerateSpeechRequest is a raw synthesis request.
type GenerateSpeechRequest struct {
	Text  string  `json:"text" binding:"required"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
	Model string  `json:"model"`
}

// Generate godoc
// @Summary Synthesize speech from text
// @Description Returns the audio as a base64 data URI. Text is capped at 4096 characters; speed at 0.25-4.0.
// @Tags tts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateSpeechRequest true "Synthesis parameters"
// @Success 200 {object} util.Response{data=service.SynthesisResult}
// @Failure 400 {object} util.Response "Invalid text, voice, speed or model"
// @Router /api/tts/generate [post]
func (c *TTSController) Generate(ctx *gin.Context) {
	var req GenerateSpeechRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.synthesize(ctx, req.Text, req.Voice, req.Speed, req.Model)
}

// ScenarioAudio godoc
// @Summary Narrate a practice scenario
// @Description Composes narration text from the scenario name, customer persona and description, then synthesizes it
// @Tags tts
// @Produce  json
// @Security BearerAuth
// @Param   scenarioId path int true "Scenario ID"
// @Param   voice query string false "Voice name"
// @Success 200 {object} util.Response{data=service.SynthesisResult}
// @Failure 404 {object} util.Response "Scenario not found"
// @Router /api/tts/scenario/{scenarioId} [get]
func (c *TTSController) ScenarioAudio(ctx *gin.Context) {
	scenarioID := util.MustParseUint(ctx.Param("scenarioId"))

	scenario, err := c.SpeakingService.Scenario(scenarioID)
	if err != nil {
		if errors.Is(err, util.ErrScenarioNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	text := fmt.Sprintf("Scenario: %s. You will speak with %s, who sounds %s. %s",
		scenario.ScenarioName,
		scenario.CustomerPersona.Name,
		scenario.CustomerPersona.Mood,
		scenario.ScenarioDescription)
	c.synthesize(ctx, text, ctx.Query("voice"), 0, "")
}

// LessonAudio godoc
// @Summary Read a lesson introduction aloud
// @Tags tts
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "Lesson ID"
// @Param   voice query string false "Voice name"
// @Success 200 {object} util.Response{data=service.SynthesisResult}
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /api/tts/lesson/{lessonId} [get]
func (c *TTSController) LessonAudio(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	lesson, err := c.LessonService.Get(lessonID)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	text := fmt.Sprintf("%s. %s", lesson.LessonTitle, lesson.LessonContent)
	text = util.TruncateUTF8(text, util.MaxTTSChars)
	c.synthesize(ctx, text, ctx.Query("voice"), 0, "")
}

// SpeakTextRequest reads arbitrary feedback or question text aloud.
type SpeakTextRequest struct {
	Text  string  `json:"text" binding:"required"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
}

// FeedbackAudio godoc
// @Summary Read session feedback aloud
// @Tags tts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SpeakTextRequest true "Feedback text"
// @Success 200 {object} util.Response{data=service.SynthesisResult}
// @Router /api/tts/feedback [post]
func (c *TTSController) FeedbackAudio(ctx *gin.Context) {
	var req SpeakTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.synthesize(ctx, req.Text, req.Voice, req.Speed, "")
}

// QuizQuestionAudio godoc
// @Summary Read a quiz question aloud
// @Description Used by listening quizzes; speaks slightly slower than default unless a speed is given
// @Tags tts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SpeakTextRequest true "Question text"
// @Success 200 {object} util.Response{data=service.SynthesisResult}
// @Router /api/tts/quiz-question [post]
func (c *TTSController) QuizQuestionAudio(ctx *gin.Context) {
	var req SpeakTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Speed == 0 {
		req.Speed = 0.9
	}
	c.synthesize(ctx, req.Text, req.Voice, req.Speed, "")
}

// Voices godoc
// @Summary List supported voices, models, and the speed range
// @Tags tts
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Router /api/tts/voices [get]
func (c *TTSController) Voices(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"voices": c.TTSService.Voices(),
		"models": []string{"tts-1", "tts-1-hd"},
		"speed": gin.H{
			"min":     service.MinTTSSpeed,
			"max":     service.MaxTTSSpeed,
			"default": service.DefaultTTSSpeed,
		},
	})
}

// Health godoc
// @Summary TTS subsystem health
// @Tags tts
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Router /api/tts/health [get]
func (c *TTSController) Health(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status":  "ok",
		"service": "tts",
	})
}

func (c *TTSController) synthesize(ctx *gin.Context, text, voice string, speed float64, model string) {
	result, err := c.TTSService.Synthesize(ctx.Request.Context(), text, voice, speed, model)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyText),
			errors.Is(err, util.ErrTextTooLong),
			errors.Is(err, util.ErrInvalidVoice),
			errors.Is(err, util.ErrInvalidSpeed),
			errors.Is(err, util.ErrInvalidTTSModel):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
