package controller

import (
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Results godoc
// @Summary List the user's quiz results
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizResult}
// @Router /api/quizzes [get]
func (c *QuizController) Results(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.QuizService.Results(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// SubmitQuizRequest carries a scored attempt. CorrectAnswers uses a
// pointer so that an explicit zero still binds.
type SubmitQuizRequest struct {
	TotalQuestions   int  `json:"totalQuestions" binding:"required,min=1"`
	CorrectAnswers   *int `json:"correctAnswers" binding:"required,min=0"`
	TimeSpentSeconds int  `json:"timeSpentSeconds" binding:"min=0"`
}

// Submit godoc
// @Summary Submit a quiz attempt
// @Description Records the attempt with score = correctAnswers / totalQuestions * 100
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   quizId path string true "Quiz type identifier"
// @Param   body body SubmitQuizRequest true "Attempt details"
// @Success 201 {object} util.Response{data=model.QuizResult}
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/quizzes/{quizId}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	quizType := ctx.Param("quizId")

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if *req.CorrectAnswers > req.TotalQuestions {
		util.BadRequest(ctx, "correctAnswers cannot exceed totalQuestions")
		return
	}

	result, err := c.QuizService.Submit(claims.UserID, quizType, req.TotalQuestions, *req.CorrectAnswers, req.TimeSpentSeconds)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// Stats godoc
// @Summary Quiz statistics for the user
// @Tags quizzes
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.QuizStats}
// @Router /api/quizzes/stats [get]
func (c *QuizController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.QuizService.Stats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
