package controller

import (
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// List godoc
// @Summary List lessons
// @Description Returns lessons, optionally filtered by module and week
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   module query int false "Module number (1-3)"
// @Param   week query int false "Week number (1-4)"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	module, _ := strconv.Atoi(ctx.Query("module"))
	week, _ := strconv.Atoi(ctx.Query("week"))

	lessons, err := c.LessonService.List(module, week)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, lessons)
}

// Get godoc
// @Summary Get one lesson
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /api/lessons/{lessonId} [get]
func (c *LessonController) Get(ctx *gin.Context) {
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

	util.Success(ctx, lesson)
}

// GetProgress godoc
// @Summary Get the user's progress on one lesson
// @Tags lessons
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.UserLessonProgress}
// @Failure 404 {object} util.Response "No progress recorded for this lesson"
// @Router /api/lessons/{lessonId}/progress [get]
func (c *LessonController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	progress, err := c.LessonService.GetProgress(claims.UserID, lessonID)
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// CompleteLessonRequest reports a finished lesson.
type CompleteLessonRequest struct {
	TimeSpentSeconds int      `json:"timeSpentSeconds" binding:"min=0"`
	Score            *float64 `json:"score" binding:"omitempty,min=0,max=100"`
}

// Complete godoc
// @Summary Mark a lesson as completed
// @Description Upserts the completion record; a resubmission with a positive time and a score replaces the stored values
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "Lesson ID"
// @Param   body body CompleteLessonRequest true "Completion details"
// @Success 200 {object} util.Response{data=model.UserLessonProgress}
// @Router /api/lessons/{lessonId}/complete [post]
func (c *LessonController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	lessonID := util.MustParseUint(ctx.Param("lessonId"))

	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.LessonService.Complete(claims.UserID, lessonID, req.TimeSpentSeconds, req.Score)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
