package controller

import (
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetProgress godoc
// @Summary Get the user's course progress
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Failure 404 {object} util.Response "Progress not initialized"
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetProgress(claims.UserID)
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

// UpdateProgressRequest is a partial update: absent fields keep their
// stored values.
type UpdateProgressRequest struct {
	CurrentModule       *int     `json:"currentModule" binding:"omitempty,min=1,max=3"`
	CurrentWeek         *int     `json:"currentWeek" binding:"omitempty,min=1,max=4"`
	OverallMasteryScore *float64 `json:"overallMasteryScore" binding:"omitempty,min=0,max=100"`
	TotalHoursCompleted *float64 `json:"totalHoursCompleted" binding:"omitempty,min=0"`
}

// UpdateProgress godoc
// @Summary Update course progress fields
// @Tags progress
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UpdateProgressRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Failure 404 {object} util.Response "Progress not initialized"
// @Router /api/progress [put]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.UpdateProgress(claims.UserID, service.ProgressUpdate{
		CurrentModule:       req.CurrentModule,
		CurrentWeek:         req.CurrentWeek,
		OverallMasteryScore: req.OverallMasteryScore,
		TotalHoursCompleted: req.TotalHoursCompleted,
	})
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

// GetSkills godoc
// @Summary List the user's skill mastery records
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SkillMastery}
// @Router /api/progress/skills [get]
func (c *ProgressController) GetSkills(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skills, err := c.ProgressService.GetSkills(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, skills)
}

// UpsertSkillRequest records a practice event for one skill.
type UpsertSkillRequest struct {
	SkillName     string  `json:"skillName" binding:"required"`
	SkillCategory string  `json:"skillCategory" binding:"required,oneof=Grammar CallCenter Cultural"`
	MasteryScore  float64 `json:"masteryScore" binding:"min=0,max=100"`
}

// UpsertSkill godoc
// @Summary Record a skill practice event
// @Description Replaces the stored mastery score with the submitted one and increments the practice counter
// @Tags progress
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UpsertSkillRequest true "Skill practice result"
// @Success 200 {object} util.Response{data=model.SkillMastery}
// @Router /api/progress/skills [post]
func (c *ProgressController) UpsertSkill(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpsertSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.ProgressService.UpsertSkill(claims.UserID, req.SkillName, model.SkillCategory(req.SkillCategory), req.MasteryScore)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, skill)
}

// GetRecommendations godoc
// @Summary Get a personalized study plan
// @Description Builds recommendations from the user's progress and weakest skills; falls back to a generic plan when the AI provider is unavailable
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.LearningRecommendations}
// @Failure 404 {object} util.Response "Progress not initialized"
// @Router /api/progress/recommendations [get]
func (c *ProgressController) GetRecommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	recs, err := c.ProgressService.GetRecommendations(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, recs)
}
