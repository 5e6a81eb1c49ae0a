package controller

import (
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// Status godoc
// @Summary Final assessment eligibility and history
// @Description Eligible only at module 3, week 4; includes previous attempt results
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AssessmentStatus}
// @Router /api/assessments/status [get]
func (c *AssessmentController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.AssessmentService.Status(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, status)
}

// SubmitAssessmentRequest carries one scored assessment part. Passed
// is derived server-side, never taken from the client.
type SubmitAssessmentRequest struct {
	Score        float64 `json:"score" binding:"min=0,max=100"`
	PassingScore float64 `json:"passingScore" binding:"required,min=1,max=100"`
	Feedback     string  `json:"feedback"`
}

// Submit godoc
// @Summary Submit one assessment part
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   assessmentType path string true "Written, Listening, Speaking or Cultural"
// @Param   body body SubmitAssessmentRequest true "Scores"
// @Success 201 {object} util.Response{data=model.AssessmentResult}
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/assessments/{assessmentType}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	assessmentType := ctx.Param("assessmentType")

	var req SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.SubmitResult(claims.UserID, assessmentType, req.Score, req.PassingScore, req.Feedback)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// GetCertification godoc
// @Summary Get the user's certification
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Certification}
// @Failure 404 {object} util.Response "No certification issued"
// @Router /api/assessments/certification [get]
func (c *AssessmentController) GetCertification(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	cert, err := c.AssessmentService.GetCertification(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrCertificationNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, cert)
}

// IssueCertificationRequest names the certified level.
type IssueCertificationRequest struct {
	Level string `json:"level" binding:"omitempty,oneof=A1 A2 B1 B2 C1 C2"`
}

// IssueCertification godoc
// @Summary Issue the user's certificate
// @Description One certification per user; a duplicate request is rejected with 400. The certificate is valid for two years.
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body IssueCertificationRequest false "Level (defaults to B2)"
// @Success 201 {object} util.Response{data=model.Certification}
// @Failure 400 {object} util.Response "Certification already issued"
// @Router /api/assessments/certification/issue [post]
func (c *AssessmentController) IssueCertification(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req IssueCertificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	cert, err := c.AssessmentService.IssueCertification(claims.UserID, req.Level)
	if err != nil {
		if errors.Is(err, util.ErrCertificationExists) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, cert)
}
