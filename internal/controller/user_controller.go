package controller

import (
	"callcenter_english_backend/internal/service"
	"callcenter_english_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags user
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "User not found"
// @Router /api/users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// UpdateProfileRequest carries the editable profile fields. Empty
// fields keep their stored values.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfile godoc
// @Summary Update the authenticated user's name
// @Tags user
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "User not found"
// @Router /api/users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// InitializeProgress godoc
// @Summary Initialize the learning progress record
// @Description Creates the user's progress row at module 1, week 1 with a 90-day expected completion date. Idempotence is rejected: a second call fails.
// @Tags user
// @Produce  json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.UserProgress}
// @Failure 400 {object} util.Response "Progress already initialized"
// @Router /api/users/initialize-progress [post]
func (c *UserController) InitializeProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.UserService.InitializeProgress(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProgressInitialized) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, progress)
}
