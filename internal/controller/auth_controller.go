package controller

import (
	"errors"

	"student_portal_backend/internal/service"
	"student_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService    *service.AuthService
	StudentService *service.StudentService
}

func NewAuthController(authService *service.AuthService, studentService *service.StudentService) *AuthController {
	return &AuthController{
		AuthService:    authService,
		StudentService: studentService,
	}
}

// Register godoc
// @Summary Register a new student account
// @Description Creates a user plus student profile; the account stays locked until an admin approves it
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterStudentRequest true "registration payload"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "email or student number already taken"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.StudentService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, "Email is already registered")
		case errors.Is(err, util.ErrStudentNumberTaken):
			util.Conflict(ctx, "Student number is already taken")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"id":            profile.ID,
		"studentNumber": profile.StudentNumber,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Returns a JWT on success; pending students are rejected until approved
// @Tags auth
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, "Invalid email or password")
		case errors.Is(err, util.ErrPendingApproval):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// Me returns the authenticated user, with the student profile attached
// for student accounts.
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	payload := gin.H{"user": user}
	if profile, err := c.StudentService.GetByUserID(claims.UserID); err == nil {
		payload["profile"] = profile
	}

	util.Success(ctx, payload)
}
