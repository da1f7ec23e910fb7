package controller

import (
	"errors"
	"strconv"

	"student_portal_backend/internal/service"
	"student_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// List godoc
// @Summary List approved students
// @Tags students
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Router /api/admin/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	students, total, err := c.StudentService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  students,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (c *StudentController) ListPending(ctx *gin.Context) {
	students, err := c.StudentService.ListPending()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

func (c *StudentController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	profile, err := c.StudentService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, profile)
}

// Approve godoc
// @Summary Approve a pending registration
// @Tags students
// @Router /api/admin/students/{id}/approve [post]
func (c *StudentController) Approve(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.StudentService.Approve(id); err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"approved": true})
}

// Decline removes a pending registration together with its user account.
func (c *StudentController) Decline(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.StudentService.Decline(id); err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"declined": true})
}

func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.StudentService.UpdateProfile(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, profile)
}
