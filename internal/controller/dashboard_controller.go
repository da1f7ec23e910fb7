package controller

import (
	"errors"

	"student_portal_backend/internal/service"
	"student_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	StudentService   *service.StudentService
}

func NewDashboardController(dashboardService *service.DashboardService, studentService *service.StudentService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		StudentService:   studentService,
	}
}

// Admin godoc
// @Summary Admin dashboard numbers
// @Description Cached in Redis for a short TTL
// @Tags dashboard
// @Router /api/admin/dashboard [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	dash, err := c.DashboardService.AdminOverview(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}

func (c *DashboardController) Student(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.StudentService.GetByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	dash, err := c.DashboardService.StudentOverview(profile.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}
