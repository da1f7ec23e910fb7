package controller

import (
	"errors"
	"strconv"
	"time"

	"student_portal_backend/internal/model"
	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/service"
	"student_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	AttendanceService *service.AttendanceService
	StudentService    *service.StudentService
}

func NewAttendanceController(attendanceService *service.AttendanceService, studentService *service.StudentService) *AttendanceController {
	return &AttendanceController{
		AttendanceService: attendanceService,
		StudentService:    studentService,
	}
}

func filterFromQuery(ctx *gin.Context) repository.AttendanceFilter {
	f := repository.AttendanceFilter{
		StudentID: util.MustParseUint(ctx.Query("studentId")),
		SubjectID: util.MustParseUint(ctx.Query("subjectId")),
		Status:    model.AttendanceStatus(ctx.Query("status")),
	}
	if raw := ctx.Query("date"); raw != "" {
		if _, err := time.Parse(util.DateFormat, raw); err == nil {
			f.Date = raw
		}
	}
	return f
}

func pageFromQuery(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// Add godoc
// @Summary Record attendance for one student
// @Tags attendance
// @Router /api/admin/attendance [post]
func (c *AttendanceController) Add(ctx *gin.Context) {
	var req service.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.AttendanceService.Add(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound), errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, rec)
}

// BulkAdd records a whole class roster for one subject and date in a
// single transaction.
func (c *AttendanceController) BulkAdd(ctx *gin.Context) {
	var req service.BulkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	n, err := c.AttendanceService.BulkAdd(req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"recorded": n})
}

func (c *AttendanceController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.AttendanceService.Update(id, req)
	if err != nil {
		if errors.Is(err, util.ErrAttendanceNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, rec)
}

func (c *AttendanceController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.AttendanceService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// List godoc
// @Summary List attendance records with status counts
// @Tags attendance
// @Param studentId query int false "filter by student"
// @Param subjectId query int false "filter by subject"
// @Param date query string false "YYYY-MM-DD"
// @Param status query string false "Present, Absent or Late"
// @Router /api/admin/attendance [get]
func (c *AttendanceController) List(ctx *gin.Context) {
	page, limit := pageFromQuery(ctx)
	resp, err := c.AttendanceService.List(filterFromQuery(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// MyAttendance lists the authenticated student's own records.
func (c *AttendanceController) MyAttendance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.StudentService.GetByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	page, limit := pageFromQuery(ctx)
	f := filterFromQuery(ctx)
	resp, err := c.AttendanceService.StudentList(profile.ID, f, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
