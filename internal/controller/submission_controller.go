package controller

import (
	"errors"

	"student_portal_backend/internal/model"
	"student_portal_backend/internal/service"
	"student_portal_backend/internal/util"
	"student_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
	StudentService    *service.StudentService
}

func NewSubmissionController(submissionService *service.SubmissionService, studentService *service.StudentService) *SubmissionController {
	return &SubmissionController{
		SubmissionService: submissionService,
		StudentService:    studentService,
	}
}

// Submit godoc
// @Summary Submit answers for an assessment
// @Description One attempt per student per assessment; a duplicate submission gets 409
// @Tags submissions
// @Accept json
// @Produce json
// @Param body body service.SubmitRequest true "answer payload"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "already submitted"
// @Router /api/student/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
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

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubmissionService.Submit(profile.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAssessmentUnavailable):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrChoiceNotFound):
			util.BadRequest(ctx, "Selected choice does not belong to the question")
		case errors.Is(err, util.ErrAlreadySubmitted):
			monitoring.SubmissionCounter.WithLabelValues("unknown", "duplicate").Inc()
			util.Conflict(ctx, "Assessment has already been taken")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	kind := "unknown"
	if result.Assessment != nil {
		kind = string(result.Assessment.Kind)
	}
	monitoring.SubmissionCounter.WithLabelValues(kind, "accepted").Inc()

	util.Created(ctx, result)
}

// MyResults lists the authenticated student's results, newest first.
func (c *SubmissionController) MyResults(ctx *gin.Context) {
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

	kind := model.AssessmentKind(ctx.Query("kind"))
	results, err := c.SubmissionService.ListByStudent(profile.ID, kind)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// MyResult returns one of the student's own results with its answer rows.
func (c *SubmissionController) MyResult(ctx *gin.Context) {
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

	id := util.MustParseUint(ctx.Param("id"))
	detail, err := c.SubmissionService.GetStudentResult(profile.ID, id)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// ListByAssessment lists completed submissions for grading screens.
func (c *SubmissionController) ListByAssessment(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	results, err := c.SubmissionService.ListByAssessment(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

func (c *SubmissionController) GetResult(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	detail, err := c.SubmissionService.GetResult(id)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Grade godoc
// @Summary Grade a result's short-answer rows
// @Description Multiple-choice rows are immutable; the score is recomputed and the result marked graded
// @Tags submissions
// @Router /api/admin/results/{id}/grade [post]
func (c *SubmissionController) Grade(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubmissionService.Grade(id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResultNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAnswerNotFound):
			util.BadRequest(ctx, "Answer does not belong to the result")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
