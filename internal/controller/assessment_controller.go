package controller

import (
	"errors"

	"student_portal_backend/internal/model"
	"student_portal_backend/internal/service"
	"student_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	SubmissionService *service.SubmissionService
	StudentService    *service.StudentService
}

func NewAssessmentController(
	assessmentService *service.AssessmentService,
	submissionService *service.SubmissionService,
	studentService *service.StudentService,
) *AssessmentController {
	return &AssessmentController{
		AssessmentService: assessmentService,
		SubmissionService: submissionService,
		StudentService:    studentService,
	}
}

func kindFromQuery(ctx *gin.Context) model.AssessmentKind {
	return model.AssessmentKind(ctx.Query("kind"))
}

// Create godoc
// @Summary Create a quiz or exam with its full question set
// @Tags assessments
// @Accept json
// @Produce json
// @Param body body service.AssessmentRequest true "assessment payload"
// @Success 201 {object} util.Response
// @Router /api/admin/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	c.save(ctx, 0)
}

// Update replaces the assessment's metadata and entire question set.
func (c *AssessmentController) Update(ctx *gin.Context) {
	c.save(ctx, util.MustParseUint(ctx.Param("id")))
}

func (c *AssessmentController) save(ctx *gin.Context, id uint) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assessment, err := c.AssessmentService.Save(id, claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrEmptyQuestionSet):
			util.BadRequest(ctx, "Question set is empty or malformed")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if id == 0 {
		util.Created(ctx, assessment)
	} else {
		util.Success(ctx, assessment)
	}
}

func (c *AssessmentController) List(ctx *gin.Context) {
	page, limit := pageFromQuery(ctx)
	list, total, err := c.AssessmentService.List(kindFromQuery(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

func (c *AssessmentController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	assessment, err := c.AssessmentService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, assessment)
}

// Questions returns the full authoring view, answer keys included.
func (c *AssessmentController) Questions(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	questions, err := c.AssessmentService.Questions(id)
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, questions)
}

func (c *AssessmentController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.AssessmentService.Delete(id); err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// Available lists the published, active assessments a student may take,
// each annotated with whether this student already has a result.
func (c *AssessmentController) Available(ctx *gin.Context) {
	profile, ok := c.studentProfile(ctx)
	if !ok {
		return
	}

	list, err := c.AssessmentService.ListPublished(kindFromQuery(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	type availableItem struct {
		model.Assessment
		Taken bool `json:"taken"`
	}
	items := make([]availableItem, 0, len(list))
	for _, a := range list {
		taken, err := c.SubmissionService.HasTaken(profile.ID, a.ID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		items = append(items, availableItem{Assessment: a, Taken: taken})
	}
	util.Success(ctx, items)
}

// Take godoc
// @Summary Fetch an assessment's questions for answering
// @Description Correct flags and short-answer keys are stripped from the payload
// @Tags assessments
// @Router /api/student/assessments/{id}/take [get]
func (c *AssessmentController) Take(ctx *gin.Context) {
	profile, ok := c.studentProfile(ctx)
	if !ok {
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	taken, err := c.SubmissionService.HasTaken(profile.ID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if taken {
		util.Conflict(ctx, "Assessment has already been taken")
		return
	}

	assessment, questions, err := c.AssessmentService.QuestionsForStudent(id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAssessmentUnavailable):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"assessment": assessment,
		"questions":  questions,
	})
}

func (c *AssessmentController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.AssessmentService.ListSubjects()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

type subjectRequest struct {
	Name string `json:"name" binding:"required"`
}

func (c *AssessmentController) CreateSubject(ctx *gin.Context) {
	var req subjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	subject, err := c.AssessmentService.CreateSubject(req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

func (c *AssessmentController) studentProfile(ctx *gin.Context) (*model.StudentProfile, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	profile, err := c.StudentService.GetByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return nil, false
	}
	return profile, true
}
