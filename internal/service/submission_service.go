package service

import (
	"errors"
	"time"

	"student_portal_backend/internal/config"
	"student_portal_backend/internal/model"
	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/util"

	"gorm.io/gorm"
)

// SubmissionService turns a student's raw answer payload into a persisted,
// scored result, and lets admins grade the short_answer rows afterwards.
type SubmissionService struct {
	Repo           *repository.ResultRepository
	AssessmentRepo *repository.AssessmentRepository
	Cfg            *config.Config
}

func NewSubmissionService(repo *repository.ResultRepository, assessmentRepo *repository.AssessmentRepository, cfg *config.Config) *SubmissionService {
	return &SubmissionService{Repo: repo, AssessmentRepo: assessmentRepo, Cfg: cfg}
}

// AnswerPayload carries one raw response keyed by question id. Exactly one
// of ChoiceID / Text is meaningful, depending on the question type.
type AnswerPayload struct {
	ChoiceID uint   `json:"choiceId"`
	Text     string `json:"text"`
}

type SubmitRequest struct {
	AssessmentID uint                   `json:"assessmentId" binding:"required"`
	Answers      map[uint]AnswerPayload `json:"answers"`
	TimeTaken    int                    `json:"timeTaken"` // seconds, client-reported
}

// Submit records one attempt. Questions are walked in grading order and an
// answer row is created for each question whose payload is present and
// non-empty; what happens to blank questions depends on the configured
// unanswered policy. multiple_choice rows are auto-graded here, once;
// short_answer rows wait for an admin. The result insert itself is the
// attempt guard, see ResultRepository.CreateWithAnswers.
func (s *SubmissionService) Submit(studentID uint, req SubmitRequest) (*model.Result, error) {
	assessment, err := s.AssessmentRepo.FindByID(req.AssessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	} else if err != nil {
		return nil, err
	}
	if !assessment.IsPublished || !assessment.IsActive {
		return nil, util.ErrAssessmentUnavailable
	}

	questions, err := s.AssessmentRepo.ListQuestions(assessment.ID)
	if err != nil {
		return nil, err
	}

	answers := make([]model.Answer, 0, len(questions))
	for _, q := range questions {
		payload, ok := req.Answers[q.ID]

		switch q.Type {
		case model.MultipleChoice:
			if !ok || payload.ChoiceID == 0 {
				if ans, record := s.unansweredRow(q); record {
					answers = append(answers, ans)
				}
				continue
			}
			choice := findChoice(q.Choices, payload.ChoiceID)
			if choice == nil {
				return nil, util.ErrChoiceNotFound
			}
			points := 0.0
			if choice.IsCorrect {
				points = float64(q.Points)
			}
			choiceID := choice.ID
			answers = append(answers, model.Answer{
				QuestionID:       q.ID,
				SelectedChoiceID: &choiceID,
				IsCorrect:        choice.IsCorrect,
				PointsEarned:     points,
			})
		case model.ShortAnswer:
			if !ok || payload.Text == "" {
				if ans, record := s.unansweredRow(q); record {
					answers = append(answers, ans)
				}
				continue
			}
			answers = append(answers, model.Answer{
				QuestionID:   q.ID,
				AnswerText:   payload.Text,
				IsCorrect:    false,
				PointsEarned: 0,
			})
		}
	}

	now := time.Now()
	result := &model.Result{
		StudentID:    studentID,
		AssessmentID: assessment.ID,
		DateTaken:    now,
		DateSubmitted: &now,
		// Snapshot: later question-set edits must not move this.
		TotalPoints: float64(assessment.TotalPoints),
		TimeTaken:   req.TimeTaken,
		IsCompleted: true,
	}

	if err := s.Repo.CreateWithAnswers(result, answers); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}
	result.Assessment = assessment
	return result, nil
}

// unansweredRow returns the placeholder row for a blank question under the
// "record" policy, or record=false under the original "skip" behavior.
func (s *SubmissionService) unansweredRow(q model.Question) (model.Answer, bool) {
	if s.Cfg.Assessment.UnansweredPolicy != util.UnansweredRecord {
		return model.Answer{}, false
	}
	return model.Answer{
		QuestionID:   q.ID,
		IsCorrect:    false,
		PointsEarned: 0,
	}, true
}

func findChoice(choices []model.Choice, id uint) *model.Choice {
	for i := range choices {
		if choices[i].ID == id {
			return &choices[i]
		}
	}
	return nil
}

type AnswerGrade struct {
	AnswerID  uint   `json:"answerId" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}

type GradeRequest struct {
	Answers []AnswerGrade `json:"answers"`
	Remarks string        `json:"remarks"`
}

// Grade applies admin judgments to a result's short_answer rows and marks
// the result graded. multiple_choice rows were fixed at submission time
// and are left untouched even if a judgment names them. The score is
// rewritten from the sum of all answer rows, so grading is idempotent.
func (s *SubmissionService) Grade(resultID uint, req GradeRequest) (*model.Result, error) {
	result, err := s.Repo.FindByID(resultID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	} else if err != nil {
		return nil, err
	}

	answers, err := s.Repo.ListAnswers(resultID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.Answer, len(answers))
	for i := range answers {
		byID[answers[i].ID] = &answers[i]
	}

	updates := make([]model.Answer, 0, len(req.Answers))
	for _, g := range req.Answers {
		ans, ok := byID[g.AnswerID]
		if !ok {
			return nil, util.ErrAnswerNotFound
		}
		if ans.Question == nil || ans.Question.Type != model.ShortAnswer {
			continue
		}
		ans.IsCorrect = g.IsCorrect
		if g.IsCorrect {
			ans.PointsEarned = float64(ans.Question.Points)
		} else {
			ans.PointsEarned = 0
		}
		ans.Feedback = g.Feedback
		updates = append(updates, *ans)
	}

	if req.Remarks != "" {
		result.Remarks = req.Remarks
	}
	if err := s.Repo.UpdateAnswersAndRescore(result, updates); err != nil {
		return nil, err
	}
	return result, nil
}

type ResultDetail struct {
	Result  *model.Result  `json:"result"`
	Answers []model.Answer `json:"answers"`
}

func (s *SubmissionService) GetResult(resultID uint) (*ResultDetail, error) {
	result, err := s.Repo.FindByID(resultID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	} else if err != nil {
		return nil, err
	}
	answers, err := s.Repo.ListAnswers(resultID)
	if err != nil {
		return nil, err
	}
	return &ResultDetail{Result: result, Answers: answers}, nil
}

// GetStudentResult is GetResult restricted to the owning student.
func (s *SubmissionService) GetStudentResult(studentID, resultID uint) (*ResultDetail, error) {
	detail, err := s.GetResult(resultID)
	if err != nil {
		return nil, err
	}
	if detail.Result.StudentID != studentID {
		return nil, util.ErrResultNotFound
	}
	return detail, nil
}

func (s *SubmissionService) ListByAssessment(assessmentID uint) ([]model.Result, error) {
	return s.Repo.ListByAssessment(assessmentID)
}

func (s *SubmissionService) ListByStudent(studentID uint, kind model.AssessmentKind) ([]model.Result, error) {
	return s.Repo.ListByStudent(studentID, kind, 0)
}

// HasTaken reports whether the student already has a result for the
// assessment. Listing screens use it; the real guard is the unique index.
func (s *SubmissionService) HasTaken(studentID, assessmentID uint) (bool, error) {
	_, err := s.Repo.FindByStudentAndAssessment(studentID, assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
