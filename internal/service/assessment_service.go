package service

import (
	"errors"
	"time"

	"student_portal_backend/internal/model"
	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/util"

	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo        *repository.AssessmentRepository
	SubjectRepo *repository.SubjectRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository, subjectRepo *repository.SubjectRepository) *AssessmentService {
	return &AssessmentService{Repo: repo, SubjectRepo: subjectRepo}
}

type ChoiceRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	Type    string          `json:"type" binding:"required,oneof=multiple_choice short_answer"`
	Content string          `json:"content" binding:"required"`
	// Points defaults to 1 when omitted; an explicit 0 is kept.
	Points  *int            `json:"points"`
	Order   int             `json:"order"`
	Choices []ChoiceRequest `json:"choices"`
	// CorrectAnswer holds the accepted text for short_answer questions.
	CorrectAnswer string `json:"correctAnswer"`
}

type AssessmentRequest struct {
	Kind        string            `json:"kind" binding:"required,oneof=quiz exam"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	SubjectID   *uint             `json:"subjectId"`
	DueDate     *time.Time        `json:"dueDate"`
	TimeLimit   int               `json:"timeLimit"`
	Questions   []QuestionRequest `json:"questions"`
}

// buildQuestions validates the payload and converts it to model rows.
// A multiple_choice question keeps its submitted choices; a short_answer
// question gets a single synthetic correct choice holding the accepted
// answer text.
func buildQuestions(reqs []QuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	for _, qr := range reqs {
		points := 1
		if qr.Points != nil {
			if *qr.Points < 0 {
				return nil, util.ErrEmptyQuestionSet
			}
			points = *qr.Points
		}

		q := model.Question{
			Type:    model.QuestionType(qr.Type),
			Content: qr.Content,
			Points:  points,
			Order:   qr.Order,
		}

		switch q.Type {
		case model.MultipleChoice:
			if len(qr.Choices) == 0 {
				return nil, util.ErrEmptyQuestionSet
			}
			for _, cr := range qr.Choices {
				q.Choices = append(q.Choices, model.Choice{
					Text:      cr.Text,
					IsCorrect: cr.IsCorrect,
				})
			}
		case model.ShortAnswer:
			q.Choices = []model.Choice{{
				Text:      qr.CorrectAnswer,
				IsCorrect: true,
			}}
		default:
			return nil, util.ErrEmptyQuestionSet
		}

		questions = append(questions, q)
	}
	return questions, nil
}

// Save creates or updates an assessment together with its full question
// set. Editing replaces every existing question: the old rows, their
// choices and any answers pointing at them go away and the payload is
// inserted from scratch, all inside one transaction. Saving publishes the
// assessment, matching the authoring flow this portal always had.
func (s *AssessmentService) Save(id, createdBy uint, req AssessmentRequest) (*model.Assessment, error) {
	var a *model.Assessment
	if id > 0 {
		existing, err := s.Repo.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		} else if err != nil {
			return nil, err
		}
		a = existing
	} else {
		a = &model.Assessment{CreatedByID: createdBy}
	}

	if req.SubjectID != nil {
		if _, err := s.SubjectRepo.FindByID(*req.SubjectID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		} else if err != nil {
			return nil, err
		}
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	a.Kind = model.AssessmentKind(req.Kind)
	a.Title = req.Title
	a.Description = req.Description
	a.SubjectID = req.SubjectID
	a.DueDate = req.DueDate
	a.TimeLimit = req.TimeLimit
	if a.TimeLimit == 0 {
		a.TimeLimit = 30
	}
	a.IsPublished = true
	a.IsActive = true

	if err := s.Repo.ReplaceQuestions(a, questions); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) Get(id uint) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return a, err
}

func (s *AssessmentService) List(kind model.AssessmentKind, page, limit int) ([]model.Assessment, int64, error) {
	return s.Repo.List(kind, page, limit)
}

func (s *AssessmentService) ListPublished(kind model.AssessmentKind) ([]model.Assessment, error) {
	return s.Repo.ListPublished(kind)
}

func (s *AssessmentService) Questions(assessmentID uint) ([]model.Question, error) {
	if _, err := s.Get(assessmentID); err != nil {
		return nil, err
	}
	return s.Repo.ListQuestions(assessmentID)
}

// StudentQuestion is the take-view of a question: choices are included
// without their correctness flags, and short_answer questions hide their
// synthetic answer choice entirely.
type StudentQuestion struct {
	ID      uint               `json:"id"`
	Type    model.QuestionType `json:"type"`
	Content string             `json:"content"`
	Points  int                `json:"points"`
	Order   int                `json:"order"`
	Choices []StudentChoice    `json:"choices,omitempty"`
}

type StudentChoice struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionsForStudent returns the questions a student sees while taking a
// published assessment.
func (s *AssessmentService) QuestionsForStudent(assessmentID uint) (*model.Assessment, []StudentQuestion, error) {
	a, err := s.Get(assessmentID)
	if err != nil {
		return nil, nil, err
	}
	if !a.IsPublished || !a.IsActive {
		return nil, nil, util.ErrAssessmentUnavailable
	}

	qs, err := s.Repo.ListQuestions(assessmentID)
	if err != nil {
		return nil, nil, err
	}

	out := make([]StudentQuestion, len(qs))
	for i, q := range qs {
		sq := StudentQuestion{
			ID:      q.ID,
			Type:    q.Type,
			Content: q.Content,
			Points:  q.Points,
			Order:   q.Order,
		}
		if q.Type == model.MultipleChoice {
			for _, c := range q.Choices {
				sq.Choices = append(sq.Choices, StudentChoice{ID: c.ID, Text: c.Text})
			}
		}
		out[i] = sq
	}
	return a, out, nil
}

func (s *AssessmentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// Subjects management is small enough to live here.

func (s *AssessmentService) ListSubjects() ([]model.Subject, error) {
	return s.SubjectRepo.ListAll()
}

func (s *AssessmentService) CreateSubject(name string) (*model.Subject, error) {
	subject := &model.Subject{Name: name}
	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}
