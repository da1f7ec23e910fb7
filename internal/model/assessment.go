package model

import "time"

type AssessmentKind string

const (
	KindQuiz AssessmentKind = "quiz"
	KindExam AssessmentKind = "exam"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	ShortAnswer    QuestionType = "short_answer"
)

// Assessment is a quiz or an exam. The two kinds share one schema and one
// scoring path; Kind only tags which family a row belongs to.
type Assessment struct {
	BaseModel
	Kind        AssessmentKind `gorm:"size:20;index;not null" json:"kind"`
	Title       string         `gorm:"size:100;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	SubjectID   *uint          `gorm:"index;type:bigint unsigned" json:"subjectId,omitempty"`
	Subject     *Subject       `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	CreatedByID uint           `gorm:"index;type:bigint unsigned" json:"createdById"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	// TimeLimit is advisory only; the server never cuts a submission off.
	TimeLimit      int  `gorm:"default:30" json:"timeLimit"` // minutes
	TotalQuestions int  `gorm:"default:0" json:"totalQuestions"`
	TotalPoints    int  `gorm:"default:0" json:"totalPoints"`
	IsPublished    bool `gorm:"default:false" json:"isPublished"`
	IsActive       bool `gorm:"default:true" json:"isActive"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type Question struct {
	BaseModel
	AssessmentID uint         `gorm:"index;type:bigint unsigned;not null" json:"assessmentId"`
	Type         QuestionType `gorm:"size:30;not null" json:"type"`
	Content      string       `gorm:"type:text;not null" json:"content"`
	Points       int          `gorm:"default:1" json:"points"`
	Order        int          `gorm:"default:0" json:"order"`
	Choices      []Choice     `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// Choice belongs to a question. A short_answer question stores a single
// synthetic choice holding the accepted answer text with IsCorrect set.
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}
