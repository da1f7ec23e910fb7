package model

import "time"

// Result is a student's single graded outcome for one assessment. The
// unique index on (student_id, assessment_id) is what makes the attempt
// guard race-safe: a concurrent duplicate submission fails on insert
// instead of slipping past an existence check.
type Result struct {
	BaseModel
	StudentID     uint            `gorm:"uniqueIndex:idx_student_assessment;type:bigint unsigned;not null" json:"studentId"`
	Student       *StudentProfile `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	AssessmentID  uint            `gorm:"uniqueIndex:idx_student_assessment;type:bigint unsigned;not null" json:"assessmentId"`
	Assessment    *Assessment     `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	DateTaken     time.Time       `json:"dateTaken"`
	DateSubmitted *time.Time      `json:"dateSubmitted,omitempty"`
	// Score is a cached projection of the answers' points; it is only ever
	// rewritten by summing every answer row inside the submission and
	// grading transactions.
	Score float64 `gorm:"default:0" json:"score"`
	// TotalPoints snapshots assessment.total_points at creation and is not
	// re-synced when the question set changes afterwards.
	TotalPoints float64 `json:"totalPoints"`
	TimeTaken   int     `gorm:"default:0" json:"timeTaken"` // seconds
	IsCompleted bool    `gorm:"default:false" json:"isCompleted"`
	IsGraded    bool    `gorm:"default:false" json:"isGraded"`
	Remarks     string  `gorm:"type:text" json:"remarks"`
}

func (Result) TableName() string {
	return "results"
}

// Answer is one student response to one question within a result. For
// multiple_choice rows correctness is fixed at submission time; for
// short_answer rows it stays false/0 until an admin grades it.
type Answer struct {
	BaseModel
	ResultID         uint      `gorm:"index;type:bigint unsigned;not null" json:"resultId"`
	QuestionID       uint      `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Question         *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedChoiceID *uint     `gorm:"type:bigint unsigned" json:"selectedChoiceId,omitempty"`
	SelectedChoice   *Choice   `gorm:"foreignKey:SelectedChoiceID" json:"selectedChoice,omitempty"`
	AnswerText       string    `gorm:"type:text" json:"answerText"`
	IsCorrect        bool      `gorm:"default:false" json:"isCorrect"`
	PointsEarned     float64   `gorm:"default:0" json:"pointsEarned"`
	Feedback         string    `gorm:"type:text" json:"feedback"`
}

func (Answer) TableName() string {
	return "answers"
}
