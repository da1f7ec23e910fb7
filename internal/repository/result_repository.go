package repository

import (
	"student_portal_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// CreateWithAnswers persists a result and its answers atomically, then
// rewrites the result's score from the sum of points_earned. The
// unique index on (student_id, assessment_id) makes the insert the attempt
// guard: a concurrent duplicate surfaces as gorm.ErrDuplicatedKey and
// nothing is left behind.
func (r *ResultRepository) CreateWithAnswers(result *model.Result, answers []model.Answer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].ResultID = result.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		return rescore(tx, result)
	})
}

// UpdateAnswersAndRescore saves graded answers and the admin's remarks,
// recomputes the score and marks the result graded, all in one transaction.
// Grading the same answers with the same judgments twice lands on the same score.
func (r *ResultRepository) UpdateAnswersAndRescore(result *model.Result, answers []model.Answer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range answers {
			if err := tx.Model(&model.Answer{}).
				Where("id = ? AND result_id = ?", answers[i].ID, result.ID).
				Updates(map[string]interface{}{
					"is_correct":    answers[i].IsCorrect,
					"points_earned": answers[i].PointsEarned,
					"feedback":      answers[i].Feedback,
				}).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.Result{}).Where("id = ?", result.ID).
			Update("remarks", result.Remarks).Error; err != nil {
			return err
		}
		result.IsGraded = true
		return rescore(tx, result)
	})
}

// rescore treats result.score as a cached projection: it is always
// recomputed from the answers in full, never patched incrementally.
func rescore(tx *gorm.DB, result *model.Result) error {
	var score float64
	if err := tx.Model(&model.Answer{}).
		Where("result_id = ?", result.ID).
		Select("COALESCE(SUM(points_earned), 0)").
		Scan(&score).Error; err != nil {
		return err
	}
	result.Score = score
	return tx.Model(&model.Result{}).Where("id = ?", result.ID).
		Updates(map[string]interface{}{
			"score":     result.Score,
			"is_graded": result.IsGraded,
		}).Error
}

func (r *ResultRepository) FindByID(id uint) (*model.Result, error) {
	var res model.Result
	err := r.DB.Preload("Student.User").Preload("Assessment").First(&res, id).Error
	return &res, err
}

func (r *ResultRepository) FindByStudentAndAssessment(studentID, assessmentID uint) (*model.Result, error) {
	var res model.Result
	err := r.DB.Where("student_id = ? AND assessment_id = ?", studentID, assessmentID).First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResultRepository) ListByAssessment(assessmentID uint) ([]model.Result, error) {
	var rs []model.Result
	err := r.DB.Preload("Student.User").
		Where("assessment_id = ? AND is_completed = ?", assessmentID, true).
		Order("date_taken desc").
		Find(&rs).Error
	return rs, err
}

func (r *ResultRepository) ListByStudent(studentID uint, kind model.AssessmentKind, limit int) ([]model.Result, error) {
	var rs []model.Result
	query := r.DB.Preload("Assessment").
		Joins("JOIN assessments ON assessments.id = results.assessment_id").
		Where("results.student_id = ?", studentID)
	if kind != "" {
		query = query.Where("assessments.kind = ?", kind)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("results.date_taken desc").Find(&rs).Error
	return rs, err
}

// ListAnswers returns a result's answers in question order.
func (r *ResultRepository) ListAnswers(resultID uint) ([]model.Answer, error) {
	var ans []model.Answer
	err := r.DB.Preload("Question.Choices").Preload("SelectedChoice").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.result_id = ?", resultID).
		Order("questions.`order` asc, questions.id asc").
		Find(&ans).Error
	return ans, err
}

func (r *ResultRepository) CountPendingGrading(kind model.AssessmentKind) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Result{}).
		Joins("JOIN assessments ON assessments.id = results.assessment_id").
		Where("assessments.kind = ? AND results.is_completed = ? AND results.is_graded = ?", kind, true, false).
		Count(&n).Error
	return n, err
}
