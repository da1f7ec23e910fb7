package repository

import (
	"student_portal_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Subject").First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) List(kind model.AssessmentKind, page, limit int) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64
	query := r.DB.Model(&model.Assessment{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Subject").Order("created_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *AssessmentRepository) ListPublished(kind model.AssessmentKind) ([]model.Assessment, error) {
	var as []model.Assessment
	query := r.DB.Where("is_published = ? AND is_active = ?", true, true)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Preload("Subject").Order("created_at desc").Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) Recent(kind model.AssessmentKind, limit int) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("kind = ?", kind).Order("created_at desc").Limit(limit).Find(&as).Error
	return as, err
}

// ListQuestions returns the assessment's questions in grading order with
// their choices. Order ties break by insertion id.
func (r *AssessmentRepository) ListQuestions(assessmentID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id asc")
		}).
		Order("`order` asc, id asc").
		Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Choices").First(&q, id).Error
	return &q, err
}

func (r *AssessmentRepository) FindChoiceByID(id uint) (*model.Choice, error) {
	var c model.Choice
	err := r.DB.First(&c, id).Error
	return &c, err
}

// ReplaceQuestions saves the assessment and swaps its entire question set
// in one transaction. Existing questions, their choices and any answers
// that referenced them are deleted before the new set is inserted; the
// derived totals on the assessment are rewritten last. Historical results
// keep their snapshotted total_points.
func (r *AssessmentRepository) ReplaceQuestions(a *model.Assessment, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}

		var oldIDs []uint
		if err := tx.Model(&model.Question{}).
			Where("assessment_id = ?", a.ID).
			Pluck("id", &oldIDs).Error; err != nil {
			return err
		}

		if len(oldIDs) > 0 {
			if err := tx.Where("question_id IN ?", oldIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", oldIDs).Delete(&model.Choice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("assessment_id = ?", a.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		totalPoints := 0
		for i := range questions {
			questions[i].ID = 0
			questions[i].AssessmentID = a.ID
			choices := questions[i].Choices
			questions[i].Choices = nil
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
			for j := range choices {
				choices[j].ID = 0
				choices[j].QuestionID = questions[i].ID
				if err := tx.Create(&choices[j]).Error; err != nil {
					return err
				}
			}
			questions[i].Choices = choices
			totalPoints += questions[i].Points
		}

		a.TotalQuestions = len(questions)
		a.TotalPoints = totalPoints
		return tx.Model(&model.Assessment{}).Where("id = ?", a.ID).
			Updates(map[string]interface{}{
				"total_questions": a.TotalQuestions,
				"total_points":    a.TotalPoints,
			}).Error
	})
}

func (r *AssessmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).
			Where("assessment_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Choice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("assessment_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		var resultIDs []uint
		if err := tx.Model(&model.Result{}).
			Where("assessment_id = ?", id).
			Pluck("id", &resultIDs).Error; err != nil {
			return err
		}
		if len(resultIDs) > 0 {
			if err := tx.Where("result_id IN ?", resultIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("assessment_id = ?", id).Delete(&model.Result{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

func (r *AssessmentRepository) AverageScore(kind model.AssessmentKind) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.Result{}).
		Joins("JOIN assessments ON assessments.id = results.assessment_id").
		Where("assessments.kind = ?", kind).
		Select("AVG(results.score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
