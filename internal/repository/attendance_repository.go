package repository

import (
	"time"

	"student_portal_backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// AttendanceFilter narrows list queries; zero values mean "no filter".
type AttendanceFilter struct {
	StudentID uint
	SubjectID uint
	Date      string
	Status    model.AttendanceStatus
}

func (r *AttendanceRepository) Create(rec *model.AttendanceRecord) error {
	return r.DB.Create(rec).Error
}

// BulkCreate inserts one record per student in a single transaction.
func (r *AttendanceRepository) BulkCreate(recs []model.AttendanceRecord) error {
	if len(recs) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&recs).Error
	})
}

func (r *AttendanceRepository) FindByID(id uint) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := r.DB.Preload("Student.User").Preload("Subject").First(&rec, id).Error
	return &rec, err
}

func (r *AttendanceRepository) Update(rec *model.AttendanceRecord) error {
	return r.DB.Save(rec).Error
}

func (r *AttendanceRepository) Delete(id uint) error {
	return r.DB.Delete(&model.AttendanceRecord{}, id).Error
}

func (r *AttendanceRepository) filtered(f AttendanceFilter) *gorm.DB {
	query := r.DB.Model(&model.AttendanceRecord{})
	if f.StudentID > 0 {
		query = query.Where("student_id = ?", f.StudentID)
	}
	if f.SubjectID > 0 {
		query = query.Where("subject_id = ?", f.SubjectID)
	}
	if f.Date != "" {
		query = query.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	return query
}

func (r *AttendanceRepository) List(f AttendanceFilter, page, limit int) ([]model.AttendanceRecord, int64, error) {
	var recs []model.AttendanceRecord
	var total int64
	query := r.filtered(f)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Student.User").Preload("Subject").
		Order("date desc, id desc").
		Offset(offset).Limit(limit).
		Find(&recs).Error
	return recs, total, err
}

// CountByStatus returns present/absent/late counts under the same filter
// the listing uses, so the header numbers always match the rows shown.
func (r *AttendanceRepository) CountByStatus(f AttendanceFilter) (map[model.AttendanceStatus]int64, error) {
	type row struct {
		Status model.AttendanceStatus
		N      int64
	}
	var rows []row
	err := r.filtered(f).
		Select("status, COUNT(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.AttendanceStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}

// CountPresentStudentsOn counts distinct students marked present on a date.
func (r *AttendanceRepository) CountPresentStudentsOn(date time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&model.AttendanceRecord{}).
		Where("date = ? AND status = ?", date.Format("2006-01-02"), model.Present).
		Distinct("student_id").
		Count(&n).Error
	return n, err
}

func (r *AttendanceRepository) Recent(limit int) ([]model.AttendanceRecord, error) {
	var recs []model.AttendanceRecord
	err := r.DB.Preload("Student.User").Preload("Subject").
		Order("date desc, id desc").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
