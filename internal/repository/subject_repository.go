package repository

import (
	"student_portal_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(s *model.Subject) error {
	return r.DB.Create(s).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var s model.Subject
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SubjectRepository) ListAll() ([]model.Subject, error) {
	var ss []model.Subject
	err := r.DB.Order("name asc").Find(&ss).Error
	return ss, err
}

func (r *SubjectRepository) Update(s *model.Subject) error {
	return r.DB.Save(s).Error
}

func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}
