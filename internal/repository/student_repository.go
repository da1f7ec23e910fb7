package repository

import (
	"student_portal_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

// CreateWithUser persists the account and its profile together so a failed
// profile insert never leaves an orphaned login.
func (r *StudentRepository) CreateWithUser(user *model.User, profile *model.StudentProfile) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *StudentRepository) FindByID(id uint) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.DB.Preload("User").First(&p, id).Error
	return &p, err
}

func (r *StudentRepository) FindByUserID(userID uint) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.DB.Preload("User").Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *StudentRepository) FindByStudentNumber(number string) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.DB.Where("student_number = ?", number).First(&p).Error
	return &p, err
}

func (r *StudentRepository) List(page, limit int) ([]model.StudentProfile, int64, error) {
	var ps []model.StudentProfile
	var total int64
	query := r.DB.Model(&model.StudentProfile{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("User").
		Joins("JOIN users ON users.id = student_profiles.user_id").
		Order("users.last_name asc").
		Offset(offset).Limit(limit).
		Find(&ps).Error
	return ps, total, err
}

func (r *StudentRepository) ListPending() ([]model.StudentProfile, error) {
	var ps []model.StudentProfile
	err := r.DB.Preload("User").
		Where("is_approved = ?", false).
		Order("date_registered desc").
		Find(&ps).Error
	return ps, err
}

func (r *StudentRepository) Update(profile *model.StudentProfile) error {
	return r.DB.Save(profile).Error
}

func (r *StudentRepository) Approve(id uint) error {
	return r.DB.Model(&model.StudentProfile{}).Where("id = ?", id).Update("is_approved", true).Error
}

// Decline removes both the profile and its user account.
func (r *StudentRepository) Decline(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var p model.StudentProfile
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.StudentProfile{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, p.UserID).Error
	})
}

func (r *StudentRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.StudentProfile{}).Count(&n).Error
	return n, err
}
