package service

import (
	"errors"
	"time"

	"student_portal_backend/internal/model"
	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/util"

	"gorm.io/gorm"
)

type StudentService struct {
	Repo     *repository.StudentRepository
	UserRepo *repository.UserRepository
}

func NewStudentService(repo *repository.StudentRepository, userRepo *repository.UserRepository) *StudentService {
	return &StudentService{Repo: repo, UserRepo: userRepo}
}

type RegisterStudentRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	MiddleName    string `json:"middleName"`
	StudentNumber string `json:"studentNumber" binding:"required"`
	Section       string `json:"section" binding:"required"`
	Course        string `json:"course"`
	Birthday      string `json:"birthday"` // YYYY-MM-DD
	Phone         string `json:"phone"`
}

// Register creates the account and an unapproved profile. The student
// cannot log in until an admin approves the enrollment.
func (s *StudentService) Register(req RegisterStudentRequest) (*model.StudentProfile, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.Repo.FindByStudentNumber(req.StudentNumber); err == nil {
		return nil, util.ErrStudentNumberTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		Role:      model.Student,
	}

	profile := &model.StudentProfile{
		MiddleName:     req.MiddleName,
		StudentNumber:  req.StudentNumber,
		Section:        req.Section,
		Course:         req.Course,
		Phone:          req.Phone,
		IsApproved:     false,
		DateRegistered: time.Now(),
	}
	if req.Birthday != "" {
		if bd, err := time.Parse(util.DateFormat, req.Birthday); err == nil {
			profile.Birthday = &bd
		}
	}

	if err := s.Repo.CreateWithUser(user, profile); err != nil {
		return nil, err
	}
	profile.User = user
	return profile, nil
}

func (s *StudentService) List(page, limit int) ([]model.StudentProfile, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *StudentService) ListPending() ([]model.StudentProfile, error) {
	return s.Repo.ListPending()
}

func (s *StudentService) Get(id uint) (*model.StudentProfile, error) {
	p, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	return p, err
}

func (s *StudentService) GetByUserID(userID uint) (*model.StudentProfile, error) {
	p, err := s.Repo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	return p, err
}

// Approve marks the enrollment accepted; Decline removes the pending
// profile together with its login.
func (s *StudentService) Approve(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Approve(id)
}

func (s *StudentService) Decline(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Decline(id)
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Section   string `json:"section"`
	Course    string `json:"course"`
	Birthday  string `json:"birthday"`
}

func (s *StudentService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.StudentProfile, error) {
	profile, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	user := profile.User
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Section != "" {
		profile.Section = req.Section
	}
	if req.Course != "" {
		profile.Course = req.Course
	}
	if req.Birthday != "" {
		if bd, err := time.Parse(util.DateFormat, req.Birthday); err == nil {
			profile.Birthday = &bd
		}
	}
	if err := s.Repo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
