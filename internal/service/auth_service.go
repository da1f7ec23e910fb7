package service

import (
	"errors"

	"student_portal_backend/internal/config"
	"student_portal_backend/internal/model"
	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	StudentRepo *repository.StudentRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		StudentRepo: studentRepo,
		Cfg:         cfg,
	}
}

// Login authenticates by email and password. Students whose enrollment has
// not been approved yet are refused even with valid credentials.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	// The approval gate only answers after the password checks out, so an
	// unauthenticated caller cannot learn an account's enrollment state.
	if user.Role == model.Student {
		profile, err := s.StudentRepo.FindByUserID(user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		if err == nil && !profile.IsApproved {
			return "", util.ErrPendingApproval
		}
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetUser(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
