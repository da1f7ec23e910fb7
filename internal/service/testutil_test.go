package service

import (
	"testing"
	"time"

	"student_portal_backend/internal/config"
	"student_portal_backend/internal/model"
	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	DB  *gorm.DB
	Cfg *config.Config

	Users       *repository.UserRepository
	Students    *repository.StudentRepository
	Subjects    *repository.SubjectRepository
	Attendance  *repository.AttendanceRepository
	Assessments *repository.AssessmentRepository
	Results     *repository.ResultRepository

	Auth              *AuthService
	StudentService    *StudentService
	AttendanceService *AttendanceService
	AssessmentService *AssessmentService
	Submissions       *SubmissionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// :memory: gives every connection its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.Subject{},
		&model.AttendanceRecord{},
		&model.Assessment{},
		&model.Question{},
		&model.Choice{},
		&model.Result{},
		&model.Answer{},
	))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Assessment.UnansweredPolicy = util.UnansweredSkip
	cfg.Assessment.DashboardCacheTTL = time.Minute

	env := &testEnv{
		DB:          db,
		Cfg:         cfg,
		Users:       repository.NewUserRepository(db),
		Students:    repository.NewStudentRepository(db),
		Subjects:    repository.NewSubjectRepository(db),
		Attendance:  repository.NewAttendanceRepository(db),
		Assessments: repository.NewAssessmentRepository(db),
		Results:     repository.NewResultRepository(db),
	}
	env.Auth = NewAuthService(env.Users, env.Students, cfg)
	env.StudentService = NewStudentService(env.Students, env.Users)
	env.AttendanceService = NewAttendanceService(env.Attendance, env.Subjects, env.Students)
	env.AssessmentService = NewAssessmentService(env.Assessments, env.Subjects)
	env.Submissions = NewSubmissionService(env.Results, env.Assessments, cfg)

	return env
}

func (e *testEnv) createAdmin(t *testing.T) *model.User {
	t.Helper()
	hashed, err := HashPassword("admin-password")
	require.NoError(t, err)
	admin := &model.User{
		FirstName: "Ada",
		LastName:  "Santos",
		Email:     "admin@example.com",
		Password:  hashed,
		Role:      model.Admin,
	}
	require.NoError(t, e.Users.Create(admin))
	return admin
}

func (e *testEnv) createApprovedStudent(t *testing.T, email, number string) *model.StudentProfile {
	t.Helper()
	profile, err := e.StudentService.Register(RegisterStudentRequest{
		Email:         email,
		Password:      "student-password",
		FirstName:     "Juan",
		LastName:      "Dela Cruz",
		StudentNumber: number,
		Section:       "A",
		Course:        "BSIT",
	})
	require.NoError(t, err)
	require.NoError(t, e.StudentService.Approve(profile.ID))
	return profile
}

func (e *testEnv) createSubject(t *testing.T, name string) *model.Subject {
	t.Helper()
	subject, err := e.AssessmentService.CreateSubject(name)
	require.NoError(t, err)
	return subject
}

func intp(v int) *int { return &v }

// createQuiz builds a published quiz with one 5-point and one 10-point
// multiple choice question. The first choice of each question is correct.
func (e *testEnv) createQuiz(t *testing.T, admin *model.User) *model.Assessment {
	t.Helper()
	a, err := e.AssessmentService.Save(0, admin.ID, AssessmentRequest{
		Kind:  "quiz",
		Title: "Unit 1 Quiz",
		Questions: []QuestionRequest{
			{
				Type:    "multiple_choice",
				Content: "2 + 2 = ?",
				Points:  intp(5),
				Order:   1,
				Choices: []ChoiceRequest{
					{Text: "4", IsCorrect: true},
					{Text: "5"},
				},
			},
			{
				Type:    "multiple_choice",
				Content: "3 * 3 = ?",
				Points:  intp(10),
				Order:   2,
				Choices: []ChoiceRequest{
					{Text: "9", IsCorrect: true},
					{Text: "6"},
				},
			},
		},
	})
	require.NoError(t, err)
	return a
}
