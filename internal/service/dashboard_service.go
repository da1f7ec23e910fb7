package service

import (
	"context"
	"encoding/json"
	"time"

	"student_portal_backend/internal/config"
	"student_portal_backend/internal/model"
	"student_portal_backend/internal/repository"
	"student_portal_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const adminDashboardKey = "dashboard:admin"

type DashboardService struct {
	StudentRepo    *repository.StudentRepository
	AttendanceRepo *repository.AttendanceRepository
	AssessmentRepo *repository.AssessmentRepository
	ResultRepo     *repository.ResultRepository
	Redis          *redis.Client
	Cfg            *config.Config
}

func NewDashboardService(
	studentRepo *repository.StudentRepository,
	attendanceRepo *repository.AttendanceRepository,
	assessmentRepo *repository.AssessmentRepository,
	resultRepo *repository.ResultRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *DashboardService {
	return &DashboardService{
		StudentRepo:    studentRepo,
		AttendanceRepo: attendanceRepo,
		AssessmentRepo: assessmentRepo,
		ResultRepo:     resultRepo,
		Redis:          rdb,
		Cfg:            cfg,
	}
}

type KindSummary struct {
	PendingGrading int64   `json:"pendingGrading"`
	AverageScore   float64 `json:"averageScore"`
}

type AdminDashboard struct {
	TotalStudents    int64              `json:"totalStudents"`
	PendingApprovals int                `json:"pendingApprovals"`
	PresentToday     int64              `json:"presentToday"`
	Quizzes          KindSummary        `json:"quizzes"`
	Exams            KindSummary        `json:"exams"`
	RecentQuizzes    []model.Assessment `json:"recentQuizzes"`
	RecentExams      []model.Assessment `json:"recentExams"`
	GeneratedAt      time.Time          `json:"generatedAt"`
}

// AdminOverview aggregates the admin landing-page numbers. The payload is
// cached in Redis for a short TTL; a cache miss or a Redis outage just
// falls through to the database.
func (s *DashboardService) AdminOverview(ctx context.Context) (*AdminDashboard, error) {
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, adminDashboardKey).Result(); err == nil {
			var cached AdminDashboard
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	dash, err := s.buildAdminOverview()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(dash); err == nil {
			if err := s.Redis.Set(ctx, adminDashboardKey, payload, s.Cfg.Assessment.DashboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return dash, nil
}

func (s *DashboardService) buildAdminOverview() (*AdminDashboard, error) {
	dash := &AdminDashboard{GeneratedAt: time.Now()}

	total, err := s.StudentRepo.Count()
	if err != nil {
		return nil, err
	}
	dash.TotalStudents = total

	pending, err := s.StudentRepo.ListPending()
	if err != nil {
		return nil, err
	}
	dash.PendingApprovals = len(pending)

	present, err := s.AttendanceRepo.CountPresentStudentsOn(time.Now())
	if err != nil {
		return nil, err
	}
	dash.PresentToday = present

	for _, kind := range []model.AssessmentKind{model.KindQuiz, model.KindExam} {
		pendingGrading, err := s.ResultRepo.CountPendingGrading(kind)
		if err != nil {
			return nil, err
		}
		avg, err := s.AssessmentRepo.AverageScore(kind)
		if err != nil {
			return nil, err
		}
		recent, err := s.AssessmentRepo.Recent(kind, 5)
		if err != nil {
			return nil, err
		}
		summary := KindSummary{PendingGrading: pendingGrading, AverageScore: avg}
		if kind == model.KindQuiz {
			dash.Quizzes = summary
			dash.RecentQuizzes = recent
		} else {
			dash.Exams = summary
			dash.RecentExams = recent
		}
	}
	return dash, nil
}

type StudentDashboard struct {
	Profile          *model.StudentProfile    `json:"profile"`
	AttendanceRate   float64                  `json:"attendanceRate"`
	RecentAttendance []model.AttendanceRecord `json:"recentAttendance"`
	RecentResults    []model.Result           `json:"recentResults"`
}

// StudentOverview builds the per-student landing page: profile, overall
// attendance percentage and the latest attendance and result rows.
func (s *DashboardService) StudentOverview(studentID uint) (*StudentDashboard, error) {
	profile, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	counts, err := s.AttendanceRepo.CountByStatus(repository.AttendanceFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	var totalRecords int64
	for _, n := range counts {
		totalRecords += n
	}
	rate := 0.0
	if totalRecords > 0 {
		rate = float64(counts[model.Present]) / float64(totalRecords) * 100
	}

	recentAttendance, _, err := s.AttendanceRepo.List(repository.AttendanceFilter{StudentID: studentID}, 1, 5)
	if err != nil {
		return nil, err
	}
	recentResults, err := s.ResultRepo.ListByStudent(studentID, "", 5)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		Profile:          profile,
		AttendanceRate:   rate,
		RecentAttendance: recentAttendance,
		RecentResults:    recentResults,
	}, nil
}
