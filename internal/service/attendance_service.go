package service

import (
	"errors"
	"time"

	"student_portal_backend/internal/model"
	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/util"

	"gorm.io/gorm"
)

type AttendanceService struct {
	Repo        *repository.AttendanceRepository
	SubjectRepo *repository.SubjectRepository
	StudentRepo *repository.StudentRepository
}

func NewAttendanceService(repo *repository.AttendanceRepository, subjectRepo *repository.SubjectRepository, studentRepo *repository.StudentRepository) *AttendanceService {
	return &AttendanceService{Repo: repo, SubjectRepo: subjectRepo, StudentRepo: studentRepo}
}

type AttendanceRequest struct {
	StudentID uint   `json:"studentId" binding:"required"`
	SubjectID uint   `json:"subjectId" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Status    string `json:"status" binding:"required,oneof=Present Absent Late"`
	Remarks   string `json:"remarks"`
}

func (s *AttendanceService) Add(req AttendanceRequest) (*model.AttendanceRecord, error) {
	if _, err := s.StudentRepo.FindByID(req.StudentID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	} else if err != nil {
		return nil, err
	}
	if _, err := s.SubjectRepo.FindByID(req.SubjectID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubjectNotFound
	} else if err != nil {
		return nil, err
	}

	if _, err := time.Parse(util.DateFormat, req.Date); err != nil {
		return nil, err
	}

	rec := &model.AttendanceRecord{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Date:      req.Date,
		Status:    model.AttendanceStatus(req.Status),
		Remarks:   req.Remarks,
	}
	if err := s.Repo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type BulkAttendanceRequest struct {
	StudentIDs []uint `json:"studentIds" binding:"required,min=1"`
	SubjectID  uint   `json:"subjectId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=Present Absent Late"`
	Remarks    string `json:"remarks"`
}

// BulkAdd records the same subject/date/status for every listed student.
func (s *AttendanceService) BulkAdd(req BulkAttendanceRequest) (int, error) {
	if _, err := s.SubjectRepo.FindByID(req.SubjectID); errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.ErrSubjectNotFound
	} else if err != nil {
		return 0, err
	}

	if _, err := time.Parse(util.DateFormat, req.Date); err != nil {
		return 0, err
	}

	recs := make([]model.AttendanceRecord, 0, len(req.StudentIDs))
	for _, studentID := range req.StudentIDs {
		if _, err := s.StudentRepo.FindByID(studentID); errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrStudentNotFound
		} else if err != nil {
			return 0, err
		}
		recs = append(recs, model.AttendanceRecord{
			StudentID: studentID,
			SubjectID: req.SubjectID,
			Date:      req.Date,
			Status:    model.AttendanceStatus(req.Status),
			Remarks:   req.Remarks,
		})
	}

	if err := s.Repo.BulkCreate(recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

func (s *AttendanceService) Update(id uint, req AttendanceRequest) (*model.AttendanceRecord, error) {
	rec, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttendanceNotFound
	} else if err != nil {
		return nil, err
	}

	if _, err := time.Parse(util.DateFormat, req.Date); err != nil {
		return nil, err
	}

	rec.StudentID = req.StudentID
	rec.SubjectID = req.SubjectID
	rec.Date = req.Date
	rec.Status = model.AttendanceStatus(req.Status)
	rec.Remarks = req.Remarks
	if err := s.Repo.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *AttendanceService) Delete(id uint) error {
	return s.Repo.Delete(id)
}

// AttendanceStats mirrors the numbers shown above every attendance list.
type AttendanceStats struct {
	Total             int64   `json:"total"`
	PresentCount      int64   `json:"presentCount"`
	AbsentCount       int64   `json:"absentCount"`
	LateCount         int64   `json:"lateCount"`
	PresentPercentage float64 `json:"presentPercentage"`
	AbsentPercentage  float64 `json:"absentPercentage"`
	LatePercentage    float64 `json:"latePercentage"`
}

type AttendanceListResponse struct {
	Records []model.AttendanceRecord `json:"records"`
	Total   int64                    `json:"total"`
	Stats   AttendanceStats          `json:"stats"`
}

func (s *AttendanceService) List(f repository.AttendanceFilter, page, limit int) (*AttendanceListResponse, error) {
	recs, total, err := s.Repo.List(f, page, limit)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(f)
	if err != nil {
		return nil, err
	}
	return &AttendanceListResponse{Records: recs, Total: total, Stats: *stats}, nil
}

func (s *AttendanceService) Stats(f repository.AttendanceFilter) (*AttendanceStats, error) {
	counts, err := s.Repo.CountByStatus(f)
	if err != nil {
		return nil, err
	}

	stats := &AttendanceStats{
		PresentCount: counts[model.Present],
		AbsentCount:  counts[model.Absent],
		LateCount:    counts[model.Late],
	}
	stats.Total = stats.PresentCount + stats.AbsentCount + stats.LateCount
	if stats.Total > 0 {
		stats.PresentPercentage = float64(stats.PresentCount) / float64(stats.Total) * 100
		stats.AbsentPercentage = float64(stats.AbsentCount) / float64(stats.Total) * 100
		stats.LatePercentage = float64(stats.LateCount) / float64(stats.Total) * 100
	}
	return stats, nil
}

// StudentList scopes the listing to one student's own records.
func (s *AttendanceService) StudentList(studentID uint, f repository.AttendanceFilter, page, limit int) (*AttendanceListResponse, error) {
	f.StudentID = studentID
	return s.List(f, page, limit)
}
