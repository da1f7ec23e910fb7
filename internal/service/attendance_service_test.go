package service

import (
	"testing"

	"student_portal_backend/internal/repository"
	"student_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendance_AddAndStats(t *testing.T) {
	env := newTestEnv(t)
	subject := env.createSubject(t, "Mathematics")
	s1 := env.createApprovedStudent(t, "a@example.com", "2026-0001")
	s2 := env.createApprovedStudent(t, "b@example.com", "2026-0002")

	for _, rec := range []AttendanceRequest{
		{StudentID: s1.ID, SubjectID: subject.ID, Date: "2026-09-01", Status: "Present"},
		{StudentID: s2.ID, SubjectID: subject.ID, Date: "2026-09-01", Status: "Absent"},
		{StudentID: s1.ID, SubjectID: subject.ID, Date: "2026-09-02", Status: "Late", Remarks: "traffic"},
		{StudentID: s2.ID, SubjectID: subject.ID, Date: "2026-09-02", Status: "Present"},
	} {
		_, err := env.AttendanceService.Add(rec)
		require.NoError(t, err)
	}

	stats, err := env.AttendanceService.Stats(repository.AttendanceFilter{SubjectID: subject.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.PresentCount)
	assert.Equal(t, int64(1), stats.AbsentCount)
	assert.Equal(t, int64(1), stats.LateCount)
	assert.InDelta(t, 50.0, stats.PresentPercentage, 0.001)
	assert.InDelta(t, 25.0, stats.AbsentPercentage, 0.001)
	assert.InDelta(t, 25.0, stats.LatePercentage, 0.001)
}

func TestAttendance_DateFilter(t *testing.T) {
	env := newTestEnv(t)
	subject := env.createSubject(t, "Science")
	s1 := env.createApprovedStudent(t, "a@example.com", "2026-0001")

	for _, date := range []string{"2026-09-01", "2026-09-02"} {
		_, err := env.AttendanceService.Add(AttendanceRequest{
			StudentID: s1.ID, SubjectID: subject.ID, Date: date, Status: "Present",
		})
		require.NoError(t, err)
	}

	resp, err := env.AttendanceService.List(repository.AttendanceFilter{Date: "2026-09-01"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "2026-09-01", resp.Records[0].Date)
	assert.Equal(t, int64(1), resp.Stats.Total)
}

func TestAttendance_BulkAdd(t *testing.T) {
	env := newTestEnv(t)
	subject := env.createSubject(t, "English")
	s1 := env.createApprovedStudent(t, "a@example.com", "2026-0001")
	s2 := env.createApprovedStudent(t, "b@example.com", "2026-0002")

	n, err := env.AttendanceService.BulkAdd(BulkAttendanceRequest{
		StudentIDs: []uint{s1.ID, s2.ID},
		SubjectID:  subject.ID,
		Date:       "2026-09-01",
		Status:     "Present",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stats, err := env.AttendanceService.Stats(repository.AttendanceFilter{Date: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.PresentCount)
}

func TestAttendance_BulkAddUnknownStudent(t *testing.T) {
	env := newTestEnv(t)
	subject := env.createSubject(t, "Filipino")

	_, err := env.AttendanceService.BulkAdd(BulkAttendanceRequest{
		StudentIDs: []uint{12345},
		SubjectID:  subject.ID,
		Date:       "2026-09-01",
		Status:     "Present",
	})
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestAttendance_StudentListScoped(t *testing.T) {
	env := newTestEnv(t)
	subject := env.createSubject(t, "History")
	s1 := env.createApprovedStudent(t, "a@example.com", "2026-0001")
	s2 := env.createApprovedStudent(t, "b@example.com", "2026-0002")

	_, err := env.AttendanceService.Add(AttendanceRequest{
		StudentID: s1.ID, SubjectID: subject.ID, Date: "2026-09-01", Status: "Present",
	})
	require.NoError(t, err)
	_, err = env.AttendanceService.Add(AttendanceRequest{
		StudentID: s2.ID, SubjectID: subject.ID, Date: "2026-09-01", Status: "Absent",
	})
	require.NoError(t, err)

	// The requested filter cannot widen the scope past the student's own rows.
	resp, err := env.AttendanceService.StudentList(s1.ID, repository.AttendanceFilter{StudentID: s2.ID}, 1, 20)
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, s1.ID, resp.Records[0].StudentID)
}

func TestAttendance_InvalidDateRejected(t *testing.T) {
	env := newTestEnv(t)
	subject := env.createSubject(t, "Arts")
	s1 := env.createApprovedStudent(t, "a@example.com", "2026-0001")

	_, err := env.AttendanceService.Add(AttendanceRequest{
		StudentID: s1.ID, SubjectID: subject.ID, Date: "01-09-2026", Status: "Present",
	})
	assert.Error(t, err)
}
