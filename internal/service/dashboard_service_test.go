package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(env *testEnv) *DashboardService {
	// Redis is optional; without it every call hits the database.
	return NewDashboardService(env.Students, env.Attendance, env.Assessments, env.Results, nil, env.Cfg)
}

func TestAdminOverview(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)
	subject := env.createSubject(t, "Mathematics")

	s1 := env.createApprovedStudent(t, "a@example.com", "2026-0001")
	env.createApprovedStudent(t, "b@example.com", "2026-0002")
	_, err := env.StudentService.Register(registerReq("pending@example.com", "2026-0003"))
	require.NoError(t, err)

	today := time.Now().Format("2006-01-02")
	_, err = env.AttendanceService.Add(AttendanceRequest{
		StudentID: s1.ID, SubjectID: subject.ID, Date: today, Status: "Present",
	})
	require.NoError(t, err)

	quiz := env.createQuiz(t, admin)
	_, err = env.Submissions.Submit(s1.ID, SubmitRequest{AssessmentID: quiz.ID})
	require.NoError(t, err)

	exam := createMixedExam(t, env, admin)
	_, err = env.Submissions.Submit(s1.ID, SubmitRequest{AssessmentID: exam.ID})
	require.NoError(t, err)

	dash, err := newDashboard(env).AdminOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), dash.TotalStudents)
	assert.Equal(t, 1, dash.PendingApprovals)
	assert.Equal(t, int64(1), dash.PresentToday)
	// Both results await explicit grading; auto scoring alone never
	// flips is_graded.
	assert.Equal(t, int64(1), dash.Quizzes.PendingGrading)
	assert.Equal(t, int64(1), dash.Exams.PendingGrading)
	assert.Len(t, dash.RecentQuizzes, 1)
	assert.Len(t, dash.RecentExams, 1)
}

func TestStudentOverview(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)
	subject := env.createSubject(t, "Science")
	student := env.createApprovedStudent(t, "a@example.com", "2026-0001")

	for _, rec := range []AttendanceRequest{
		{StudentID: student.ID, SubjectID: subject.ID, Date: "2026-09-01", Status: "Present"},
		{StudentID: student.ID, SubjectID: subject.ID, Date: "2026-09-02", Status: "Present"},
		{StudentID: student.ID, SubjectID: subject.ID, Date: "2026-09-03", Status: "Absent"},
		{StudentID: student.ID, SubjectID: subject.ID, Date: "2026-09-04", Status: "Late"},
	} {
		_, err := env.AttendanceService.Add(rec)
		require.NoError(t, err)
	}

	quiz := env.createQuiz(t, admin)
	_, err := env.Submissions.Submit(student.ID, SubmitRequest{AssessmentID: quiz.ID})
	require.NoError(t, err)

	dash, err := newDashboard(env).StudentOverview(student.ID)
	require.NoError(t, err)

	assert.Equal(t, student.ID, dash.Profile.ID)
	assert.InDelta(t, 50.0, dash.AttendanceRate, 0.001)
	assert.Len(t, dash.RecentAttendance, 4)
	assert.Len(t, dash.RecentResults, 1)
}
