package service

import (
	"testing"

	"student_portal_backend/internal/model"
	"student_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_ComputesTotals(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)

	a, err := env.AssessmentService.Save(0, admin.ID, AssessmentRequest{
		Kind:  "quiz",
		Title: "Totals",
		Questions: []QuestionRequest{
			{
				Type:    "multiple_choice",
				Content: "q1",
				Choices: []ChoiceRequest{{Text: "a", IsCorrect: true}},
				// Points omitted: defaults to 1.
			},
			{
				Type:    "multiple_choice",
				Content: "q2",
				Points:  intp(0), // explicit zero is kept
				Choices: []ChoiceRequest{{Text: "a", IsCorrect: true}},
			},
			{
				Type:          "short_answer",
				Content:       "q3",
				Points:        intp(7),
				CorrectAnswer: "seven",
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, a.TotalQuestions)
	assert.Equal(t, 8, a.TotalPoints)
	assert.True(t, a.IsPublished)
	assert.True(t, a.IsActive)
	assert.Equal(t, 30, a.TimeLimit)
	assert.Equal(t, admin.ID, a.CreatedByID)
}

func TestSave_ShortAnswerGetsSyntheticChoice(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)

	a, err := env.AssessmentService.Save(0, admin.ID, AssessmentRequest{
		Kind:  "exam",
		Title: "Essay",
		Questions: []QuestionRequest{
			{
				Type:          "short_answer",
				Content:       "Define osmosis.",
				CorrectAnswer: "Diffusion of water through a membrane",
			},
		},
	})
	require.NoError(t, err)

	questions, err := env.Assessments.ListQuestions(a.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Len(t, questions[0].Choices, 1)
	assert.True(t, questions[0].Choices[0].IsCorrect)
	assert.Equal(t, "Diffusion of water through a membrane", questions[0].Choices[0].Text)
}

func TestSave_EmptyMultipleChoiceRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)

	_, err := env.AssessmentService.Save(0, admin.ID, AssessmentRequest{
		Kind:  "quiz",
		Title: "Broken",
		Questions: []QuestionRequest{
			{Type: "multiple_choice", Content: "no choices"},
		},
	})
	assert.ErrorIs(t, err, util.ErrEmptyQuestionSet)
}

func TestSave_ReplacesQuestionSet(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)
	quiz := env.createQuiz(t, admin)

	oldQuestions, err := env.Assessments.ListQuestions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, oldQuestions, 2)

	updated, err := env.AssessmentService.Save(quiz.ID, admin.ID, AssessmentRequest{
		Kind:  "quiz",
		Title: "Unit 1 Quiz, revised",
		Questions: []QuestionRequest{
			{
				Type:    "multiple_choice",
				Content: "only question",
				Points:  intp(3),
				Choices: []ChoiceRequest{{Text: "x", IsCorrect: true}, {Text: "y"}},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, updated.ID)
	assert.Equal(t, 1, updated.TotalQuestions)
	assert.Equal(t, 3, updated.TotalPoints)
	assert.Equal(t, "Unit 1 Quiz, revised", updated.Title)

	newQuestions, err := env.Assessments.ListQuestions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, newQuestions, 1)
	assert.NotEqual(t, oldQuestions[0].ID, newQuestions[0].ID)

	// The old rows are gone, not just detached.
	var count int64
	require.NoError(t, env.DB.Model(&model.Question{}).
		Where("id IN ?", []uint{oldQuestions[0].ID, oldQuestions[1].ID}).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestSave_EditDeletesStaleAnswers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)
	student := env.createApprovedStudent(t, "s1@example.com", "2026-0001")
	quiz := env.createQuiz(t, admin)

	questions, err := env.Assessments.ListQuestions(quiz.ID)
	require.NoError(t, err)

	result, err := env.Submissions.Submit(student.ID, SubmitRequest{
		AssessmentID: quiz.ID,
		Answers: map[uint]AnswerPayload{
			questions[0].ID: {ChoiceID: questions[0].Choices[0].ID},
		},
	})
	require.NoError(t, err)

	_, err = env.AssessmentService.Save(quiz.ID, admin.ID, AssessmentRequest{
		Kind:  "quiz",
		Title: "Replaced",
		Questions: []QuestionRequest{
			{
				Type:    "multiple_choice",
				Content: "fresh",
				Choices: []ChoiceRequest{{Text: "a", IsCorrect: true}},
			},
		},
	})
	require.NoError(t, err)

	// No answer rows survive pointing at deleted questions.
	var count int64
	require.NoError(t, env.DB.Model(&model.Answer{}).
		Where("result_id = ?", result.ID).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestQuestionsForStudent_HidesAnswerKeys(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)

	a, err := env.AssessmentService.Save(0, admin.ID, AssessmentRequest{
		Kind:  "exam",
		Title: "Finals",
		Questions: []QuestionRequest{
			{
				Type:    "multiple_choice",
				Content: "pick one",
				Order:   1,
				Choices: []ChoiceRequest{{Text: "right", IsCorrect: true}, {Text: "wrong"}},
			},
			{
				Type:          "short_answer",
				Content:       "write",
				Order:         2,
				CorrectAnswer: "the secret key",
			},
		},
	})
	require.NoError(t, err)

	_, view, err := env.AssessmentService.QuestionsForStudent(a.ID)
	require.NoError(t, err)
	require.Len(t, view, 2)

	assert.Len(t, view[0].Choices, 2)
	// Short answer questions expose no choices at all, so the accepted
	// answer text never leaves the server.
	assert.Empty(t, view[1].Choices)
}

func TestQuestionsForStudent_UnpublishedBlocked(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)
	quiz := env.createQuiz(t, admin)

	require.NoError(t, env.DB.Model(&model.Assessment{}).
		Where("id = ?", quiz.ID).
		Update("is_published", false).Error)

	_, _, err := env.AssessmentService.QuestionsForStudent(quiz.ID)
	assert.ErrorIs(t, err, util.ErrAssessmentUnavailable)
}

func TestDelete_CascadesResults(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t)
	student := env.createApprovedStudent(t, "s1@example.com", "2026-0001")
	quiz := env.createQuiz(t, admin)

	result, err := env.Submissions.Submit(student.ID, SubmitRequest{AssessmentID: quiz.ID})
	require.NoError(t, err)

	require.NoError(t, env.AssessmentService.Delete(quiz.ID))

	_, err = env.AssessmentService.Get(quiz.ID)
	assert.ErrorIs(t, err, util.ErrAssessmentNotFound)

	var count int64
	require.NoError(t, env.DB.Model(&model.Result{}).
		Where("id = ?", result.ID).
		Count(&count).Error)
	assert.Zero(t, count)
}
