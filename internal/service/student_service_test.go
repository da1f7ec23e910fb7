package service

import (
	"testing"

	"student_portal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerReq(email, number string) RegisterStudentRequest {
	return RegisterStudentRequest{
		Email:         email,
		Password:      "student-password",
		FirstName:     "Maria",
		LastName:      "Reyes",
		StudentNumber: number,
		Section:       "B",
		Course:        "BSCS",
		Birthday:      "2004-05-17",
	}
}

func TestRegister_CreatesPendingProfile(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.StudentService.Register(registerReq("maria@example.com", "2026-0100"))
	require.NoError(t, err)

	assert.False(t, profile.IsApproved)
	assert.NotNil(t, profile.Birthday)
	require.NotNil(t, profile.User)
	assert.NotEqual(t, "student-password", profile.User.Password)

	pending, err := env.StudentService.ListPending()
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.StudentService.Register(registerReq("maria@example.com", "2026-0100"))
	require.NoError(t, err)

	_, err = env.StudentService.Register(registerReq("maria@example.com", "2026-0101"))
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegister_DuplicateStudentNumberRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.StudentService.Register(registerReq("maria@example.com", "2026-0100"))
	require.NoError(t, err)

	_, err = env.StudentService.Register(registerReq("other@example.com", "2026-0100"))
	assert.ErrorIs(t, err, util.ErrStudentNumberTaken)
}

func TestApprove_UnlocksLogin(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.StudentService.Register(registerReq("maria@example.com", "2026-0100"))
	require.NoError(t, err)

	_, err = env.Auth.Login("maria@example.com", "student-password")
	assert.ErrorIs(t, err, util.ErrPendingApproval)

	require.NoError(t, env.StudentService.Approve(profile.ID))

	token, err := env.Auth.Login("maria@example.com", "student-password")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, env.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, claims.UserID)
}

func TestDecline_RemovesAccount(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.StudentService.Register(registerReq("maria@example.com", "2026-0100"))
	require.NoError(t, err)

	require.NoError(t, env.StudentService.Decline(profile.ID))

	_, err = env.StudentService.Get(profile.ID)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	// The login goes away with the profile.
	_, err = env.Auth.Login("maria@example.com", "student-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	pending, err := env.StudentService.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createApprovedStudent(t, "maria@example.com", "2026-0100")

	_, err := env.Auth.Login("maria@example.com", "not-the-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

// A wrong password on a pending account must not reveal the approval
// state, so the credential error wins over the approval error.
func TestLogin_WrongPasswordOnPendingAccount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.StudentService.Register(registerReq("maria@example.com", "2026-0100"))
	require.NoError(t, err)

	_, err = env.Auth.Login("maria@example.com", "not-the-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	profile := env.createApprovedStudent(t, "maria@example.com", "2026-0100")

	updated, err := env.StudentService.UpdateProfile(profile.UserID, UpdateProfileRequest{
		Phone:   "09171234567",
		Section: "C",
	})
	require.NoError(t, err)

	assert.Equal(t, "09171234567", updated.Phone)
	assert.Equal(t, "C", updated.Section)
	// Untouched fields keep their values.
	assert.Equal(t, "2026-0100", updated.StudentNumber)
	assert.Equal(t, "Juan", updated.User.FirstName)
}
