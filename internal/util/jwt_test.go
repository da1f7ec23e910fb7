package util

import (
	"testing"
	"time"

	"student_portal_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "someone@example.com",
		Role:      model.Student,
	}

	token, err := GenerateJWT(user, "secret-key", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret-key")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "someone@example.com", claims.Email)
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}

	token, err := GenerateJWT(user, "secret-key", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-key")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}

	token, err := GenerateJWT(user, "secret-key", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-key")
	assert.Error(t, err)
}
