package util

import (
	"testing"
	"time"

	"gradebook_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret-0123456789"

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		Name:  "Tina",
		Email: "tina@example.com",
		Role:  model.Teacher,
	}
	user.ID = 42

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
	assert.Equal(t, "tina@example.com", claims.Email)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Email: "tina@example.com", Role: model.Teacher}
	user.ID = 1

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "some-other-secret")
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	user := &model.User{Email: "tina@example.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}
