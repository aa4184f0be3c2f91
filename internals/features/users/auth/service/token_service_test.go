package service

import (
	"testing"
	"time"

	userModel "presensiku_backend/internals/features/users/users/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rahasia-test"

func studentUser() *userModel.UserModel {
	classID := uuid.New()
	roll := "12"
	return &userModel.UserModel{
		ID:         uuid.New(),
		UserName:   "Absen 12",
		Role:       "student",
		ClassID:    &classID,
		RollNumber: &roll,
		IsActive:   true,
	}
}

func TestIssueAndParseAccessToken(t *testing.T) {
	u := studentUser()
	now := time.Now()

	tok, exp, err := IssueAccessToken(testSecret, u, now, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)

	cl, err := ParseAccessToken(testSecret, tok)
	require.NoError(t, err)
	id, err := cl.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "student", cl.Role)
	assert.Equal(t, u.ClassID.String(), cl.ClassID)
	assert.Equal(t, "12", cl.RollNumber)
	assert.NotEmpty(t, cl.ID)
}

func TestAdminTokenHasNoClass(t *testing.T) {
	email := "admin@sekolah.id"
	u := &userModel.UserModel{ID: uuid.New(), UserName: "Admin", Email: &email, Role: "admin"}

	tok, _, err := IssueAccessToken(testSecret, u, time.Now(), time.Hour)
	require.NoError(t, err)
	cl, err := ParseAccessToken(testSecret, tok)
	require.NoError(t, err)
	assert.Empty(t, cl.ClassID)
	assert.Empty(t, cl.RollNumber)
}

func TestParseAccessToken_Expired(t *testing.T) {
	tok, _, err := IssueAccessToken(testSecret, studentUser(), time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	tok, _, err := IssueAccessToken(testSecret, studentUser(), time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken("lain", tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseAccessToken(testSecret, "bukan.jwt.valid")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssueAccessToken_EmptySecret(t *testing.T) {
	_, _, err := IssueAccessToken("  ", studentUser(), time.Now(), time.Hour)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.NoError(t, CheckPasswordHash(hash, "123456"))
	assert.ErrorIs(t, CheckPasswordHash(hash, "654321"), ErrWrongCredential)
	assert.ErrorIs(t, CheckPasswordHash("", "123456"), ErrWrongCredential)
}
