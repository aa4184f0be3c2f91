package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStudentLoginRequest_Validate(t *testing.T) {
	v := validator.New()
	classID := uuid.New()

	assert.NoError(t, v.Struct(StudentLoginRequest{ClassID: classID, RollNumber: "7", Pin: "1234"}))
	assert.Error(t, v.Struct(StudentLoginRequest{RollNumber: "7", Pin: "1234"}))
	assert.Error(t, v.Struct(StudentLoginRequest{ClassID: classID, RollNumber: "7", Pin: "12"}))
	assert.Error(t, v.Struct(StudentLoginRequest{ClassID: classID, RollNumber: "7", Pin: "12ab"}))
	assert.Error(t, v.Struct(StudentLoginRequest{ClassID: classID, Pin: "1234"}))
}

func TestChangePinRequest_Mismatch(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(ChangePinRequest{CurrentPin: "1111", Pin: "2468", ConfirmPin: "2468"}))

	err := v.Struct(ChangePinRequest{CurrentPin: "1111", Pin: "2468", ConfirmPin: "2469"})
	var ve validator.ValidationErrors
	if assert.ErrorAs(t, err, &ve) {
		assert.Equal(t, "ConfirmPin", ve[0].Field())
		assert.Equal(t, "eqfield", ve[0].Tag())
	}
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	v := validator.New()

	assert.Error(t, v.Struct(ChangePasswordRequest{CurrentPassword: "x", NewPassword: "pendek", ConfirmPassword: "pendek"}))
	assert.NoError(t, v.Struct(ChangePasswordRequest{CurrentPassword: "x", NewPassword: "panjang123", ConfirmPassword: "panjang123"}))
}
