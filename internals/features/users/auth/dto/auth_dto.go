package dto

import (
	"time"

	userModel "presensiku_backend/internals/features/users/users/model"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type AdminLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login siswa: kelas + nomor absen + PIN
type StudentLoginRequest struct {
	ClassID    uuid.UUID `json:"class_id"    validate:"required"`
	RollNumber string    `json:"roll_number" validate:"required,max=40"`
	Pin        string    `json:"pin"         validate:"required,numeric,min=4,max=8"`
}

type ChangePinRequest struct {
	CurrentPin string `json:"current_pin" validate:"required"`
	Pin        string `json:"pin"         validate:"required,numeric,min=4,max=8"`
	ConfirmPin string `json:"confirm_pin" validate:"required,eqfield=Pin"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserName   string     `json:"user_name"`
	Email      string     `json:"email,omitempty"`
	Role       string     `json:"role"`
	ClassID    *uuid.UUID `json:"class_id,omitempty"`
	RollNumber string     `json:"roll_number,omitempty"`
	IsActive   bool       `json:"is_active"`
}

func NewUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:         u.ID,
		UserName:   u.UserName,
		Email:      u.EmailValue(),
		Role:       u.Role,
		ClassID:    u.ClassID,
		RollNumber: u.RollNumberValue(),
		IsActive:   u.IsActive,
	}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}
