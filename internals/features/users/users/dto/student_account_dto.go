package dto

import (
	"strings"
	"time"

	"presensiku_backend/internals/features/users/users/model"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

// PUT /api/a/students/:class_id/:roll → buat / reset akun siswa
type UpsertStudentAccountRequest struct {
	UserName string `json:"user_name" validate:"omitempty,min=1,max=50"`
	Pin      string `json:"pin"       validate:"required,numeric,min=4,max=8"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type ListStudentAccountQuery struct {
	ClassID *uuid.UUID `query:"class_id"`
	Q       string     `query:"q"`
}

// DisplayName: default "Absen <roll>" kalau nama kosong
func (r UpsertStudentAccountRequest) DisplayName(roll string) string {
	if n := strings.TrimSpace(r.UserName); n != "" {
		return n
	}
	return "Absen " + roll
}

/* ===================== RESPONSES ===================== */

type StudentAccountResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserName    string     `json:"user_name"`
	ClassID     *uuid.UUID `json:"class_id"`
	RollNumber  string     `json:"roll_number"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewStudentAccountResponse(u *model.UserModel) StudentAccountResponse {
	return StudentAccountResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		ClassID:     u.ClassID,
		RollNumber:  u.RollNumberValue(),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func NewStudentAccountResponses(rows []model.UserModel) []StudentAccountResponse {
	out := make([]StudentAccountResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewStudentAccountResponse(&rows[i]))
	}
	return out
}
