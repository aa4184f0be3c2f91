package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel merepresentasikan tabel users.
// Admin login pakai email + password, siswa login pakai (class_id, roll_number) + PIN.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string    `gorm:"size:50;not null" json:"user_name"`
	Email    *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Password string    `gorm:"not null" json:"-"` // bcrypt (password admin / PIN siswa)
	Role     string    `gorm:"type:varchar(20);not null;default:'student'" json:"role"`

	// khusus siswa
	ClassID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_users_class_roll" json:"class_id,omitempty"`
	RollNumber *string    `gorm:"size:40;uniqueIndex:uq_users_class_roll" json:"roll_number,omitempty"`

	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

func (u *UserModel) RollNumberValue() string {
	if u.RollNumber == nil {
		return ""
	}
	return *u.RollNumber
}
