// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "presensiku_backend/internals/features/users/auth/model"
	userModel "presensiku_backend/internals/features/users/users/model"
	"presensiku_backend/internals/constants"
)

/* ====================== USER ====================== */

func FindAdminByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.
		Where("LOWER(email) = ? AND role = ?", strings.ToLower(strings.TrimSpace(email)), constants.RoleAdmin).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindStudent: akun siswa per (kelas, nomor absen)
func FindStudent(db *gorm.DB, classID uuid.UUID, rollNumber string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.
		Where("class_id = ? AND roll_number = ? AND role = ?", classID, rollNumber, constants.RoleStudent).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newHash string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", newHash).Error
}

func TouchLastLogin(db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("last_login_at", at).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken: simpan token sampai expiredAt (exp dari JWT)
func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Create(&authModel.TokenBlacklistModel{
		Token:     token,
		ExpiredAt: expiredAt.UTC(),
	}).Error
}

func IsTokenBlacklisted(db *gorm.DB, token string) (bool, error) {
	var exists bool
	err := db.
		Raw(`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = ?)`, token).
		Scan(&exists).Error
	return exists, err
}

// CleanupExpiredBlacklist: hapus token yang exp-nya sebelum `before`
func CleanupExpiredBlacklist(db *gorm.DB, before time.Time) (int64, error) {
	res := db.Where("expired_at < ?", before.UTC()).Delete(&authModel.TokenBlacklistModel{})
	return res.RowsAffected, res.Error
}
