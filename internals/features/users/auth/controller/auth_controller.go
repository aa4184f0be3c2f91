package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"presensiku_backend/internals/configs"
	"presensiku_backend/internals/constants"
	"presensiku_backend/internals/features/users/auth/dto"
	authRepo "presensiku_backend/internals/features/users/auth/repository"
	"presensiku_backend/internals/features/users/auth/service"
	userModel "presensiku_backend/internals/features/users/users/model"
	helper "presensiku_backend/internals/helpers"
	"presensiku_backend/internals/helpers/rollno"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
	Now       func() time.Time
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:        db,
		JWTSecret: configs.JWTSecret,
		TokenTTL:  configs.AccessTokenTTL,
		Now:       time.Now,
	}
}

var validate = validator.New()

/* ========================== LOGIN ========================== */

// POST /api/auth/login (admin)
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := ac.DB.WithContext(c.UserContext())
	user, err := authRepo.FindAdminByEmail(db, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if err != nil {
		log.Printf("[ERROR] login admin: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}
	if err := service.CheckPasswordHash(user.Password, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	return ac.issue(c, db, user)
}

// POST /api/auth/login-student
func (ac *AuthController) LoginStudent(c *fiber.Ctx) error {
	var req dto.StudentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := ac.DB.WithContext(c.UserContext())
	user, err := authRepo.FindStudent(db, req.ClassID, rollno.Normalize(req.RollNumber))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Nomor absen atau PIN salah")
	}
	if err != nil {
		log.Printf("[ERROR] login siswa: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}
	if err := service.CheckPasswordHash(user.Password, req.Pin); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Nomor absen atau PIN salah")
	}
	return ac.issue(c, db, user)
}

func (ac *AuthController) issue(c *fiber.Ctx, db *gorm.DB, user *userModel.UserModel) error {
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	now := ac.Now()
	token, exp, err := service.IssueAccessToken(ac.JWTSecret, user, now, ac.TokenTTL)
	if err != nil {
		log.Printf("[ERROR] issue token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	if err := authRepo.TouchLastLogin(db, user.ID, now); err != nil {
		log.Printf("[WARN] update last_login_at %s: %v", user.ID, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
	log.Printf("[INFO] login %s (%s)", user.ID, user.Role)

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   exp,
		User:        dto.NewUserResponse(user),
	})
}

/* ========================== LOGOUT ========================== */

// POST /api/auth/logout (butuh AuthMiddleware)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	exp, _ := c.Locals(helper.LocTokenExp).(time.Time)
	if exp.IsZero() {
		exp = ac.Now().Add(ac.TokenTTL)
	}

	if err := authRepo.BlacklistToken(ac.DB.WithContext(c.UserContext()), raw, exp); err != nil && !helper.IsUniqueViolation(err) {
		log.Printf("[ERROR] blacklist token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* ========================== ME ========================== */

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := authRepo.FindUserByID(ac.DB.WithContext(c.UserContext()), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}
	return helper.JsonOK(c, "ok", dto.NewUserResponse(user))
}

/* ========================== CHANGE PIN / PASSWORD ========================== */

// POST /api/u/auth/change-pin (siswa)
func (ac *AuthController) ChangePin(c *fiber.Ctx) error {
	var req dto.ChangePinRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	return ac.changeSecret(c, constants.RoleStudent, req.CurrentPin, req.Pin, "PIN")
}

// POST /api/auth/change-password (admin)
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	return ac.changeSecret(c, constants.RoleAdmin, req.CurrentPassword, req.NewPassword, "Password")
}

func (ac *AuthController) changeSecret(c *fiber.Ctx, role, current, next, label string) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ac.DB.WithContext(c.UserContext())

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if user.Role != role {
		return helper.JsonError(c, fiber.StatusForbidden, label+" tidak berlaku untuk akun ini")
	}
	if err := service.CheckPasswordHash(user.Password, current); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, label+" lama salah")
	}
	if strings.TrimSpace(next) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, label+" baru kosong")
	}

	hash, err := service.HashPassword(next)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses "+label)
	}
	if err := authRepo.UpdateUserPassword(db, userID, hash); err != nil {
		log.Printf("[ERROR] update %s %s: %v", label, userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan "+label)
	}
	return helper.JsonUpdated(c, label+" berhasil diubah", nil)
}
