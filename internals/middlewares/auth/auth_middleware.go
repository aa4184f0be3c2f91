// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"

	"presensiku_backend/internals/configs"
	authRepo "presensiku_backend/internals/features/users/auth/repository"
	authService "presensiku_backend/internals/features/users/auth/service"
	helper "presensiku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checker: sumber data blacklist & status user (DB di produksi, fake di test)
type Checker interface {
	IsBlacklisted(token string) (bool, error)
	IsUserActive(userID uuid.UUID) (bool, error)
}

type gormChecker struct{ db *gorm.DB }

func (g gormChecker) IsBlacklisted(token string) (bool, error) {
	return authRepo.IsTokenBlacklisted(g.db, token)
}

func (g gormChecker) IsUserActive(userID uuid.UUID) (bool, error) {
	var user struct {
		IsActive bool
	}
	if err := g.db.Table("users").Select("is_active").Where("id = ?", userID).Take(&user).Error; err != nil {
		return false, err
	}
	return user.IsActive, nil
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return NewAuthMiddleware(configs.JWTSecret, gormChecker{db: db})
}

// NewAuthMiddleware: verifikasi JWT lalu isi Locals (user_id, userRole, class_id, roll_number)
func NewAuthMiddleware(secret string, chk Checker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		if strings.TrimSpace(secret) == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// 2) Parse & verifikasi JWT (signature + exp)
		claims, err := authService.ParseAccessToken(secret, tokenString)
		if errors.Is(err, authService.ErrTokenExpired) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi berakhir, silakan login ulang")
		}
		if err != nil {
			log.Println("[WARN] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid")
		}

		// 3) Cek blacklist (token yang sudah logout)
		black, err := chk.IsBlacklisted(tokenString)
		if err != nil {
			log.Println("[ERROR] DB error saat cek blacklist:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if black {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi sudah logout, silakan login ulang")
		}

		// 4) User masih aktif?
		userID, err := claims.UserID()
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid")
		}
		active, err := chk.IsUserActive(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
		}
		if err != nil {
			log.Println("[ERROR] cek user aktif:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !active {
			return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		// 5) Simpan klaim ke Locals
		storeClaimsToLocals(c, claims, tokenString)
		return c.Next()
	}
}

func storeClaimsToLocals(c *fiber.Ctx, claims *authService.Claims, raw string) {
	c.Locals(helper.LocUserID, claims.Subject)
	c.Locals(helper.LocUserRole, claims.Role)
	if claims.UserName != "" {
		c.Locals("user_name", claims.UserName)
	}
	if claims.ClassID != "" {
		c.Locals(helper.LocClassID, claims.ClassID)
	}
	if claims.RollNumber != "" {
		c.Locals(helper.LocRollNumber, claims.RollNumber)
	}
	c.Locals(helper.LocTokenExp, claims.ExpiresAtTime())
	helper.SetRawAccessToken(c, raw)
}
