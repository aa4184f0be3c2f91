package details

import (
	authRoute "presensiku_backend/internals/features/users/auth/route"
	userRoute "presensiku_backend/internals/features/users/users/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== ADMIN ===================== */
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.StudentAccountAdminRoutes(admin, db)
}

/* ===================== USER (siswa) ===================== */
func UserUserRoutes(r fiber.Router, db *gorm.DB) {
	authRoute.AuthUserRoutes(r, db)
}
