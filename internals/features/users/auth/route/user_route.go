// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	controller "presensiku_backend/internals/features/users/auth/controller"
	rateLimiter "presensiku_backend/internals/middlewares"
	authMiddleware "presensiku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes: /api/auth (login publik + endpoint yang butuh token)
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-student", rateLimiter.LoginRateLimiter(), authController.LoginStudent)

	// 🔐 Protected
	protected := baseAuth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
	protected.Post("/change-password", authController.ChangePassword)
}

// AuthUserRoutes: /api/u/auth (siswa)
func AuthUserRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	r.Post("/auth/change-pin", authController.ChangePin)
}
