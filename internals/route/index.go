// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"presensiku_backend/internals/constants"
	rateLimiter "presensiku_backend/internals/middlewares"
	authMiddleware "presensiku_backend/internals/middlewares/auth"
	routeDetails "presensiku_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, deps routeDetails.SessionDeps) {
	startTime = time.Now()

	// rate limiter global
	app.Use(rateLimiter.GlobalRateLimiter())

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PRIVATE (siswa) → /api/u
	log.Println("[INFO] Setting up PRIVATE (siswa) group...")
	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("ini"), constants.StudentOnly...),
	)

	// ADMIN → /api/a
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("ini"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolUserRoutes(user, db)
	routeDetails.SchoolAdminRoutes(admin, db, deps)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserUserRoutes(user, db)
	routeDetails.UserAdminRoutes(admin, db)
}
