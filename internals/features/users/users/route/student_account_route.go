package route

import (
	userCtl "presensiku_backend/internals/features/users/users/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StudentAccountAdminRoutes: /api/a/students (akun login siswa)
func StudentAccountAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := userCtl.NewStudentAccountController(db)

	grp := admin.Group("/students")
	grp.Get("/", h.List)
	grp.Put("/:class_id/:roll", h.Upsert)
	grp.Patch("/:id/active", h.SetActive)
	grp.Delete("/:id", h.Delete)
}
