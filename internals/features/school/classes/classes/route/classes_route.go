// file: internals/features/school/classes/classes/route/classes_route.go
package route

import (
	classctrl "presensiku_backend/internals/features/school/classes/classes/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClassAdminRoutes: /api/a/classes (group sudah melewati auth + admin)
func ClassAdminRoutes(admin fiber.Router, db *gorm.DB) {
	classHandler := classctrl.NewClassController(db)

	grp := admin.Group("/classes")
	{
		grp.Get("/", classHandler.List)
		grp.Post("/", classHandler.Create)
		grp.Get("/:id", classHandler.GetByID)
		grp.Patch("/:id", classHandler.Update)
		grp.Delete("/:id", classHandler.Delete)

		grp.Put("/:id/roster", classHandler.UpdateRoster)
		grp.Put("/:id/settings", classHandler.UpdateSettings)
		grp.Put("/:id/timetable", classHandler.UpdateTimetable)

		grp.Post("/:id/subjects", classHandler.AddSubject)
		grp.Delete("/:id/subjects/:subject_id", classHandler.DeleteSubject)
	}
}

// ClassUserRoutes: student hanya bisa lihat kelasnya sendiri
func ClassUserRoutes(r fiber.Router, db *gorm.DB) {
	classHandler := classctrl.NewClassController(db)

	r.Get("/class/me", classHandler.GetMine)
}
