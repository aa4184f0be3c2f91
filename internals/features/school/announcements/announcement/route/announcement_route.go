package route

import (
	annCtl "presensiku_backend/internals/features/school/announcements/announcement/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AnnouncementAdminRoutes: /api/a/announcements
func AnnouncementAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := annCtl.NewAnnouncementController(db)

	grp := r.Group("/announcements")
	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}

// AnnouncementUserRoutes: /api/u/announcements (siswa)
func AnnouncementUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := annCtl.NewAnnouncementController(db)
	r.Get("/announcements", ctl.ListMine)
}
