package route

import (
	reportCtrl "presensiku_backend/internals/features/school/class_attendance_result/attendance_reports/controller"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_reports/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportAdminRoutes: /api/a/reports/...
func ReportAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := reportCtrl.NewReportController(service.NewReporter(service.NewGormSource(db)))

	grp := admin.Group("/reports/:class_id")
	grp.Get("/summary", h.Summary)
	grp.Get("/export.xlsx", h.Export)
	grp.Get("/students/:roll", h.GetStudent)
	grp.Get("/students/:roll/projection", h.ProjectStudent)
}

// ReportUserRoutes: /api/u/reports/me (siswa)
func ReportUserRoutes(r fiber.Router, db *gorm.DB) {
	h := reportCtrl.NewReportController(service.NewReporter(service.NewGormSource(db)))

	grp := r.Group("/reports")
	grp.Get("/me", h.GetMine)
	grp.Get("/me/projection", h.ProjectMine)
}
