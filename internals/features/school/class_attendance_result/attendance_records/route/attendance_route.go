package route

import (
	attendanceCtrl "presensiku_backend/internals/features/school/class_attendance_result/attendance_records/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AttendanceAdminRoutes: /api/a/attendance/...
func AttendanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := attendanceCtrl.NewAttendanceController(db)

	grp := admin.Group("/attendance")
	grp.Get("/by-date/:class_id/:date", h.GetByDate)
	grp.Delete("/by-date/:class_id/:date", h.DeleteByDate)
	grp.Post("/mark", h.Mark)
	grp.Get("/dates/:class_id", h.ListDates)
}
