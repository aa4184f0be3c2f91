package route

import (
	"time"

	scanSvc "presensiku_backend/internals/features/school/class_attendance_result/attendance_scans/service"
	sessionCtrl "presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/controller"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/service"
	rateLimiter "presensiku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

// AttendanceSessionAdminRoutes: /api/a/attendance-sessions/:class_id/...
func AttendanceSessionAdminRoutes(admin fiber.Router, m *service.Manager, scanner scanSvc.Scanner, scanTimeout time.Duration) {
	h := sessionCtrl.NewSessionController(m, scanner, scanTimeout)

	grp := admin.Group("/attendance-sessions/:class_id")
	grp.Get("/", h.Get)
	grp.Delete("/", h.Discard)
	grp.Post("/load", h.Load)
	grp.Post("/unlock", h.Unlock)
	grp.Post("/touch", h.Touch)

	grp.Post("/periods", h.AddPeriod)
	grp.Post("/periods/cancel-removal", h.CancelRemoval)
	grp.Delete("/periods/:period_num", h.RemovePeriod)
	grp.Patch("/periods/:period_num/subject", h.UpdateSubject)

	grp.Post("/absentees/:index/toggle", h.ToggleAbsent)
	grp.Put("/absentees/:index/bulk", h.SetBulk)
	grp.Post("/absentees/:index/all-present", h.MarkAllPresent)
	grp.Post("/absentees/:index/copy-previous", h.CopyPrevious)

	grp.Post("/scan", rateLimiter.ScanRateLimiter(), h.Scan)
	grp.Post("/submit", h.Submit)
}
