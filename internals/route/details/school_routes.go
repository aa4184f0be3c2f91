// internals/route/details/school_routes.go
package details

import (
	"time"

	AnnouncementRoutes "presensiku_backend/internals/features/school/announcements/announcement/route"
	AttendanceRoutes "presensiku_backend/internals/features/school/class_attendance_result/attendance_records/route"
	ReportRoutes "presensiku_backend/internals/features/school/class_attendance_result/attendance_reports/route"
	scanSvc "presensiku_backend/internals/features/school/class_attendance_result/attendance_scans/service"
	SessionRoutes "presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/route"
	sessionSvc "presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/service"
	ClassesRoutes "presensiku_backend/internals/features/school/classes/classes/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SessionDeps: state in-memory sesi input presensi + kolaborator scan
type SessionDeps struct {
	Sessions    *sessionSvc.Manager
	Scanner     scanSvc.Scanner
	ScanTimeout time.Duration
}

/* ===================== USER (siswa) ===================== */
// Endpoint yang butuh login siswa
func SchoolUserRoutes(r fiber.Router, db *gorm.DB) {
	ClassesRoutes.ClassUserRoutes(r, db)
	ReportRoutes.ReportUserRoutes(r, db)
	AnnouncementRoutes.AnnouncementUserRoutes(r, db)
}

/* ===================== ADMIN ===================== */
// Endpoint khusus admin sekolah
func SchoolAdminRoutes(admin fiber.Router, db *gorm.DB, deps SessionDeps) {
	ClassesRoutes.ClassAdminRoutes(admin, db)
	AttendanceRoutes.AttendanceAdminRoutes(admin, db)
	SessionRoutes.AttendanceSessionAdminRoutes(admin, deps.Sessions, deps.Scanner, deps.ScanTimeout)
	ReportRoutes.ReportAdminRoutes(admin, db)
	AnnouncementRoutes.AnnouncementAdminRoutes(admin, db)
}
