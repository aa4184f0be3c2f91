// file: internals/features/school/class_attendance_result/attendance_records/controller/attendance_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"

	"presensiku_backend/internals/features/school/class_attendance_result/attendance_records/dto"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_records/repository"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"
	helper "presensiku_backend/internals/helpers"
	"presensiku_backend/internals/helpers/dbtime"
	"presensiku_backend/internals/helpers/rollno"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceController struct {
	Repo    *repository.AttendanceRepository
	Classes *classRepo.ClassRepository
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		Repo:    repository.NewAttendanceRepository(db),
		Classes: classRepo.NewClassRepository(db),
	}
}

var validate = validator.New()

func parseClassDate(c *fiber.Ctx) (uuid.UUID, string, error) {
	classID, err := helper.ParseUUIDParam(c, "class_id")
	if err != nil {
		return uuid.Nil, "", err
	}
	date := c.Params("date")
	if _, err := dbtime.ParseDate(date); err != nil {
		return uuid.Nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return classID, date, nil
}

// GET /api/a/attendance/by-date/:class_id/:date
func (h *AttendanceController) GetByDate(c *fiber.Ctx) error {
	classID, date, err := parseClassDate(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	day, _ := dbtime.ParseDate(date)

	d, err := h.Repo.FindDay(c.UserContext(), classID, day)
	if errors.Is(err, repository.ErrDayNotFound) {
		return helper.JsonOK(c, "ok", dto.EmptyDay(classID, date))
	}
	if err != nil {
		log.Printf("[ERROR] get attendance %s/%s: %v", classID, date, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil presensi")
	}
	return helper.JsonOK(c, "ok", dto.NewDayResponse(d))
}

// POST /api/a/attendance/mark
func (h *AttendanceController) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	date, err := dbtime.ParseDate(req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	seen := map[int]bool{}
	for _, p := range req.Periods {
		if seen[p.PeriodNum] {
			return helper.JsonValidationError(c, map[string][]string{
				"periods": {fmt.Sprintf("period_num %d duplikat", p.PeriodNum)},
			})
		}
		seen[p.PeriodNum] = true
	}

	class, err := h.Classes.FindByID(c.UserContext(), req.ClassID)
	if errors.Is(err, classRepo.ErrClassNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	if err != nil {
		log.Printf("[ERROR] mark attendance load class: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat kelas")
	}

	roster := class.Roster()
	if len(roster) == 0 {
		return helper.JsonValidationError(c, map[string][]string{
			"roster": {"kelas belum punya daftar siswa"},
		})
	}
	subjects := make(map[uuid.UUID]string, len(class.Subjects))
	for _, s := range class.Subjects {
		subjects[s.ClassSubjectID] = s.ClassSubjectName
	}
	for _, p := range req.Periods {
		if _, ok := subjects[p.SubjectID]; !ok {
			return helper.JsonValidationError(c, map[string][]string{
				"periods": {fmt.Sprintf("mapel jam ke-%d bukan mapel kelas ini", p.PeriodNum)},
			})
		}
	}

	var updatedBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		updatedBy = &uid
	}

	saved, err := h.Repo.SaveDay(c.UserContext(), req.ClassID, date, updatedBy,
		req.ToModels(rollno.NewSet(roster), subjects))
	if err != nil {
		log.Printf("[ERROR] mark attendance %s/%s: %v", req.ClassID, req.Date, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan presensi")
	}
	log.Printf("[INFO] attendance saved class=%s date=%s periods=%d", req.ClassID, req.Date, len(saved.Periods))
	return helper.JsonCreated(c, "Presensi berhasil disimpan", dto.NewDayResponse(saved))
}

// GET /api/a/attendance/dates/:class_id
func (h *AttendanceController) ListDates(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "class_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	dates, err := h.Repo.ListDates(c.UserContext(), classID)
	if err != nil {
		log.Printf("[ERROR] list attendance dates %s: %v", classID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tanggal presensi")
	}
	return helper.JsonOK(c, "ok", dto.NewDatesResponse(classID, dates))
}

// DELETE /api/a/attendance/by-date/:class_id/:date
func (h *AttendanceController) DeleteByDate(c *fiber.Ctx) error {
	classID, date, err := parseClassDate(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	day, _ := dbtime.ParseDate(date)

	if err := h.Repo.DeleteDay(c.UserContext(), classID, day); err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		log.Printf("[ERROR] delete attendance %s/%s: %v", classID, date, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus presensi")
	}
	return helper.JsonDeleted(c, "Presensi berhasil dihapus", fiber.Map{"class_id": classID, "date": date})
}
