// file: internals/features/school/class_attendance_result/attendance_reports/controller/report_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"presensiku_backend/internals/features/school/class_attendance_result/attendance_reports/dto"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_reports/service"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"
	helper "presensiku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportController struct {
	Reporter *service.Reporter
}

func NewReportController(r *service.Reporter) *ReportController {
	return &ReportController{Reporter: r}
}

var validate = validator.New()

func reportError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return helper.JsonError(c, fe.Code, fe.Message)
	case errors.Is(err, classRepo.ErrClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	case errors.Is(err, service.ErrRollNotInClass),
		errors.Is(err, service.ErrSubjectNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	}
	log.Printf("[ERROR] report: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung rekap presensi")
}

// siswa: kelas & nomor absen dari token
func studentFromToken(c *fiber.Ctx) (uuid.UUID, string, error) {
	classID, err := helper.GetClassIDFromToken(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	roll, err := helper.GetRollNumberFromToken(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	return classID, roll, nil
}

// admin: /:class_id/students/:roll
func studentFromParams(c *fiber.Ctx) (uuid.UUID, string, error) {
	classID, err := helper.ParseUUIDParam(c, "class_id")
	if err != nil {
		return uuid.Nil, "", err
	}
	roll := strings.TrimSpace(c.Params("roll"))
	if roll == "" {
		return uuid.Nil, "", fiber.NewError(fiber.StatusBadRequest, "roll tidak valid")
	}
	return classID, roll, nil
}

func (h *ReportController) student(c *fiber.Ctx, classID uuid.UUID, roll string) error {
	rep, err := h.Reporter.StudentReport(c.UserContext(), classID, roll)
	if err != nil {
		return reportError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.NewStudentReportResponse(rep))
}

func (h *ReportController) projection(c *fiber.Ctx, classID uuid.UUID, roll string) error {
	var q dto.ProjectionQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validate.Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}

	rep, items, err := h.Reporter.Projection(c.UserContext(), classID, roll, q.Skip, q.SubjectUUID())
	if err != nil {
		return reportError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.NewProjectionResponse(rep, q.Skip, items))
}

/* ===================== STUDENT (/api/u) ===================== */

// GET /api/u/reports/me
func (h *ReportController) GetMine(c *fiber.Ctx) error {
	classID, roll, err := studentFromToken(c)
	if err != nil {
		return reportError(c, err)
	}
	return h.student(c, classID, roll)
}

// GET /api/u/reports/me/projection?skip=2&subject_id=...
func (h *ReportController) ProjectMine(c *fiber.Ctx) error {
	classID, roll, err := studentFromToken(c)
	if err != nil {
		return reportError(c, err)
	}
	return h.projection(c, classID, roll)
}

/* ===================== ADMIN (/api/a) ===================== */

// GET /api/a/reports/:class_id/students/:roll
func (h *ReportController) GetStudent(c *fiber.Ctx) error {
	classID, roll, err := studentFromParams(c)
	if err != nil {
		return reportError(c, err)
	}
	return h.student(c, classID, roll)
}

// GET /api/a/reports/:class_id/students/:roll/projection
func (h *ReportController) ProjectStudent(c *fiber.Ctx) error {
	classID, roll, err := studentFromParams(c)
	if err != nil {
		return reportError(c, err)
	}
	return h.projection(c, classID, roll)
}

// GET /api/a/reports/:class_id/summary
func (h *ReportController) Summary(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "class_id")
	if err != nil {
		return reportError(c, err)
	}
	sum, err := h.Reporter.ClassSummary(c.UserContext(), classID)
	if err != nil {
		return reportError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.NewSummaryResponse(sum))
}

// GET /api/a/reports/:class_id/export.xlsx
func (h *ReportController) Export(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "class_id")
	if err != nil {
		return reportError(c, err)
	}
	m, err := h.Reporter.Matrix(c.UserContext(), classID)
	if err != nil {
		return reportError(c, err)
	}
	data, err := service.BuildWorkbook(m)
	if err != nil {
		log.Printf("[ERROR] export xlsx %s: %v", classID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file rekap")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(service.ExportFileName(m.Class.Name, time.Now()))
	return c.Send(data)
}
