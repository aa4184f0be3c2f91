// file: internals/features/school/classes/classes/controller/classes_controller.go
package controller

import (
	"bytes"
	"errors"
	"log"
	"strings"

	"presensiku_backend/internals/configs"
	"presensiku_backend/internals/features/school/classes/classes/dto"
	"presensiku_backend/internals/features/school/classes/classes/model"
	"presensiku_backend/internals/features/school/classes/classes/repository"
	helper "presensiku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassController struct {
	DB   *gorm.DB
	Repo *repository.ClassRepository
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db, Repo: repository.NewClassRepository(db)}
}

var validateClass = validator.New()

func (h *ClassController) notFoundOr500(c *fiber.Ctx, err error, what string) error {
	if errors.Is(err, repository.ErrClassNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, what+" tidak ditemukan")
	}
	log.Printf("[ERROR] class: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses "+strings.ToLower(what))
}

/* ===================== CREATE ===================== */

// POST /api/a/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if len(req.ClassTimetable) > 0 && !isJSONObject(req.ClassTimetable) {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_timetable harus berupa object JSON")
	}

	m := req.ToModel(configs.MinAttendancePercentage)
	if err := h.Repo.Create(c.UserContext(), m); err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama kelas sudah dipakai")
		}
		log.Printf("[ERROR] create class: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}
	log.Printf("[INFO] class created: %s (%s)", m.ClassName, m.ClassID)
	return helper.JsonCreated(c, "Kelas berhasil dibuat", dto.NewClassResponse(m))
}

/* ===================== READ ===================== */

// GET /api/a/classes
func (h *ClassController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Repo.List(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		log.Printf("[ERROR] list class: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}
	out := make([]dto.ClassResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewClassResponse(&rows[i]))
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "ok", out, &pg)
}

// GET /api/a/classes/:id
func (h *ClassController) GetByID(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := h.Repo.FindByID(c.UserContext(), classID)
	if err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}
	return helper.JsonOK(c, "ok", dto.NewClassResponse(m))
}

// GET /api/u/class/me (kelas diambil dari token student)
func (h *ClassController) GetMine(c *fiber.Ctx) error {
	classID, err := helper.GetClassIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := h.Repo.FindByID(c.UserContext(), classID)
	if err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}
	return helper.JsonOK(c, "ok", dto.NewClassResponse(m))
}

/* ===================== UPDATE ===================== */

// PATCH /api/a/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.ClassName == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada perubahan")
	}

	err = h.Repo.Updates(c.UserContext(), classID, map[string]any{
		"class_name": strings.TrimSpace(*req.ClassName),
	})
	if helper.IsUniqueViolation(err) {
		return helper.JsonError(c, fiber.StatusConflict, "Nama kelas sudah dipakai")
	}
	if err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}
	return h.respondFresh(c, classID, "Kelas berhasil diubah")
}

// PUT /api/a/classes/:id/roster (replace, bukan merge)
func (h *ClassController) UpdateRoster(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateRosterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := h.Repo.Updates(c.UserContext(), classID, req.ToUpdates()); err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}
	return h.respondFresh(c, classID, "Roster berhasil diubah")
}

// PUT /api/a/classes/:id/settings
func (h *ClassController) UpdateSettings(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := h.Repo.Updates(c.UserContext(), classID, map[string]any{
		"class_min_attendance_percentage": *req.MinAttendancePercentage,
	}); err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}
	return h.respondFresh(c, classID, "Pengaturan berhasil diubah")
}

// PUT /api/a/classes/:id/timetable
func (h *ClassController) UpdateTimetable(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateTimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if !isJSONObject(req.ClassTimetable) {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_timetable harus berupa object JSON")
	}
	if err := h.Repo.Updates(c.UserContext(), classID, map[string]any{
		"class_timetable": req.ClassTimetable,
	}); err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}
	return h.respondFresh(c, classID, "Jadwal berhasil diubah")
}

// DELETE /api/a/classes/:id (soft delete)
func (h *ClassController) Delete(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Repo.Delete(c.UserContext(), classID); err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}
	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"class_id": classID})
}

/* ===================== SUBJECTS ===================== */

// POST /api/a/classes/:id/subjects
func (h *ClassController) AddSubject(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if _, err := h.Repo.FindByID(c.UserContext(), classID); err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}

	s := &model.ClassSubjectModel{
		ClassSubjectClassID: classID,
		ClassSubjectName:    strings.TrimSpace(req.ClassSubjectName),
	}
	if err := h.Repo.AddSubject(c.UserContext(), s); err != nil {
		log.Printf("[ERROR] add subject: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menambah mapel")
	}
	return helper.JsonCreated(c, "Mapel berhasil ditambahkan", dto.SubjectLite{
		ID:   s.ClassSubjectID,
		Name: s.ClassSubjectName,
	})
}

// DELETE /api/a/classes/:id/subjects/:subject_id
func (h *ClassController) DeleteSubject(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	subjectID, err := helper.ParseUUIDParam(c, "subject_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Repo.DeleteSubject(c.UserContext(), classID, subjectID); err != nil {
		return h.notFoundOr500(c, err, "Mapel")
	}
	return helper.JsonDeleted(c, "Mapel berhasil dihapus", fiber.Map{"subject_id": subjectID})
}

func (h *ClassController) respondFresh(c *fiber.Ctx, classID uuid.UUID, msg string) error {
	m, err := h.Repo.FindByID(c.UserContext(), classID)
	if err != nil {
		return h.notFoundOr500(c, err, "Kelas")
	}
	return helper.JsonUpdated(c, msg, dto.NewClassResponse(m))
}

func isJSONObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) >= 2 && b[0] == '{' && b[len(b)-1] == '}'
}
