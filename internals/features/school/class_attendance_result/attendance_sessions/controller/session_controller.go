// file: internals/features/school/class_attendance_result/attendance_sessions/controller/session_controller.go
package controller

import (
	"context"
	"io"
	"log"
	"time"

	scanSvc "presensiku_backend/internals/features/school/class_attendance_result/attendance_scans/service"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/dto"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/service"
	helper "presensiku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SessionController struct {
	Manager     *service.Manager
	Scanner     scanSvc.Scanner
	ScanTimeout time.Duration
}

func NewSessionController(m *service.Manager, scanner scanSvc.Scanner, scanTimeout time.Duration) *SessionController {
	if scanTimeout <= 0 {
		scanTimeout = 30 * time.Second
	}
	return &SessionController{Manager: m, Scanner: scanner, ScanTimeout: scanTimeout}
}

var validate = validator.New()

/* ===================== helpers ===================== */

func (h *SessionController) session(c *fiber.Ctx) (*service.Session, uuid.UUID, error) {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	classID, err := helper.ParseUUIDParam(c, "class_id")
	if err != nil {
		return nil, uuid.Nil, err
	}
	return h.Manager.Get(adminID, classID), classID, nil
}

func respond(c *fiber.Ctx, s *service.Session, msg string) error {
	return helper.JsonOK(c, msg, dto.NewSessionResponse(s.Snapshot()))
}

func indexParam(c *fiber.Ctx) (int, error) {
	idx, err := c.ParamsInt("index")
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "index tidak valid")
	}
	return idx, nil
}

func periodParam(c *fiber.Ctx) (int, error) {
	n, err := c.ParamsInt("period_num")
	if err != nil || n < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "period_num tidak valid")
	}
	return n, nil
}

/* ===================== LOAD / READ ===================== */

// POST /api/a/attendance-sessions/:class_id/load
func (h *SessionController) Load(c *fiber.Ctx) error {
	s, classID, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.LoadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := s.Load(c.UserContext(), classID, req.Date); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "Presensi dimuat")
}

// GET /api/a/attendance-sessions/:class_id
func (h *SessionController) Get(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return respond(c, s, "ok")
}

// DELETE /api/a/attendance-sessions/:class_id (buang sesi, perubahan hilang)
func (h *SessionController) Discard(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	classID, err := helper.ParseUUIDParam(c, "class_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	h.Manager.Drop(adminID, classID)
	return helper.JsonDeleted(c, "Sesi ditutup", fiber.Map{"class_id": classID})
}

/* ===================== LOCK ===================== */

// POST /:class_id/unlock {confirm}
func (h *SessionController) Unlock(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UnlockRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}
	if err := s.Unlock(req.Confirm); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "Kunci dibuka")
}

// POST /:class_id/touch (aktivitas admin → reset hitung mundur kunci ulang)
func (h *SessionController) Touch(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := s.Touch(); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "ok")
}

/* ===================== PERIODS ===================== */

// POST /:class_id/periods
func (h *SessionController) AddPeriod(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	slot, err := s.AddPeriod()
	if err != nil {
		return sessionError(c, s, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Jam pelajaran ditambahkan",
		"period_num": slot.Period,
		"data":       dto.NewSessionResponse(s.Snapshot()),
	})
}

// DELETE /:class_id/periods/:period_num?confirm=true
func (h *SessionController) RemovePeriod(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := periodParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := s.RemovePeriod(n, c.QueryBool("confirm", false)); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "Jam pelajaran dihapus")
}

// POST /:class_id/periods/cancel-removal
func (h *SessionController) CancelRemoval(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	s.CancelRemoval()
	return respond(c, s, "ok")
}

// PATCH /:class_id/periods/:period_num/subject {subject_id}
func (h *SessionController) UpdateSubject(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := periodParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	subjectID, err := req.ParsedID()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"subject_id": {"uuid"}})
	}
	if err := s.UpdatePeriodSubject(n, subjectID); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "Mapel diperbarui")
}

/* ===================== ABSENTEES ===================== */

// POST /:class_id/absentees/:index/toggle {roll_number}
func (h *SessionController) ToggleAbsent(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	idx, err := indexParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ToggleAbsentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := s.ToggleAbsent(idx, req.RollNumber); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "ok")
}

// PUT /:class_id/absentees/:index/bulk {text}
func (h *SessionController) SetBulk(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	idx, err := indexParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.BulkAbsentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := s.SetBulkAbsentText(idx, req.Text); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "ok")
}

// POST /:class_id/absentees/:index/all-present
func (h *SessionController) MarkAllPresent(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	idx, err := indexParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := s.MarkAllPresent(idx); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "Semua hadir")
}

// POST /:class_id/absentees/:index/copy-previous
func (h *SessionController) CopyPrevious(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	idx, err := indexParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := s.CopyFromPrevious(idx); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "Absen jam sebelumnya disalin")
}

/* ===================== SCAN ===================== */

// POST /:class_id/scan?mode=single|page&period_index=0  (multipart "image")
func (h *SessionController) Scan(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if h.Scanner == nil {
		return sessionError(c, s, scanSvc.ErrScanUnavailable)
	}

	mode, err := scanSvc.ParseMode(c.Query("mode"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	periodIndex := c.QueryInt("period_index", -1)
	if mode == scanSvc.ModeSingle && periodIndex < 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "period_index wajib untuk scan satu jam")
	}

	// cek lebih awal supaya tidak membuang panggilan scan
	snap := s.Snapshot()
	switch {
	case !snap.Loaded:
		return sessionError(c, s, service.ErrNotLoaded)
	case snap.IsSaving:
		return sessionError(c, s, service.ErrSaveInProgress)
	case snap.IsDateLocked:
		return sessionError(c, s, service.ErrDateLocked)
	case mode == scanSvc.ModeSingle && periodIndex >= len(snap.Periods):
		return sessionError(c, s, service.ErrPeriodIndexOutOfRange)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File gambar (field 'image') wajib diisi")
	}
	if fh.Size > scanSvc.MaxUploadBytes {
		return sessionError(c, s, scanSvc.ErrImageTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gagal membaca file gambar")
	}
	defer f.Close()
	img, err := io.ReadAll(io.LimitReader(f, scanSvc.MaxUploadBytes+1))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gagal membaca file gambar")
	}

	// scan bisa lebih lama dari timeout request biasa
	ctx, cancel := context.WithTimeout(context.Background(), h.ScanTimeout)
	defer cancel()

	res, err := h.Scanner.ScanImage(ctx, img, fh.Filename, mode)
	if err != nil {
		return sessionError(c, s, err)
	}
	if err := s.ApplyScanResult(periodIndex, service.ScanResult{Rolls: res.Rolls, Pages: res.Pages}); err != nil {
		return sessionError(c, s, err)
	}
	log.Printf("[INFO] scan diterapkan mode=%s period_index=%d", mode, periodIndex)
	return respond(c, s, "Hasil scan diterapkan, periksa sebelum menyimpan")
}

/* ===================== SUBMIT ===================== */

// POST /:class_id/submit
func (h *SessionController) Submit(c *fiber.Ctx) error {
	s, _, err := h.session(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	adminID, _ := helper.GetUserIDFromToken(c)
	if err := s.ValidateAndSave(c.UserContext(), adminID); err != nil {
		return sessionError(c, s, err)
	}
	return respond(c, s, "Presensi tersimpan")
}
