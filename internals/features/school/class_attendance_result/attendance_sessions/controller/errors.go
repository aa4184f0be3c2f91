package controller

import (
	"errors"
	"log"

	scanSvc "presensiku_backend/internals/features/school/class_attendance_result/attendance_scans/service"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/dto"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/service"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"
	helper "presensiku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

/* =======================================================================
   Pemetaan error sesi → HTTP
======================================================================= */

// sessionError: error domain sesi/scan → response JSON konsisten.
// Untuk 428 (perlu konfirmasi) snapshot ikut dikirim agar client bisa
// menampilkan dialog konfirmasi.
func sessionError(c *fiber.Ctx, s *service.Session, err error) error {
	var ve *service.ValidationError
	var se *service.StoreError
	var fe *fiber.Error

	switch {
	case errors.As(err, &ve):
		fields := map[string][]string{ve.Field: {ve.Message}}
		return helper.JsonValidationError(c, fields)

	case errors.Is(err, service.ErrConfirmationRequired):
		body := helper.ErrorResponse{
			Success:   false,
			Message:   err.Error(),
			ErrorCode: "CONFIRMATION_REQUIRED",
		}
		if s != nil {
			return c.Status(fiber.StatusPreconditionRequired).JSON(fiber.Map{
				"success":    body.Success,
				"message":    body.Message,
				"error_code": body.ErrorCode,
				"data":       dto.NewSessionResponse(s.Snapshot()),
			})
		}
		return c.Status(fiber.StatusPreconditionRequired).JSON(body)

	case errors.Is(err, service.ErrNotLoaded),
		errors.Is(err, service.ErrSaveInProgress):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())

	case errors.Is(err, service.ErrDateLocked):
		return helper.JsonError(c, fiber.StatusLocked, err.Error())

	case errors.Is(err, service.ErrPeriodIndexOutOfRange),
		errors.Is(err, service.ErrPeriodNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, classRepo.ErrClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")

	case errors.As(err, &se):
		log.Printf("[ERROR] attendance session %s: %v", se.Op, se.Err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Gagal menghubungi server, perubahan belum tersimpan. Coba lagi")

	/* ---- scan ---- */
	case errors.Is(err, scanSvc.ErrScanUnavailable):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, scanSvc.ErrEmptyImage),
		errors.Is(err, scanSvc.ErrUnsupportedImage):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, scanSvc.ErrImageTooLarge):
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, scanSvc.ErrUpstream),
		errors.Is(err, scanSvc.ErrBadResponse):
		log.Printf("[WARN] scan logbook gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Scan gagal, silakan isi manual atau coba lagi")

	case errors.As(err, &fe):
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] attendance session: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan")
}
