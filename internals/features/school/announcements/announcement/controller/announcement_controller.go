// file: internals/features/school/announcements/announcement/controller/announcement_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"presensiku_backend/internals/features/school/announcements/announcement/dto"
	"presensiku_backend/internals/features/school/announcements/announcement/model"
	classModel "presensiku_backend/internals/features/school/classes/classes/model"
	helper "presensiku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementController struct {
	DB *gorm.DB
}

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{DB: db}
}

var validate = validator.New()

func (h *AnnouncementController) classExists(c *fiber.Ctx, classID uuid.UUID) (bool, error) {
	var n int64
	err := h.DB.WithContext(c.UserContext()).
		Model(&classModel.ClassModel{}).
		Where("class_id = ?", classID).
		Count(&n).Error
	return n > 0, err
}

/* =========================================
   ADMIN
========================================= */

// GET /api/a/announcements?class_id=&only_global=&is_active=&q=
func (h *AnnouncementController) List(c *fiber.Ctx) error {
	var q dto.ListAnnouncementQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.WithContext(c.UserContext()).Model(&model.AnnouncementModel{})
	switch {
	case q.OnlyGlobal != nil && *q.OnlyGlobal:
		tx = tx.Where("announcement_class_id IS NULL")
	case q.ClassID != nil:
		tx = tx.Where("announcement_class_id = ?", *q.ClassID)
	}
	if q.IsActive != nil {
		tx = tx.Where("announcement_is_active = ?", *q.IsActive)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("announcement_title ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count announcements: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pengumuman")
	}
	var rows []model.AnnouncementModel
	if err := tx.Order("announcement_date DESC, announcement_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list announcements: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengumuman")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "ok", dto.NewAnnouncementResponses(rows), &pg)
}

// POST /api/a/announcements
func (h *AnnouncementController) Create(c *fiber.Ctx) error {
	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.AnnouncementClassID != nil {
		ok, err := h.classExists(c, *req.AnnouncementClassID)
		if err != nil {
			log.Printf("[ERROR] check class: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa kelas")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
	}

	createdBy, _ := helper.GetUserIDFromToken(c)
	m := req.ToModel(createdBy)
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		log.Printf("[ERROR] create announcement: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat pengumuman")
	}
	return helper.JsonCreated(c, "Pengumuman dibuat", dto.NewAnnouncementResponse(m))
}

// PATCH /api/a/announcements/:id
func (h *AnnouncementController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}
	if req.AnnouncementClassID != nil && !req.MakeGlobal {
		ok, err := h.classExists(c, *req.AnnouncementClassID)
		if err != nil || !ok {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
	}

	var m model.AnnouncementModel
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "announcement_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&m, "announcement_id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengumuman tidak ditemukan")
	}
	if err != nil {
		log.Printf("[ERROR] update announcement %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui pengumuman")
	}
	return helper.JsonUpdated(c, "Pengumuman diperbarui", dto.NewAnnouncementResponse(&m))
}

// DELETE /api/a/announcements/:id (soft delete)
func (h *AnnouncementController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := h.DB.WithContext(c.UserContext()).Delete(&model.AnnouncementModel{}, "announcement_id = ?", id)
	if res.Error != nil {
		log.Printf("[ERROR] delete announcement %s: %v", id, res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus pengumuman")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengumuman tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Pengumuman dihapus", fiber.Map{"announcement_id": id})
}

/* =========================================
   USER (siswa)
========================================= */

// GET /api/u/announcements → aktif, kelas sendiri + global, terbaru dulu
func (h *AnnouncementController) ListMine(c *fiber.Ctx) error {
	classID, err := helper.GetClassIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 10, 50)

	tx := h.DB.WithContext(c.UserContext()).
		Model(&model.AnnouncementModel{}).
		Where("announcement_is_active = TRUE").
		Where("(announcement_class_id = ? OR announcement_class_id IS NULL)", classID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count my announcements: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengumuman")
	}
	var rows []model.AnnouncementModel
	if err := tx.Order("announcement_date DESC, announcement_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list my announcements: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengumuman")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "ok", dto.NewAnnouncementResponses(rows), &pg)
}
