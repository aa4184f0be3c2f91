// file: internals/features/users/users/controller/student_account_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"presensiku_backend/internals/constants"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"
	authRepo "presensiku_backend/internals/features/users/auth/repository"
	authService "presensiku_backend/internals/features/users/auth/service"
	"presensiku_backend/internals/features/users/users/dto"
	"presensiku_backend/internals/features/users/users/model"
	helper "presensiku_backend/internals/helpers"
	"presensiku_backend/internals/helpers/rollno"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StudentAccountController struct {
	DB      *gorm.DB
	Classes *classRepo.ClassRepository
}

func NewStudentAccountController(db *gorm.DB) *StudentAccountController {
	return &StudentAccountController{DB: db, Classes: classRepo.NewClassRepository(db)}
}

var validate = validator.New()

// GET /api/a/students?class_id=&q=
func (h *StudentAccountController) List(c *fiber.Ctx) error {
	var q dto.ListStudentAccountQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 50, 200)

	tx := h.DB.WithContext(c.UserContext()).
		Model(&model.UserModel{}).
		Where("role = ?", constants.RoleStudent)
	if q.ClassID != nil {
		tx = tx.Where("class_id = ?", *q.ClassID)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("(user_name ILIKE ? OR roll_number = ?)", "%"+s+"%", rollno.Normalize(s))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count student accounts: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung akun siswa")
	}
	var rows []model.UserModel
	if err := tx.Order("class_id ASC, roll_number ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list student accounts: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil akun siswa")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "ok", dto.NewStudentAccountResponses(rows), &pg)
}

// PUT /api/a/students/:class_id/:roll → buat akun atau reset PIN
func (h *StudentAccountController) Upsert(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDParam(c, "class_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	roll := rollno.Normalize(c.Params("roll"))
	if roll == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nomor absen kosong")
	}

	var req dto.UpsertStudentAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	class, err := h.Classes.FindByID(c.UserContext(), classID)
	if errors.Is(err, classRepo.ErrClassNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	if err != nil {
		log.Printf("[ERROR] load class %s: %v", classID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat kelas")
	}
	if !rollno.NewSet(class.Roster()).Has(roll) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Nomor absen "+roll+" tidak ada di kelas ini")
	}

	hash, err := authService.HashPassword(req.Pin)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses PIN")
	}

	var (
		user    *model.UserModel
		created bool
	)
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		existing, err := authRepo.FindStudent(tx, classID, roll)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			user = &model.UserModel{
				UserName:   req.DisplayName(roll),
				Password:   hash,
				Role:       constants.RoleStudent,
				ClassID:    &classID,
				RollNumber: &roll,
				IsActive:   true,
			}
			return authRepo.CreateUser(tx, user)
		case err != nil:
			return err
		}

		updates := map[string]any{"password": hash, "is_active": true}
		if strings.TrimSpace(req.UserName) != "" {
			updates["user_name"] = strings.TrimSpace(req.UserName)
		}
		if err := tx.Model(existing).Updates(updates).Error; err != nil {
			return err
		}
		user = existing
		return nil
	})
	if helper.IsUniqueViolation(err) {
		return helper.JsonError(c, fiber.StatusConflict, "Akun siswa sedang dibuat, coba lagi")
	}
	if err != nil {
		log.Printf("[ERROR] upsert student %s/%s: %v", classID, roll, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan akun siswa")
	}

	if created {
		return helper.JsonCreated(c, "Akun siswa dibuat", dto.NewStudentAccountResponse(user))
	}
	return helper.JsonUpdated(c, "PIN siswa direset", dto.NewStudentAccountResponse(user))
}

// PATCH /api/a/students/:id/active
func (h *StudentAccountController) SetActive(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.UserModel{}).
		Where("id = ? AND role = ?", id, constants.RoleStudent).
		Update("is_active", *req.IsActive)
	if res.Error != nil {
		log.Printf("[ERROR] set active %s: %v", id, res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui akun siswa")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Akun siswa tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Status akun diperbarui", fiber.Map{"id": id, "is_active": *req.IsActive})
}

// DELETE /api/a/students/:id
func (h *StudentAccountController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := h.DB.WithContext(c.UserContext()).
		Where("id = ? AND role = ?", id, constants.RoleStudent).
		Delete(&model.UserModel{})
	if res.Error != nil {
		log.Printf("[ERROR] delete student account %s: %v", id, res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus akun siswa")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Akun siswa tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Akun siswa dihapus", fiber.Map{"id": id})
}
