package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Nama locals yang diisi AuthMiddleware
const (
	LocUserID     = "user_id"
	LocUserRole   = "userRole"
	LocClassID    = "class_id"
	LocRollNumber = "roll_number"
	LocTokenExp   = "token_exp"
)

// Ambil user_id dari c.Locals("user_id")
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocUserID, "User belum login", "User ID pada token tidak valid")
}

// Ambil class_id milik student dari token
func GetClassIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocClassID, "Token tidak memuat kelas", "Class ID pada token tidak valid")
}

func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals(LocUserRole).(string)
	return strings.TrimSpace(role)
}

func GetRollNumberFromToken(c *fiber.Ctx) (string, error) {
	roll, _ := c.Locals(LocRollNumber).(string)
	roll = strings.TrimSpace(roll)
	if roll == "" {
		return "", fiber.NewError(fiber.StatusForbidden, "Token tidak memuat nomor absen")
	}
	return roll, nil
}

func uuidFromLocals(c *fiber.Ctx, key, missingMsg, invalidMsg string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, invalidMsg)
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, invalidMsg)
	}
}

// ParseUUIDParam: ambil :param sebagai UUID (400 kalau invalid)
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return id, nil
}
