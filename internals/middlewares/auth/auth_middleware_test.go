package auth

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	authService "presensiku_backend/internals/features/users/auth/service"
	userModel "presensiku_backend/internals/features/users/users/model"
	"presensiku_backend/internals/constants"
	helper "presensiku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "rahasia-test"

type fakeChecker struct {
	black    map[string]bool
	inactive map[uuid.UUID]bool
	missing  bool
	err      error

	activeCalls int
}

func (f *fakeChecker) IsBlacklisted(token string) (bool, error) {
	return f.black[token], f.err
}

func (f *fakeChecker) IsUserActive(id uuid.UUID) (bool, error) {
	f.activeCalls++
	if f.missing {
		return false, gorm.ErrRecordNotFound
	}
	return !f.inactive[id], nil
}

func newApp(chk Checker) *fiber.App {
	app := fiber.New()
	app.Use(NewAuthMiddleware(secret, chk))
	app.Get("/admin", OnlyRoles(constants.RoleErrorAdmin("presensi"), constants.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		classID, _ := helper.GetClassIDFromToken(c)
		roll, _ := helper.GetRollNumberFromToken(c)
		exp, _ := c.Locals(helper.LocTokenExp).(time.Time)
		if exp.IsZero() {
			return errors.New("exp kosong")
		}
		return c.SendString(helper.GetRoleFromToken(c) + "|" + classID.String() + "|" + roll + "|" + helper.GetRawAccessToken(c))
	})
	return app
}

func issue(t *testing.T, u *userModel.UserModel, now time.Time) string {
	t.Helper()
	tok, _, err := authService.IssueAccessToken(secret, u, now, time.Hour)
	require.NoError(t, err)
	return tok
}

func student() *userModel.UserModel {
	classID := uuid.New()
	roll := "4"
	return &userModel.UserModel{ID: uuid.New(), Role: constants.RoleStudent, ClassID: &classID, RollNumber: &roll}
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware_StoresClaims(t *testing.T) {
	u := student()
	tok := issue(t, u, time.Now())
	app := newApp(&fakeChecker{})

	code, body := get(t, app, "/whoami", tok)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "student|"+u.ClassID.String()+"|4|"+tok, body)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	u := student()
	valid := issue(t, u, time.Now())
	expired := issue(t, u, time.Now().Add(-3*time.Hour))

	cases := []struct {
		name  string
		chk   *fakeChecker
		token string
		want  int
	}{
		{"tanpa token", &fakeChecker{}, "", fiber.StatusUnauthorized},
		{"kedaluwarsa", &fakeChecker{}, expired, fiber.StatusUnauthorized},
		{"rusak", &fakeChecker{}, "abc.def.ghi", fiber.StatusUnauthorized},
		{"blacklist", &fakeChecker{black: map[string]bool{valid: true}}, valid, fiber.StatusUnauthorized},
		{"user hilang", &fakeChecker{missing: true}, valid, fiber.StatusUnauthorized},
		{"nonaktif", &fakeChecker{inactive: map[uuid.UUID]bool{u.ID: true}}, valid, fiber.StatusForbidden},
		{"db error", &fakeChecker{err: errors.New("down")}, valid, fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := get(t, newApp(tc.chk), "/whoami", tc.token)
			assert.Equal(t, tc.want, code)
		})
	}
}

func TestAuthMiddleware_SubjectBukanUUID(t *testing.T) {
	now := time.Now()
	cl := authService.Claims{
		Role: constants.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "bukan-uuid",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte(secret))
	require.NoError(t, err)

	chk := &fakeChecker{}
	code, body := get(t, newApp(chk), "/whoami", tok)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Contains(t, body, "Token tidak valid")
	assert.Equal(t, 0, chk.activeCalls)
}

func TestOnlyRoles(t *testing.T) {
	app := newApp(&fakeChecker{})

	code, body := get(t, app, "/admin", issue(t, student(), time.Now()))
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Contains(t, body, "Hanya admin")

	admin := &userModel.UserModel{ID: uuid.New(), Role: constants.RoleAdmin}
	code, _ = get(t, app, "/admin", issue(t, admin, time.Now()))
	assert.Equal(t, fiber.StatusOK, code)
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	tok := issue(t, student(), time.Now())
	app := newApp(&fakeChecker{})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", "access_token="+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
