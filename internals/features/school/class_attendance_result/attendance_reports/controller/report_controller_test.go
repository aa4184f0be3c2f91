package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"presensiku_backend/internals/features/school/class_attendance_result/attendance_reports/dto"
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_reports/service"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"
	helper "presensiku_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	classID = uuid.MustParse("6f1c1d7e-9f55-4d55-9a0c-5a4a0b6e2c01")
	mathID  = uuid.MustParse("a1000000-0000-0000-0000-000000000001")
)

type stubSource struct{}

func (stubSource) LoadClass(_ context.Context, id uuid.UUID) (service.ClassInfo, error) {
	if id != classID {
		return service.ClassInfo{}, classRepo.ErrClassNotFound
	}
	return service.ClassInfo{ClassID: classID, Name: "XII IPA 3", Roster: []string{"1", "2"}, MinPercentage: 75}, nil
}

// Matematika: 40 pertemuan, siswa 2 absen 10 kali → 30/40
func (stubSource) ListDays(_ context.Context, _ uuid.UUID) ([]service.Day, error) {
	days := make([]service.Day, 0, 40)
	for i := 0; i < 40; i++ {
		var absent []string
		if i < 10 {
			absent = []string{"2"}
		}
		days = append(days, service.Day{Date: "2026-01-01", Periods: []service.DayPeriod{
			{PeriodNum: 1, SubjectID: mathID, SubjectName: "Matematika", AbsentRollNumbers: absent},
		}})
	}
	return days, nil
}

func newApp() *fiber.App {
	h := NewReportController(service.NewReporter(stubSource{}))
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocClassID, classID.String())
		c.Locals(helper.LocRollNumber, "2")
		return c.Next()
	})
	app.Get("/u/reports/me", h.GetMine)
	app.Get("/u/reports/me/projection", h.ProjectMine)
	app.Get("/a/reports/:class_id/summary", h.Summary)
	app.Get("/a/reports/:class_id/export.xlsx", h.Export)
	app.Get("/a/reports/:class_id/students/:roll", h.GetStudent)
	return app
}

func get(t *testing.T, app *fiber.App, path string, out any) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, sonic.Unmarshal(raw, out), string(raw))
	}
	return resp, raw
}

func TestReport_Mine(t *testing.T) {
	var body struct {
		Data dto.StudentReportResponse `json:"data"`
	}
	resp, _ := get(t, newApp(), "/u/reports/me", &body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", body.Data.RollNumber)
	require.Len(t, body.Data.Subjects, 1)
	assert.Equal(t, 30, body.Data.Subjects[0].Attended)
	assert.Equal(t, 40, body.Data.Subjects[0].Total)
	assert.Equal(t, 75.0, body.Data.Subjects[0].Percentage)
	assert.False(t, body.Data.Subjects[0].BelowMin)
}

func TestReport_ProjectionMine(t *testing.T) {
	var body struct {
		Data dto.ProjectionResponse `json:"data"`
	}
	resp, _ := get(t, newApp(), "/u/reports/me/projection?skip=1&subject_id="+mathID.String(), &body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, body.Data.Subjects, 1)

	imp := body.Data.Subjects[0]
	assert.Equal(t, 41, imp.AfterTotal)
	assert.Equal(t, 73.2, imp.AfterPercentage)
	assert.True(t, imp.IsDanger)
	assert.Equal(t, 0, imp.MaxBunkable)
	require.NotNil(t, imp.ClassesToRecover)
	assert.Equal(t, 3, *imp.ClassesToRecover)
}

func TestReport_ProjectionRejectsNegativeSkip(t *testing.T) {
	resp, _ := get(t, newApp(), "/u/reports/me/projection?skip=-2", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestReport_StudentNotInRoster(t *testing.T) {
	resp, _ := get(t, newApp(), "/a/reports/"+classID.String()+"/students/99", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, newApp(), "/a/reports/"+uuid.NewString()+"/students/1", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReport_Summary(t *testing.T) {
	var body struct {
		Data dto.SummaryResponse `json:"data"`
	}
	resp, _ := get(t, newApp(), "/a/reports/"+classID.String()+"/summary", &body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 40, body.Data.DaysRecorded)
	require.Len(t, body.Data.Students, 2)
	assert.Equal(t, 100.0, body.Data.Students[0].Percentage)
	assert.Equal(t, 0, body.Data.BelowMinCount)
}

func TestReport_Export(t *testing.T) {
	resp, raw := get(t, newApp(), "/a/reports/"+classID.String()+"/export.xlsx", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentDisposition), "attachment"))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "rekap-xii-ipa-3-")
	// xlsx = zip
	assert.Equal(t, "PK", string(raw[:2]))
}
