package dto

import (
	"time"

	"presensiku_backend/internals/features/school/class_attendance_result/attendance_records/model"
	"presensiku_backend/internals/helpers/dbtime"
	"presensiku_backend/internals/helpers/rollno"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

/* ===================== REQUEST ===================== */

type PeriodPayload struct {
	PeriodNum         int       `json:"period_num"          validate:"required,min=1,max=24"`
	SubjectID         uuid.UUID `json:"subject_id"          validate:"required"`
	SubjectName       string    `json:"subject_name"        validate:"omitempty,max=120"`
	AbsentRollNumbers []string  `json:"absent_roll_numbers" validate:"omitempty,max=1000"`
}

// POST /api/a/attendance/mark
type MarkAttendanceRequest struct {
	ClassID uuid.UUID       `json:"class_id" validate:"required"`
	Date    string          `json:"date"     validate:"required,datetime=2006-01-02"`
	Periods []PeriodPayload `json:"periods"  validate:"required,min=1,max=24,dive"`
}

// ToModels: normalisasi absen terhadap roster + nama mapel diambil dari kelas.
// subjects: id → nama (sumber kebenaran, payload subject_name diabaikan kalau id dikenal)
func (r MarkAttendanceRequest) ToModels(roster rollno.Set, subjects map[uuid.UUID]string) []model.AttendancePeriodModel {
	out := make([]model.AttendancePeriodModel, 0, len(r.Periods))
	for _, p := range r.Periods {
		name := p.SubjectName
		if n, ok := subjects[p.SubjectID]; ok {
			name = n
		}
		out = append(out, model.AttendancePeriodModel{
			AttendancePeriodNum:               p.PeriodNum,
			AttendancePeriodSubjectID:         p.SubjectID,
			AttendancePeriodSubjectName:       name,
			AttendancePeriodAbsentRollNumbers: pq.StringArray(rollno.NormalizeSet(p.AbsentRollNumbers, roster)),
		})
	}
	return out
}

/* ===================== RESPONSE ===================== */

type PeriodResponse struct {
	PeriodNum         int       `json:"period_num"`
	SubjectID         uuid.UUID `json:"subject_id"`
	SubjectName       string    `json:"subject_name"`
	AbsentRollNumbers []string  `json:"absent_roll_numbers"`
}

type DayResponse struct {
	ClassID   uuid.UUID        `json:"class_id"`
	Date      string           `json:"date"`
	Periods   []PeriodResponse `json:"periods"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

func NewPeriodResponse(p model.AttendancePeriodModel) PeriodResponse {
	absent := []string(p.AttendancePeriodAbsentRollNumbers)
	if absent == nil {
		absent = []string{}
	}
	return PeriodResponse{
		PeriodNum:         p.AttendancePeriodNum,
		SubjectID:         p.AttendancePeriodSubjectID,
		SubjectName:       p.AttendancePeriodSubjectName,
		AbsentRollNumbers: absent,
	}
}

func NewDayResponse(d *model.AttendanceDayModel) DayResponse {
	out := DayResponse{
		ClassID: d.AttendanceDayClassID,
		Date:    dbtime.FormatDate(d.AttendanceDayDate),
		Periods: make([]PeriodResponse, 0, len(d.Periods)),
	}
	if !d.AttendanceDayUpdatedAt.IsZero() {
		t := d.AttendanceDayUpdatedAt
		out.UpdatedAt = &t
	}
	for _, p := range d.Periods {
		out.Periods = append(out.Periods, NewPeriodResponse(p))
	}
	return out
}

// EmptyDay: tanggal tanpa presensi → periods kosong, bukan 404
func EmptyDay(classID uuid.UUID, date string) DayResponse {
	return DayResponse{ClassID: classID, Date: date, Periods: []PeriodResponse{}}
}

type DatesResponse struct {
	ClassID uuid.UUID `json:"class_id"`
	Dates   []string  `json:"dates"`
}

func NewDatesResponse(classID uuid.UUID, dates []time.Time) DatesResponse {
	out := DatesResponse{ClassID: classID, Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		out.Dates = append(out.Dates, dbtime.FormatDate(d))
	}
	return out
}
