package dto

import (
	"time"

	"presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/service"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type LoadRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type UnlockRequest struct {
	Confirm bool `json:"confirm"`
}

// SubjectID kosong/null → kosongkan mapel jam itu
type UpdateSubjectRequest struct {
	SubjectID *string `json:"subject_id"`
}

func (r UpdateSubjectRequest) ParsedID() (uuid.UUID, error) {
	if r.SubjectID == nil || *r.SubjectID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(*r.SubjectID)
}

type ToggleAbsentRequest struct {
	RollNumber string `json:"roll_number" validate:"required,max=40"`
}

type BulkAbsentRequest struct {
	Text string `json:"text" validate:"max=20000"`
}

/* ===================== RESPONSE ===================== */

type SubjectItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PeriodItem struct {
	Index             int        `json:"index"`
	PeriodNum         int        `json:"period_num"`
	SubjectID         *uuid.UUID `json:"subject_id"`
	SubjectName       string     `json:"subject_name"`
	AbsentRollNumbers []string   `json:"absent_roll_numbers"`
	BulkText          string     `json:"bulk_text"`
}

type SessionResponse struct {
	Loaded        bool          `json:"loaded"`
	ClassID       *uuid.UUID    `json:"class_id,omitempty"`
	ClassName     string        `json:"class_name,omitempty"`
	Date          string        `json:"date,omitempty"`
	Roster        []string      `json:"roster"`
	Subjects      []SubjectItem `json:"subjects"`
	MinPercentage float64       `json:"min_attendance_percentage"`

	Periods []PeriodItem `json:"periods"`

	IsDateLocked     bool       `json:"is_date_locked"`
	HasModifications bool       `json:"has_modifications"`
	IsSaving         bool       `json:"is_saving"`
	PendingRemoval   *int       `json:"pending_removal,omitempty"`
	RelockArmed      bool       `json:"relock_armed"`
	RelockAt         *time.Time `json:"relock_at,omitempty"`
	AutoRelocked     bool       `json:"auto_relocked"`

	LoadWarning         string   `json:"load_warning,omitempty"`
	DatesWithAttendance []string `json:"dates_with_attendance"`
}

func NewSessionResponse(s service.Snapshot) SessionResponse {
	out := SessionResponse{
		Loaded:              s.Loaded,
		ClassName:           s.ClassName,
		Date:                s.Date,
		Roster:              nonNil(s.Roster),
		Subjects:            make([]SubjectItem, 0, len(s.Subjects)),
		MinPercentage:       s.MinPercentage,
		Periods:             make([]PeriodItem, 0, len(s.Periods)),
		IsDateLocked:        s.IsDateLocked,
		HasModifications:    s.HasModifications,
		IsSaving:            s.IsSaving,
		PendingRemoval:      s.PendingRemoval,
		RelockArmed:         s.RelockArmed,
		RelockAt:            s.RelockAt,
		AutoRelocked:        s.AutoRelocked,
		LoadWarning:         s.LoadWarning,
		DatesWithAttendance: nonNil(s.DatesWithAttendance),
	}
	if s.Loaded {
		id := s.ClassID
		out.ClassID = &id
	}
	for _, sub := range s.Subjects {
		out.Subjects = append(out.Subjects, SubjectItem{ID: sub.ID, Name: sub.Name})
	}
	for i, p := range s.Periods {
		item := PeriodItem{
			Index:             i,
			PeriodNum:         p.Period,
			SubjectName:       p.SubjectName,
			AbsentRollNumbers: nonNil(s.Absentees[i]),
			BulkText:          s.BulkText[i],
		}
		if p.HasSubject() {
			id := p.SubjectID
			item.SubjectID = &id
		}
		out.Periods = append(out.Periods, item)
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
