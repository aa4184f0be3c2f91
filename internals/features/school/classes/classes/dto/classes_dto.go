// file: internals/features/school/classes/classes/dto/classes_dto.go
package dto

import (
	"strings"

	model "presensiku_backend/internals/features/school/classes/classes/model"
	"presensiku_backend/internals/helpers/rollno"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/* ===================== REQUESTS ===================== */

type CreateClassRequest struct {
	ClassName                    string         `json:"class_name"                      validate:"required,min=1,max=120"`
	ClassRollNumbers             []string       `json:"class_roll_numbers"              validate:"omitempty,max=1000"`
	ClassTotalStudents           int            `json:"class_total_students"            validate:"omitempty,min=0,max=1000"`
	ClassMinAttendancePercentage *float64       `json:"class_min_attendance_percentage" validate:"omitempty,min=0,max=100"`
	ClassSubjects                []string       `json:"class_subjects"                  validate:"omitempty,dive,required,max=120"`
	ClassTimetable               datatypes.JSON `json:"class_timetable"`
}

// ToModel: roster dinormalisasi di sini (trim, kutip, dedupe, urut natural)
func (r CreateClassRequest) ToModel(defaultMin float64) *model.ClassModel {
	m := &model.ClassModel{
		ClassName:                    strings.TrimSpace(r.ClassName),
		ClassRollNumbers:             pq.StringArray(rollno.NormalizeSet(r.ClassRollNumbers, nil)),
		ClassTotalStudents:           r.ClassTotalStudents,
		ClassMinAttendancePercentage: defaultMin,
		ClassTimetable:               r.ClassTimetable,
	}
	if len(m.ClassRollNumbers) > 0 {
		m.ClassTotalStudents = len(m.ClassRollNumbers)
	}
	if r.ClassMinAttendancePercentage != nil {
		m.ClassMinAttendancePercentage = *r.ClassMinAttendancePercentage
	}
	for _, name := range r.ClassSubjects {
		if name = strings.TrimSpace(name); name != "" {
			m.Subjects = append(m.Subjects, model.ClassSubjectModel{ClassSubjectName: name})
		}
	}
	return m
}

type UpdateClassRequest struct {
	ClassName *string `json:"class_name" validate:"omitempty,min=1,max=120"`
}

// Roster: ganti total (replace), bukan merge
type UpdateRosterRequest struct {
	ClassRollNumbers   []string `json:"class_roll_numbers"   validate:"omitempty,max=1000"`
	ClassTotalStudents *int     `json:"class_total_students" validate:"omitempty,min=0,max=1000"`
}

func (r UpdateRosterRequest) ToUpdates() map[string]any {
	rolls := rollno.NormalizeSet(r.ClassRollNumbers, nil)
	updates := map[string]any{
		"class_roll_numbers": pq.StringArray(rolls),
	}
	switch {
	case len(rolls) > 0:
		updates["class_total_students"] = len(rolls)
	case r.ClassTotalStudents != nil:
		updates["class_total_students"] = *r.ClassTotalStudents
	}
	return updates
}

type UpdateSettingsRequest struct {
	MinAttendancePercentage *float64 `json:"min_attendance_percentage" validate:"required,min=0,max=100"`
}

type UpdateTimetableRequest struct {
	ClassTimetable datatypes.JSON `json:"class_timetable" validate:"required"`
}

type CreateSubjectRequest struct {
	ClassSubjectName string `json:"class_subject_name" validate:"required,min=1,max=120"`
}

/* ===================== RESPONSES ===================== */

type SubjectLite struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ClassSettings struct {
	MinAttendancePercentage float64 `json:"min_attendance_percentage"`
}

type ClassResponse struct {
	ClassID       uuid.UUID      `json:"class_id"`
	ClassName     string         `json:"class_name"`
	Subjects      []SubjectLite  `json:"subjects"`
	RollNumbers   []string       `json:"roll_numbers"`
	TotalStudents int            `json:"total_students"`
	Timetable     datatypes.JSON `json:"timetable,omitempty"`
	Settings      ClassSettings  `json:"settings"`
}

func NewClassResponse(m *model.ClassModel) ClassResponse {
	roster := m.Roster()
	subjects := make([]SubjectLite, 0, len(m.Subjects))
	for _, s := range m.Subjects {
		subjects = append(subjects, SubjectLite{ID: s.ClassSubjectID, Name: s.ClassSubjectName})
	}
	return ClassResponse{
		ClassID:       m.ClassID,
		ClassName:     m.ClassName,
		Subjects:      subjects,
		RollNumbers:   roster,
		TotalStudents: len(roster),
		Timetable:     m.ClassTimetable,
		Settings: ClassSettings{
			MinAttendancePercentage: m.ClassMinAttendancePercentage,
		},
	}
}
