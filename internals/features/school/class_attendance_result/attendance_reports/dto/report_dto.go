package dto

import (
	"presensiku_backend/internals/features/school/class_attendance_result/attendance_reports/service"

	"github.com/google/uuid"
)

/* ===================== QUERY ===================== */

type ProjectionQuery struct {
	Skip      int    `query:"skip"       validate:"min=0,max=1000"`
	SubjectID string `query:"subject_id" validate:"omitempty,uuid"`
}

func (q ProjectionQuery) SubjectUUID() uuid.UUID {
	if q.SubjectID == "" {
		return uuid.Nil
	}
	id, _ := uuid.Parse(q.SubjectID)
	return id
}

/* ===================== RESPONSE ===================== */

// persentase dibulatkan 1 desimal (tampilan); perhitungan tetap presisi penuh

type OverallResponse struct {
	Attended   int     `json:"attended"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

func NewOverallResponse(o service.Overall) OverallResponse {
	return OverallResponse{Attended: o.Attended, Total: o.Total, Percentage: service.Round1(o.Percentage())}
}

type SubjectRecordResponse struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Attended    int       `json:"attended"`
	Total       int       `json:"total"`
	Percentage  float64   `json:"percentage"`
	BelowMin    bool      `json:"below_min"`
}

func NewSubjectRecordResponse(s service.SubjectAttendance, minPct float64) SubjectRecordResponse {
	return SubjectRecordResponse{
		SubjectID:   s.SubjectID,
		SubjectName: s.SubjectName,
		Attended:    s.Attended,
		Total:       s.Total,
		Percentage:  service.Round1(s.Percentage()),
		BelowMin:    s.Percentage() < minPct,
	}
}

type StudentReportResponse struct {
	ClassID       uuid.UUID               `json:"class_id"`
	ClassName     string                  `json:"class_name"`
	RollNumber    string                  `json:"roll_number"`
	MinPercentage float64                 `json:"min_attendance_percentage"`
	DaysRecorded  int                     `json:"days_recorded"`
	Subjects      []SubjectRecordResponse `json:"subjects"`
	Overall       OverallResponse         `json:"overall"`
}

func NewStudentReportResponse(r service.StudentReport) StudentReportResponse {
	out := StudentReportResponse{
		ClassID:       r.Class.ClassID,
		ClassName:     r.Class.Name,
		RollNumber:    r.RollNumber,
		MinPercentage: r.Class.MinPercentage,
		DaysRecorded:  r.Days,
		Subjects:      make([]SubjectRecordResponse, 0, len(r.Subjects)),
		Overall:       NewOverallResponse(r.Overall),
	}
	for _, s := range r.Subjects {
		out.Subjects = append(out.Subjects, NewSubjectRecordResponse(s, r.Class.MinPercentage))
	}
	return out
}

type ImpactResponse struct {
	SubjectID         uuid.UUID `json:"subject_id"`
	SubjectName       string    `json:"subject_name"`
	Attended          int       `json:"attended"`
	Total             int       `json:"total"`
	CurrentPercentage float64   `json:"current_percentage"`

	SkipCount       int     `json:"skip_count"`
	AfterAttended   int     `json:"after_attended"`
	AfterTotal      int     `json:"after_total"`
	AfterPercentage float64 `json:"after_percentage"`
	PercentDrop     float64 `json:"percent_drop"`
	IsDanger        bool    `json:"is_danger"`
	IsSafe          bool    `json:"is_safe"`

	MaxBunkable   int  `json:"max_bunkable"`
	BunkUnlimited bool `json:"bunk_unlimited"`

	// hanya ada kalau after_percentage < ambang
	ClassesToRecover *int `json:"classes_to_recover,omitempty"`
	Recoverable      bool `json:"recoverable"`
}

func NewImpactResponse(p service.SubjectProjection) ImpactResponse {
	out := ImpactResponse{
		SubjectID:         p.Record.SubjectID,
		SubjectName:       p.Record.SubjectName,
		Attended:          p.Record.Attended,
		Total:             p.Record.Total,
		CurrentPercentage: service.Round1(p.Record.Percentage()),
		SkipCount:         p.Impact.SkipCount,
		AfterAttended:     p.Impact.AfterAttended,
		AfterTotal:        p.Impact.AfterTotal,
		AfterPercentage:   service.Round1(p.Impact.AfterPercentage),
		PercentDrop:       service.Round1(p.Impact.PercentDrop),
		IsDanger:          p.Impact.IsDanger,
		IsSafe:            p.Impact.IsSafe,
		MaxBunkable:       p.Impact.MaxBunkable,
		BunkUnlimited:     p.Impact.BunkUnlimited,
		Recoverable:       p.Impact.Recoverable,
	}
	if p.Impact.IsDanger && p.Impact.Recoverable {
		n := p.Impact.ClassesToRecover
		out.ClassesToRecover = &n
	}
	return out
}

type ProjectionResponse struct {
	ClassID       uuid.UUID        `json:"class_id"`
	RollNumber    string           `json:"roll_number"`
	MinPercentage float64          `json:"min_attendance_percentage"`
	SkipCount     int              `json:"skip_count"`
	Subjects      []ImpactResponse `json:"subjects"`
}

func NewProjectionResponse(r service.StudentReport, skip int, items []service.SubjectProjection) ProjectionResponse {
	out := ProjectionResponse{
		ClassID:       r.Class.ClassID,
		RollNumber:    r.RollNumber,
		MinPercentage: r.Class.MinPercentage,
		SkipCount:     skip,
		Subjects:      make([]ImpactResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Subjects = append(out.Subjects, NewImpactResponse(it))
	}
	return out
}

type SummaryRowResponse struct {
	RollNumber string  `json:"roll_number"`
	Attended   int     `json:"attended"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	BelowMin   bool    `json:"below_min"`
}

type SummaryResponse struct {
	ClassID       uuid.UUID            `json:"class_id"`
	ClassName     string               `json:"class_name"`
	MinPercentage float64              `json:"min_attendance_percentage"`
	DaysRecorded  int                  `json:"days_recorded"`
	BelowMinCount int                  `json:"below_min_count"`
	Students      []SummaryRowResponse `json:"students"`
}

func NewSummaryResponse(s service.ClassSummary) SummaryResponse {
	out := SummaryResponse{
		ClassID:       s.Class.ClassID,
		ClassName:     s.Class.Name,
		MinPercentage: s.Class.MinPercentage,
		DaysRecorded:  s.Days,
		Students:      make([]SummaryRowResponse, 0, len(s.Rows)),
	}
	for _, r := range s.Rows {
		if r.BelowMin {
			out.BelowMinCount++
		}
		out.Students = append(out.Students, SummaryRowResponse{
			RollNumber: r.RollNumber,
			Attended:   r.Overall.Attended,
			Total:      r.Overall.Total,
			Percentage: service.Round1(r.Overall.Percentage()),
			BelowMin:   r.BelowMin,
		})
	}
	return out
}
