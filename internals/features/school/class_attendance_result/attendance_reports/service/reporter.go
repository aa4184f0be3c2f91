package service

import (
	"context"
	"errors"
	"sort"

	"presensiku_backend/internals/helpers/rollno"

	"github.com/google/uuid"
)

var (
	ErrRollNotInClass  = errors.New("nomor absen tidak terdaftar di kelas ini")
	ErrSubjectNotFound = errors.New("mapel belum punya catatan presensi")
)

// ClassInfo: bagian kelas yang dibutuhkan laporan
type ClassInfo struct {
	ClassID       uuid.UUID
	Name          string
	Roster        []string
	MinPercentage float64
}

// Source: data mentah laporan. GormSource adalah implementasi produksi.
type Source interface {
	LoadClass(ctx context.Context, classID uuid.UUID) (ClassInfo, error)
	ListDays(ctx context.Context, classID uuid.UUID) ([]Day, error)
}

type Reporter struct {
	Src Source
}

func NewReporter(src Source) *Reporter {
	return &Reporter{Src: src}
}

/* ===================== STUDENT ===================== */

type StudentReport struct {
	Class      ClassInfo
	RollNumber string
	Subjects   []SubjectAttendance
	Overall    Overall
	Days       int
}

func (r *Reporter) StudentReport(ctx context.Context, classID uuid.UUID, roll string) (StudentReport, error) {
	class, days, err := r.load(ctx, classID)
	if err != nil {
		return StudentReport{}, err
	}
	roll = rollno.Normalize(roll)
	if !rollno.NewSet(class.Roster).Has(roll) {
		return StudentReport{}, ErrRollNotInClass
	}

	subjects := AggregateStudent(days, roll)
	return StudentReport{
		Class:      class,
		RollNumber: roll,
		Subjects:   subjects,
		Overall:    SumOverall(subjects),
		Days:       len(days),
	}, nil
}

// SubjectProjection: rekap satu mapel + dampak skip
type SubjectProjection struct {
	Record SubjectAttendance
	Impact Impact
}

// Projection: dampak skip untuk semua mapel siswa, atau satu mapel (subjectID != Nil)
func (r *Reporter) Projection(ctx context.Context, classID uuid.UUID, roll string, skip int, subjectID uuid.UUID) (StudentReport, []SubjectProjection, error) {
	rep, err := r.StudentReport(ctx, classID, roll)
	if err != nil {
		return StudentReport{}, nil, err
	}

	out := make([]SubjectProjection, 0, len(rep.Subjects))
	for _, s := range rep.Subjects {
		if subjectID != uuid.Nil && s.SubjectID != subjectID {
			continue
		}
		out = append(out, SubjectProjection{
			Record: s,
			Impact: ProjectImpact(s, skip, rep.Class.MinPercentage),
		})
	}
	if subjectID != uuid.Nil && len(out) == 0 {
		return StudentReport{}, nil, ErrSubjectNotFound
	}
	return rep, out, nil
}

/* ===================== CLASS ===================== */

type SummaryRow struct {
	RollNumber string
	Overall    Overall
	BelowMin   bool
}

type ClassSummary struct {
	Class ClassInfo
	Days  int
	Rows  []SummaryRow
}

func (r *Reporter) ClassSummary(ctx context.Context, classID uuid.UUID) (ClassSummary, error) {
	class, days, err := r.load(ctx, classID)
	if err != nil {
		return ClassSummary{}, err
	}
	totals := AggregateClass(days, class.Roster)

	rows := make([]SummaryRow, 0, len(class.Roster))
	for _, roll := range class.Roster {
		o, ok := totals[roll]
		if !ok {
			continue
		}
		rows = append(rows, SummaryRow{
			RollNumber: roll,
			Overall:    o,
			BelowMin:   o.Percentage() < class.MinPercentage,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rollno.Less(rows[i].RollNumber, rows[j].RollNumber) })
	return ClassSummary{Class: class, Days: len(days), Rows: rows}, nil
}

// Matrix: roll × mapel untuk export
type Matrix struct {
	Class    ClassInfo
	Subjects []SubjectAttendance // hanya ID & nama, urut nama
	Rows     []MatrixRow
}

type MatrixRow struct {
	RollNumber string
	BySubject  map[uuid.UUID]SubjectAttendance
	Overall    Overall
}

func (r *Reporter) Matrix(ctx context.Context, classID uuid.UUID) (Matrix, error) {
	class, days, err := r.load(ctx, classID)
	if err != nil {
		return Matrix{}, err
	}

	seen := map[uuid.UUID]int{}
	m := Matrix{Class: class}
	for _, roll := range class.Roster {
		subs := AggregateStudent(days, roll)
		row := MatrixRow{
			RollNumber: roll,
			BySubject:  make(map[uuid.UUID]SubjectAttendance, len(subs)),
			Overall:    SumOverall(subs),
		}
		for _, s := range subs {
			row.BySubject[s.SubjectID] = s
			if i, ok := seen[s.SubjectID]; ok {
				m.Subjects[i].SubjectName = s.SubjectName
				continue
			}
			seen[s.SubjectID] = len(m.Subjects)
			m.Subjects = append(m.Subjects, SubjectAttendance{SubjectID: s.SubjectID, SubjectName: s.SubjectName})
		}
		m.Rows = append(m.Rows, row)
	}
	sortSubjects(m.Subjects)
	return m, nil
}

func (r *Reporter) load(ctx context.Context, classID uuid.UUID) (ClassInfo, []Day, error) {
	class, err := r.Src.LoadClass(ctx, classID)
	if err != nil {
		return ClassInfo{}, nil, err
	}
	days, err := r.Src.ListDays(ctx, classID)
	if err != nil {
		return ClassInfo{}, nil, err
	}
	return class, days, nil
}
