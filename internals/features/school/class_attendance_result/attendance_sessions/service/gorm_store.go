package service

import (
	"context"
	"errors"

	recordModel "presensiku_backend/internals/features/school/class_attendance_result/attendance_records/model"
	recordRepo "presensiku_backend/internals/features/school/class_attendance_result/attendance_records/repository"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"
	"presensiku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormStore: Store di atas tabel classes + attendance_days/attendance_periods
type GormStore struct {
	Classes    *classRepo.ClassRepository
	Attendance *recordRepo.AttendanceRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		Classes:    classRepo.NewClassRepository(db),
		Attendance: recordRepo.NewAttendanceRepository(db),
	}
}

var _ Store = (*GormStore)(nil)

func (g *GormStore) LoadClass(ctx context.Context, classID uuid.UUID) (ClassSnapshot, error) {
	m, err := g.Classes.FindByID(ctx, classID)
	if err != nil {
		return ClassSnapshot{}, err
	}
	out := ClassSnapshot{
		ClassID:       m.ClassID,
		Name:          m.ClassName,
		Roster:        m.Roster(),
		MinPercentage: m.ClassMinAttendancePercentage,
		Subjects:      make([]Subject, 0, len(m.Subjects)),
	}
	for _, s := range m.Subjects {
		out.Subjects = append(out.Subjects, Subject{ID: s.ClassSubjectID, Name: s.ClassSubjectName})
	}
	return out, nil
}

func (g *GormStore) GetDay(ctx context.Context, classID uuid.UUID, date string) ([]SavedPeriod, error) {
	day, err := dbtime.ParseDate(date)
	if err != nil {
		return nil, err
	}
	d, err := g.Attendance.FindDay(ctx, classID, day)
	if errors.Is(err, recordRepo.ErrDayNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]SavedPeriod, 0, len(d.Periods))
	for _, p := range d.Periods {
		out = append(out, SavedPeriod{
			PeriodSlot: PeriodSlot{
				Period:      p.AttendancePeriodNum,
				SubjectID:   p.AttendancePeriodSubjectID,
				SubjectName: p.AttendancePeriodSubjectName,
			},
			AbsentRollNumbers: []string(p.AttendancePeriodAbsentRollNumbers),
		})
	}
	return out, nil
}

func (g *GormStore) SaveDay(ctx context.Context, classID uuid.UUID, date string, updatedBy uuid.UUID, periods []SavedPeriod) error {
	day, err := dbtime.ParseDate(date)
	if err != nil {
		return err
	}
	var by *uuid.UUID
	if updatedBy != uuid.Nil {
		by = &updatedBy
	}
	rows := make([]recordModel.AttendancePeriodModel, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, recordModel.AttendancePeriodModel{
			AttendancePeriodNum:               p.Period,
			AttendancePeriodSubjectID:         p.SubjectID,
			AttendancePeriodSubjectName:       p.SubjectName,
			AttendancePeriodAbsentRollNumbers: pq.StringArray(p.AbsentRollNumbers),
		})
	}
	_, err = g.Attendance.SaveDay(ctx, classID, day, by, rows)
	return err
}

func (g *GormStore) ListDates(ctx context.Context, classID uuid.UUID) ([]string, error) {
	dates, err := g.Attendance.ListDates(ctx, classID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, dbtime.FormatDate(d))
	}
	return out, nil
}
