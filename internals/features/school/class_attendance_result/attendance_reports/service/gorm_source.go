package service

import (
	"context"

	recordRepo "presensiku_backend/internals/features/school/class_attendance_result/attendance_records/repository"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"
	"presensiku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSource: Source di atas repository kelas & presensi
type GormSource struct {
	Classes    *classRepo.ClassRepository
	Attendance *recordRepo.AttendanceRepository
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{
		Classes:    classRepo.NewClassRepository(db),
		Attendance: recordRepo.NewAttendanceRepository(db),
	}
}

var _ Source = (*GormSource)(nil)

func (g *GormSource) LoadClass(ctx context.Context, classID uuid.UUID) (ClassInfo, error) {
	m, err := g.Classes.FindByID(ctx, classID)
	if err != nil {
		return ClassInfo{}, err
	}
	return ClassInfo{
		ClassID:       m.ClassID,
		Name:          m.ClassName,
		Roster:        m.Roster(),
		MinPercentage: m.ClassMinAttendancePercentage,
	}, nil
}

func (g *GormSource) ListDays(ctx context.Context, classID uuid.UUID) ([]Day, error) {
	rows, err := g.Attendance.ListDays(ctx, classID)
	if err != nil {
		return nil, err
	}
	out := make([]Day, 0, len(rows))
	for _, d := range rows {
		day := Day{Date: dbtime.FormatDate(d.AttendanceDayDate), Periods: make([]DayPeriod, 0, len(d.Periods))}
		for _, p := range d.Periods {
			day.Periods = append(day.Periods, DayPeriod{
				PeriodNum:         p.AttendancePeriodNum,
				SubjectID:         p.AttendancePeriodSubjectID,
				SubjectName:       p.AttendancePeriodSubjectName,
				AbsentRollNumbers: []string(p.AttendancePeriodAbsentRollNumbers),
			})
		}
		out = append(out, day)
	}
	return out, nil
}
