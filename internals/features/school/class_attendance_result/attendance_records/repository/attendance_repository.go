// file: internals/features/school/class_attendance_result/attendance_records/repository/attendance_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"presensiku_backend/internals/features/school/class_attendance_result/attendance_records/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDayNotFound = errors.New("presensi tanggal ini belum ada")

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

func orderPeriods(db *gorm.DB) *gorm.DB {
	return db.Order("attendance_period_num ASC")
}

// FindDay: satu hari + periods (urut nomor jam)
func (r *AttendanceRepository) FindDay(ctx context.Context, classID uuid.UUID, date time.Time) (*model.AttendanceDayModel, error) {
	var d model.AttendanceDayModel
	err := r.DB.WithContext(ctx).
		Preload("Periods", orderPeriods).
		Where("attendance_day_class_id = ? AND attendance_day_date = ?", classID, date).
		Take(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDay mengganti seluruh isi satu hari dalam satu transaksi.
// Upsert baris day (class_id, date), hapus periods lama, insert periods baru.
// Tidak ada optimistic lock: penyimpanan terakhir yang menang.
func (r *AttendanceRepository) SaveDay(
	ctx context.Context,
	classID uuid.UUID,
	date time.Time,
	updatedBy *uuid.UUID,
	periods []model.AttendancePeriodModel,
) (*model.AttendanceDayModel, error) {
	var saved model.AttendanceDayModel

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		day := model.AttendanceDayModel{
			AttendanceDayClassID:   classID,
			AttendanceDayDate:      date,
			AttendanceDayUpdatedBy: updatedBy,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_day_class_id"},
				{Name: "attendance_day_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_day_updated_at",
				"attendance_day_updated_by",
			}),
		}).Create(&day).Error; err != nil {
			return err
		}

		// id dari RETURNING belum tentu terisi saat conflict → baca ulang
		if err := tx.
			Where("attendance_day_class_id = ? AND attendance_day_date = ?", classID, date).
			Take(&saved).Error; err != nil {
			return err
		}

		if err := tx.
			Where("attendance_period_day_id = ?", saved.AttendanceDayID).
			Delete(&model.AttendancePeriodModel{}).Error; err != nil {
			return err
		}

		if len(periods) == 0 {
			return nil
		}
		rows := make([]model.AttendancePeriodModel, 0, len(periods))
		for _, p := range periods {
			p.AttendancePeriodID = uuid.Nil
			p.AttendancePeriodDayID = saved.AttendanceDayID
			if p.AttendancePeriodAbsentRollNumbers == nil {
				p.AttendancePeriodAbsentRollNumbers = []string{}
			}
			rows = append(rows, p)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		saved.Periods = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListDates: semua tanggal yang sudah punya presensi (ASC)
func (r *AttendanceRepository) ListDates(ctx context.Context, classID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	err := r.DB.WithContext(ctx).
		Model(&model.AttendanceDayModel{}).
		Where("attendance_day_class_id = ?", classID).
		Where("EXISTS (SELECT 1 FROM attendance_periods p WHERE p.attendance_period_day_id = attendance_days.attendance_day_id)").
		Order("attendance_day_date ASC").
		Pluck("attendance_day_date", &dates).Error
	return dates, err
}

// ListDays: semua hari + periods, dipakai laporan & export
func (r *AttendanceRepository) ListDays(ctx context.Context, classID uuid.UUID) ([]model.AttendanceDayModel, error) {
	var days []model.AttendanceDayModel
	err := r.DB.WithContext(ctx).
		Preload("Periods", orderPeriods).
		Where("attendance_day_class_id = ?", classID).
		Order("attendance_day_date ASC").
		Find(&days).Error
	return days, err
}

// DeleteDay: hapus satu hari (periods ikut terhapus lewat cascade)
func (r *AttendanceRepository) DeleteDay(ctx context.Context, classID uuid.UUID, date time.Time) error {
	res := r.DB.WithContext(ctx).
		Where("attendance_day_class_id = ? AND attendance_day_date = ?", classID, date).
		Delete(&model.AttendanceDayModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDayNotFound
	}
	return nil
}
