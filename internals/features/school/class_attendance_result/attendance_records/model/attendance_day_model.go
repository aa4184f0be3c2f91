package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Nomor jam pelajaran 1..MaxPeriodNum (sama dengan tag validate PeriodPayload)
const MaxPeriodNum = 24

// AttendanceDayModel: satu tanggal presensi per kelas (unik class+date)
type AttendanceDayModel struct {
	AttendanceDayID        uuid.UUID  `gorm:"column:attendance_day_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_day_id"`
	AttendanceDayClassID   uuid.UUID  `gorm:"column:attendance_day_class_id;type:uuid;not null;uniqueIndex:uq_attendance_day_class_date,priority:1" json:"attendance_day_class_id"`
	AttendanceDayDate      time.Time  `gorm:"column:attendance_day_date;type:date;not null;uniqueIndex:uq_attendance_day_class_date,priority:2" json:"attendance_day_date"`
	AttendanceDayUpdatedBy *uuid.UUID `gorm:"column:attendance_day_updated_by;type:uuid" json:"attendance_day_updated_by,omitempty"`

	AttendanceDayCreatedAt time.Time `gorm:"column:attendance_day_created_at;autoCreateTime" json:"attendance_day_created_at"`
	AttendanceDayUpdatedAt time.Time `gorm:"column:attendance_day_updated_at;autoUpdateTime" json:"attendance_day_updated_at"`

	Periods []AttendancePeriodModel `gorm:"foreignKey:AttendancePeriodDayID;references:AttendanceDayID;constraint:OnDelete:CASCADE" json:"periods,omitempty"`
}

func (AttendanceDayModel) TableName() string { return "attendance_days" }

// AttendancePeriodModel: satu jam pelajaran + daftar nomor absen yang tidak hadir
type AttendancePeriodModel struct {
	AttendancePeriodID    uuid.UUID `gorm:"column:attendance_period_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_period_id"`
	AttendancePeriodDayID uuid.UUID `gorm:"column:attendance_period_day_id;type:uuid;not null;uniqueIndex:uq_attendance_period_day_num,priority:1" json:"attendance_period_day_id"`
	AttendancePeriodNum   int       `gorm:"column:attendance_period_num;not null;uniqueIndex:uq_attendance_period_day_num,priority:2"              json:"attendance_period_num"`

	// snapshot nama mapel saat disimpan
	AttendancePeriodSubjectID   uuid.UUID `gorm:"column:attendance_period_subject_id;type:uuid;not null;index" json:"attendance_period_subject_id"`
	AttendancePeriodSubjectName string    `gorm:"column:attendance_period_subject_name;type:varchar(120);not null" json:"attendance_period_subject_name"`

	// urut natural
	AttendancePeriodAbsentRollNumbers pq.StringArray `gorm:"column:attendance_period_absent_roll_numbers;type:text[];not null;default:'{}'" json:"attendance_period_absent_roll_numbers"`
}

func (AttendancePeriodModel) TableName() string { return "attendance_periods" }
