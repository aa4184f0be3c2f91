// file: internals/features/school/classes/classes/model/classes_model.go
package model

import (
	"time"

	"presensiku_backend/internals/helpers/rollno"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClassModel merepresentasikan tabel `classes`
type ClassModel struct {
	ClassID   uuid.UUID `json:"class_id"   gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassName string    `json:"class_name" gorm:"column:class_name;type:varchar(120);not null;uniqueIndex:uq_classes_name"`

	// Roster: daftar nomor absen eksplisit, atau cukup total siswa (→ "1".."n")
	ClassRollNumbers   pq.StringArray `json:"class_roll_numbers"   gorm:"column:class_roll_numbers;type:text[]"`
	ClassTotalStudents int            `json:"class_total_students" gorm:"column:class_total_students;not null;default:0"`

	// Settings
	ClassMinAttendancePercentage float64 `json:"class_min_attendance_percentage" gorm:"column:class_min_attendance_percentage;type:numeric(5,2);not null;default:75"`

	// Jadwal mingguan (bebas, JSONB) → {"monday":[{"period":1,"subject_id":"..."}], ...}
	ClassTimetable datatypes.JSON `json:"class_timetable,omitempty" gorm:"column:class_timetable;type:jsonb"`

	ClassCreatedAt time.Time      `json:"class_created_at"           gorm:"column:class_created_at;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at"           gorm:"column:class_updated_at;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;index"`

	Subjects []ClassSubjectModel `json:"subjects,omitempty" gorm:"foreignKey:ClassSubjectClassID;references:ClassID"`
}

func (ClassModel) TableName() string { return "classes" }

// Roster: allowedRollSet kelas, sudah ternormalisasi & urut natural
func (m ClassModel) Roster() []string {
	if len(m.ClassRollNumbers) > 0 {
		return rollno.NormalizeSet(m.ClassRollNumbers, nil)
	}
	return rollno.SequentialRoster(m.ClassTotalStudents)
}
