package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSubjectModel: mapel yang diajarkan di satu kelas
type ClassSubjectModel struct {
	ClassSubjectID      uuid.UUID `json:"class_subject_id"       gorm:"column:class_subject_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassSubjectClassID uuid.UUID `json:"class_subject_class_id" gorm:"column:class_subject_class_id;type:uuid;not null;index"`
	ClassSubjectName    string    `json:"class_subject_name"     gorm:"column:class_subject_name;type:varchar(120);not null"`

	ClassSubjectCreatedAt time.Time      `json:"class_subject_created_at"           gorm:"column:class_subject_created_at;autoCreateTime"`
	ClassSubjectDeletedAt gorm.DeletedAt `json:"class_subject_deleted_at,omitempty" gorm:"column:class_subject_deleted_at;index"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }
