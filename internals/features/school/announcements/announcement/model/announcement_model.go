package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnnouncementModel: pengumuman sekolah. ClassID NULL = GLOBAL (semua kelas)
type AnnouncementModel struct {
	AnnouncementID        uuid.UUID  `gorm:"column:announcement_id;type:uuid;default:gen_random_uuid();primaryKey" json:"announcement_id"`
	AnnouncementClassID   *uuid.UUID `gorm:"column:announcement_class_id;type:uuid;index" json:"announcement_class_id,omitempty"`
	AnnouncementCreatedBy *uuid.UUID `gorm:"column:announcement_created_by;type:uuid" json:"announcement_created_by,omitempty"`

	AnnouncementTitle    string    `gorm:"column:announcement_title;type:varchar(200);not null" json:"announcement_title"`
	AnnouncementDate     time.Time `gorm:"column:announcement_date;type:date;not null;index" json:"announcement_date"`
	AnnouncementContent  string    `gorm:"column:announcement_content;type:text;not null" json:"announcement_content"`
	AnnouncementIsActive bool      `gorm:"column:announcement_is_active;not null;default:true" json:"announcement_is_active"`

	AnnouncementCreatedAt time.Time      `gorm:"column:announcement_created_at;autoCreateTime" json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time      `gorm:"column:announcement_updated_at;autoUpdateTime" json:"announcement_updated_at"`
	AnnouncementDeletedAt gorm.DeletedAt `gorm:"column:announcement_deleted_at;index" json:"-"`
}

func (AnnouncementModel) TableName() string { return "announcements" }
