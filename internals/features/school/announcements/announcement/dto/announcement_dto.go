// internals/features/school/announcements/announcement/dto/announcement_dto.go
package dto

import (
	"strings"
	"time"

	"presensiku_backend/internals/features/school/announcements/announcement/model"
	"presensiku_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

// Create: created_by diambil dari token (bukan dari body)
type CreateAnnouncementRequest struct {
	AnnouncementClassID  *uuid.UUID `json:"announcement_class_id" validate:"omitempty"` // NULL = GLOBAL
	AnnouncementTitle    string     `json:"announcement_title"    validate:"required,min=3,max=200"`
	AnnouncementDate     string     `json:"announcement_date"     validate:"omitempty,datetime=2006-01-02"` // kosong = hari ini
	AnnouncementContent  string     `json:"announcement_content"  validate:"required,min=3"`
	AnnouncementIsActive *bool      `json:"announcement_is_active" validate:"omitempty"`
}

func (r CreateAnnouncementRequest) ToModel(createdBy uuid.UUID) *model.AnnouncementModel {
	date := strings.TrimSpace(r.AnnouncementDate)
	if date == "" {
		date = dbtime.Today()
	}
	d, _ := dbtime.ParseDate(date)

	m := &model.AnnouncementModel{
		AnnouncementClassID:  r.AnnouncementClassID,
		AnnouncementTitle:    strings.TrimSpace(r.AnnouncementTitle),
		AnnouncementDate:     d,
		AnnouncementContent:  strings.TrimSpace(r.AnnouncementContent),
		AnnouncementIsActive: true, // default aktif
	}
	if createdBy != uuid.Nil {
		m.AnnouncementCreatedBy = &createdBy
	}
	if r.AnnouncementIsActive != nil {
		m.AnnouncementIsActive = *r.AnnouncementIsActive
	}
	return m
}

/* ===================== UPDATE (partial) ===================== */

type UpdateAnnouncementRequest struct {
	AnnouncementClassID  *uuid.UUID `json:"announcement_class_id"  validate:"omitempty"`
	MakeGlobal           bool       `json:"make_global"`
	AnnouncementTitle    *string    `json:"announcement_title"     validate:"omitempty,min=3,max=200"`
	AnnouncementDate     *string    `json:"announcement_date"      validate:"omitempty,datetime=2006-01-02"`
	AnnouncementContent  *string    `json:"announcement_content"   validate:"omitempty,min=3"`
	AnnouncementIsActive *bool      `json:"announcement_is_active" validate:"omitempty"`
}

// ToUpdates: map kolom → nilai, hanya field yang dikirim
func (r UpdateAnnouncementRequest) ToUpdates() map[string]any {
	up := map[string]any{}
	switch {
	case r.MakeGlobal:
		up["announcement_class_id"] = nil
	case r.AnnouncementClassID != nil:
		up["announcement_class_id"] = *r.AnnouncementClassID
	}
	if r.AnnouncementTitle != nil {
		up["announcement_title"] = strings.TrimSpace(*r.AnnouncementTitle)
	}
	if r.AnnouncementDate != nil {
		if d, err := dbtime.ParseDate(*r.AnnouncementDate); err == nil {
			up["announcement_date"] = d
		}
	}
	if r.AnnouncementContent != nil {
		up["announcement_content"] = strings.TrimSpace(*r.AnnouncementContent)
	}
	if r.AnnouncementIsActive != nil {
		up["announcement_is_active"] = *r.AnnouncementIsActive
	}
	return up
}

/* ===================== QUERIES (list admin) ===================== */

type ListAnnouncementQuery struct {
	ClassID    *uuid.UUID `query:"class_id"`
	OnlyGlobal *bool      `query:"only_global"`
	IsActive   *bool      `query:"is_active"`
	Q          string     `query:"q"`
}

/* ===================== RESPONSES ===================== */

type AnnouncementResponse struct {
	AnnouncementID       uuid.UUID  `json:"announcement_id"`
	AnnouncementClassID  *uuid.UUID `json:"announcement_class_id"`
	AnnouncementIsGlobal bool       `json:"announcement_is_global"`
	AnnouncementTitle    string     `json:"announcement_title"`
	AnnouncementDate     string     `json:"announcement_date"`
	AnnouncementContent  string     `json:"announcement_content"`
	AnnouncementIsActive bool       `json:"announcement_is_active"`

	AnnouncementCreatedAt time.Time `json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time `json:"announcement_updated_at"`
}

func NewAnnouncementResponse(m *model.AnnouncementModel) AnnouncementResponse {
	return AnnouncementResponse{
		AnnouncementID:        m.AnnouncementID,
		AnnouncementClassID:   m.AnnouncementClassID,
		AnnouncementIsGlobal:  m.AnnouncementClassID == nil,
		AnnouncementTitle:     m.AnnouncementTitle,
		AnnouncementDate:      dbtime.FormatDate(m.AnnouncementDate),
		AnnouncementContent:   m.AnnouncementContent,
		AnnouncementIsActive:  m.AnnouncementIsActive,
		AnnouncementCreatedAt: m.AnnouncementCreatedAt,
		AnnouncementUpdatedAt: m.AnnouncementUpdatedAt,
	}
}

func NewAnnouncementResponses(rows []model.AnnouncementModel) []AnnouncementResponse {
	out := make([]AnnouncementResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewAnnouncementResponse(&rows[i]))
	}
	return out
}
