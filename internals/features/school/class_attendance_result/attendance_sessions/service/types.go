package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store: sumber data kelas & presensi harian untuk sesi entri.
// GormStore adalah implementasi produksi.
type Store interface {
	LoadClass(ctx context.Context, classID uuid.UUID) (ClassSnapshot, error)
	// GetDay: nil/kosong kalau tanggal belum punya presensi
	GetDay(ctx context.Context, classID uuid.UUID, date string) ([]SavedPeriod, error)
	SaveDay(ctx context.Context, classID uuid.UUID, date string, updatedBy uuid.UUID, periods []SavedPeriod) error
	ListDates(ctx context.Context, classID uuid.UUID) ([]string, error)
}

type Subject struct {
	ID   uuid.UUID
	Name string
}

type ClassSnapshot struct {
	ClassID       uuid.UUID
	Name          string
	Roster        []string
	Subjects      []Subject
	MinPercentage float64
}

// PeriodSlot: SubjectID == uuid.Nil berarti mapel belum dipilih
type PeriodSlot struct {
	Period      int
	SubjectID   uuid.UUID
	SubjectName string
}

func (p PeriodSlot) HasSubject() bool { return p.SubjectID != uuid.Nil }

type SavedPeriod struct {
	PeriodSlot
	AbsentRollNumbers []string
}

// ScanResult: keluaran scan logbook.
// Pages != nil → scan satu halaman penuh (nomor jam → daftar absen),
// selain itu Rolls untuk satu jam.
type ScanResult struct {
	Rolls []string
	Pages map[int][]string
}

func (r ScanResult) IsFullPage() bool { return r.Pages != nil }

// Snapshot: salinan read-only state sesi untuk dirender client
type Snapshot struct {
	Loaded        bool
	ClassID       uuid.UUID
	ClassName     string
	Date          string
	Roster        []string
	Subjects      []Subject
	MinPercentage float64

	Periods   []PeriodSlot
	Absentees [][]string // sejajar dengan Periods (by index)
	BulkText  []string

	IsDateLocked     bool
	HasModifications bool
	IsSaving         bool
	PendingRemoval   *int

	RelockArmed  bool
	RelockAt     *time.Time
	AutoRelocked bool

	LoadWarning         string
	DatesWithAttendance []string
}
