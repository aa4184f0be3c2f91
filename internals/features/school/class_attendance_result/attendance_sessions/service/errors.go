package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoaded             = errors.New("sesi presensi belum dimuat, pilih tanggal dulu")
	ErrDateLocked            = errors.New("tanggal ini terkunci, buka kunci untuk mengubah")
	ErrSaveInProgress        = errors.New("presensi sedang disimpan")
	ErrConfirmationRequired  = errors.New("aksi ini perlu konfirmasi")
	ErrPeriodIndexOutOfRange = errors.New("indeks jam pelajaran tidak valid")
	ErrPeriodNotFound        = errors.New("jam pelajaran tidak ditemukan")
)

// ValidationError: input admin tidak lolos aturan. State sesi tidak berubah.
type ValidationError struct {
	Field     string
	Message   string
	PeriodNum int // jam yang bermasalah (0 = tidak spesifik)
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StoreError: kegagalan backend penyimpanan (jaringan/DB).
// Sesi tetap di state sebelum panggilan.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
