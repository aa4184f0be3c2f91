// file: internals/features/school/class_attendance_result/attendance_sessions/service/session.go
package service

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	recordModel "presensiku_backend/internals/features/school/class_attendance_result/attendance_records/model"
	"presensiku_backend/internals/helpers/dbtime"
	"presensiku_backend/internals/helpers/rollno"

	"github.com/google/uuid"
)

// DefaultRelockAfter: kunci ulang otomatis setelah tidak ada aktivitas
const DefaultRelockAfter = 2 * time.Minute

/*
Session: state kerja admin untuk satu (kelas, tanggal).

	Unloaded → Load → Unlocked(kosong) | Locked(terisi)
	Locked  → Unlock(confirm) → Unlocked (+ timer kunci ulang)
	Unlocked → mutasi → ValidateAndSave → Saving → Locked

Semua method aman dipanggil dari banyak goroutine.
*/
type Session struct {
	mu          sync.Mutex
	store       Store
	relockAfter time.Duration
	now         func() time.Time

	loaded  bool
	classID uuid.UUID
	date    string
	class   ClassSnapshot
	allowed rollno.Set

	periods   []PeriodSlot
	absentees map[int][]string
	bulkText  map[int]string

	locked         bool
	modified       bool
	saving         bool
	pendingRemoval *int
	loadWarning    string
	dates          []string

	// timer kunci ulang; gen naik setiap arm/stop supaya callback lama tidak jalan
	timer        *time.Timer
	timerGen     uint64
	relockArmed  bool
	relockAt     time.Time
	autoRelocked bool
}

func NewSession(store Store, relockAfter time.Duration) *Session {
	return &Session{
		store:       store,
		relockAfter: relockAfter,
		now:         time.Now,
		absentees:   map[int][]string{},
		bulkText:    map[int]string{},
	}
}

/* ===================== LOAD ===================== */

// Load memuat roster kelas lalu presensi tanggal itu.
// Gagal memuat kelas → error (state lama dipertahankan).
// Gagal/kosong memuat presensi → sesi kosong & tidak terkunci.
func (s *Session) Load(ctx context.Context, classID uuid.UUID, date string) error {
	if _, err := dbtime.ParseDate(date); err != nil {
		return newValidationError("date", "%s", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saving {
		return ErrSaveInProgress
	}

	class, err := s.store.LoadClass(ctx, classID)
	if err != nil {
		return &StoreError{Op: "load class", Err: err}
	}

	s.stopRelockLocked()
	s.resetLocked()

	s.loaded = true
	s.classID = classID
	s.date = date
	s.class = class
	s.allowed = rollno.NewSet(class.Roster)

	saved, err := s.store.GetDay(ctx, classID, date)
	switch {
	case err != nil:
		log.Printf("[WARN] attendance session: gagal memuat %s/%s, mulai kosong: %v", classID, date, err)
		s.loadWarning = "Gagal memuat presensi tersimpan, mulai dari kosong"
	case len(saved) > 0:
		s.populateLocked(saved)
		s.locked = true
	}

	if dates, err := s.store.ListDates(ctx, classID); err != nil {
		log.Printf("[WARN] attendance session: gagal memuat daftar tanggal %s: %v", classID, err)
	} else {
		s.dates = dates
	}
	return nil
}

func (s *Session) resetLocked() {
	s.periods = nil
	s.absentees = map[int][]string{}
	s.bulkText = map[int]string{}
	s.locked = false
	s.modified = false
	s.pendingRemoval = nil
	s.loadWarning = ""
	s.autoRelocked = false
	s.dates = nil
}

func (s *Session) populateLocked(saved []SavedPeriod) {
	sorted := append([]SavedPeriod(nil), saved...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Period < sorted[j].Period })

	s.periods = make([]PeriodSlot, 0, len(sorted))
	for i, p := range sorted {
		s.periods = append(s.periods, p.PeriodSlot)
		s.setAbsentLocked(i, rollno.NormalizeSet(p.AbsentRollNumbers, s.allowed))
	}
}

/* ===================== LOCK / RELOCK ===================== */

// Unlock: Locked → Unlocked hanya dengan konfirmasi eksplisit.
// Mengaktifkan timer kunci ulang.
func (s *Session) Unlock(confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}
	if s.saving {
		return ErrSaveInProgress
	}
	if !s.locked {
		return nil
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	s.locked = false
	s.autoRelocked = false
	s.armRelockLocked()
	return nil
}

// Touch: aktivitas admin (pointer/key/input/touch) → reset hitung mundur
func (s *Session) Touch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}
	s.activityLocked()
	return nil
}

func (s *Session) activityLocked() {
	if s.relockArmed && !s.locked {
		s.armRelockLocked()
	}
}

func (s *Session) armRelockLocked() {
	if s.relockAfter <= 0 {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerGen++
	gen := s.timerGen
	s.relockArmed = true
	s.relockAt = s.now().Add(s.relockAfter)
	s.timer = time.AfterFunc(s.relockAfter, func() { s.fireRelock(gen) })
}

func (s *Session) stopRelockLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.relockArmed = false
	s.relockAt = time.Time{}
}

// fireRelock: kunci ulang tanpa menyimpan. Perubahan yang belum disimpan
// tetap ada (HasModifications tidak direset) sampai Load berikutnya.
func (s *Session) fireRelock(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.timerGen || !s.relockArmed || s.locked {
		return
	}
	if s.saving {
		// hasil simpan yang menentukan; kalau gagal admin masih bisa lanjut
		s.armRelockLocked()
		return
	}
	s.timer = nil
	s.relockArmed = false
	s.relockAt = time.Time{}
	s.locked = true
	s.autoRelocked = true
	s.pendingRemoval = nil
	log.Printf("[INFO] attendance session %s/%s dikunci ulang otomatis", s.classID, s.date)
}

// Close menghentikan timer (dipanggil saat sesi dibuang Manager)
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRelockLocked()
}

/* ===================== MUTATIONS ===================== */

func (s *Session) editableLocked() error {
	switch {
	case !s.loaded:
		return ErrNotLoaded
	case s.saving:
		return ErrSaveInProgress
	case s.locked:
		return ErrDateLocked
	}
	return nil
}

func (s *Session) checkIndexLocked(idx int) error {
	if idx < 0 || idx >= len(s.periods) {
		return ErrPeriodIndexOutOfRange
	}
	return nil
}

func (s *Session) indexOfPeriodLocked(periodNum int) int {
	for i, p := range s.periods {
		if p.Period == periodNum {
			return i
		}
	}
	return -1
}

// mutatedLocked: tandai ada perubahan, batalkan konfirmasi hapus yang tertunda
func (s *Session) mutatedLocked() {
	s.modified = true
	s.pendingRemoval = nil
	s.activityLocked()
}

func (s *Session) setAbsentLocked(idx int, rolls []string) {
	if len(rolls) == 0 {
		delete(s.absentees, idx)
		delete(s.bulkText, idx)
		return
	}
	s.absentees[idx] = rolls
	s.bulkText[idx] = rollno.Join(rolls)
}

// AddPeriod: period = max+1 (1 kalau kosong), mapel belum dipilih
func (s *Session) AddPeriod() (PeriodSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return PeriodSlot{}, err
	}
	next := 1
	for _, p := range s.periods {
		if p.Period >= next {
			next = p.Period + 1
		}
	}
	if next > recordModel.MaxPeriodNum {
		return PeriodSlot{}, newValidationError("periods", "maksimal %d jam pelajaran", recordModel.MaxPeriodNum)
	}
	slot := PeriodSlot{Period: next}
	s.periods = append(s.periods, slot)
	s.mutatedLocked()
	return slot, nil
}

// RemovePeriod dua langkah: panggilan pertama hanya menandai (ErrConfirmationRequired),
// panggilan terkonfirmasi untuk jam yang sama baru menghapus.
// Absen di indeks > i digeser ke k-1, indeks < i tidak berubah.
func (s *Session) RemovePeriod(periodNum int, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	idx := s.indexOfPeriodLocked(periodNum)
	if idx < 0 {
		return ErrPeriodNotFound
	}
	if !confirmed || s.pendingRemoval == nil || *s.pendingRemoval != periodNum {
		p := periodNum
		s.pendingRemoval = &p
		s.activityLocked()
		return ErrConfirmationRequired
	}

	s.periods = append(s.periods[:idx], s.periods[idx+1:]...)
	s.absentees = shiftDown(s.absentees, idx)
	s.bulkText = shiftDown(s.bulkText, idx)
	s.mutatedLocked()
	return nil
}

// CancelRemoval membatalkan penandaan hapus
func (s *Session) CancelRemoval() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingRemoval = nil
}

func shiftDown[V any](m map[int]V, removed int) map[int]V {
	out := make(map[int]V, len(m))
	for k, v := range m {
		switch {
		case k < removed:
			out[k] = v
		case k > removed:
			out[k-1] = v
		}
	}
	return out
}

// UpdatePeriodSubject: uuid.Nil → kosongkan mapel. Absen tidak disentuh.
func (s *Session) UpdatePeriodSubject(periodNum int, subjectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	idx := s.indexOfPeriodLocked(periodNum)
	if idx < 0 {
		return ErrPeriodNotFound
	}
	if subjectID == uuid.Nil {
		s.periods[idx].SubjectID = uuid.Nil
		s.periods[idx].SubjectName = ""
		s.mutatedLocked()
		return nil
	}
	for _, sub := range s.class.Subjects {
		if sub.ID == subjectID {
			s.periods[idx].SubjectID = sub.ID
			s.periods[idx].SubjectName = sub.Name
			s.mutatedLocked()
			return nil
		}
	}
	return newValidationError("subject_id", "mapel tidak terdaftar di kelas ini")
}

// ToggleAbsent: nomor absen di luar roster diabaikan (no-op)
func (s *Session) ToggleAbsent(periodIndex int, roll string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	if err := s.checkIndexLocked(periodIndex); err != nil {
		return err
	}
	r := rollno.Normalize(roll)
	if r == "" || !s.allowed.Has(r) {
		return nil
	}

	set := rollno.NewSet(s.absentees[periodIndex])
	if set.Has(r) {
		delete(set, r)
	} else {
		set[r] = struct{}{}
	}
	s.setAbsentLocked(periodIndex, set.Sorted())
	s.mutatedLocked()
	return nil
}

// SetBulkAbsentText: teks bebas (koma/baris baru) → daftar absen.
// Teks disimpan apa adanya untuk ditampilkan kembali.
func (s *Session) SetBulkAbsentText(periodIndex int, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	if err := s.checkIndexLocked(periodIndex); err != nil {
		return err
	}
	rolls := rollno.ParseBulk(raw, s.allowed)
	if len(rolls) == 0 {
		delete(s.absentees, periodIndex)
	} else {
		s.absentees[periodIndex] = rolls
	}
	s.bulkText[periodIndex] = raw
	s.mutatedLocked()
	return nil
}

func (s *Session) MarkAllPresent(periodIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	if err := s.checkIndexLocked(periodIndex); err != nil {
		return err
	}
	s.setAbsentLocked(periodIndex, nil)
	s.mutatedLocked()
	return nil
}

// CopyFromPrevious: absen jam sebelumnya → jam ini. Indeks 0 no-op.
func (s *Session) CopyFromPrevious(periodIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	if err := s.checkIndexLocked(periodIndex); err != nil {
		return err
	}
	if periodIndex == 0 {
		return nil
	}
	prev := append([]string(nil), s.absentees[periodIndex-1]...)
	s.setAbsentLocked(periodIndex, prev)
	s.mutatedLocked()
	return nil
}

// ApplyScanResult: hasil scan diperlakukan sama dengan input manual
// (normalisasi + filter roster). Scan halaman penuh mengganti daftar jam.
func (s *Session) ApplyScanResult(periodIndex int, res ScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}

	if !res.IsFullPage() {
		if err := s.checkIndexLocked(periodIndex); err != nil {
			return err
		}
		s.setAbsentLocked(periodIndex, rollno.NormalizeSet(res.Rolls, s.allowed))
		s.mutatedLocked()
		return nil
	}

	nums := make([]int, 0, len(res.Pages))
	for n := range res.Pages {
		if n > recordModel.MaxPeriodNum {
			return newValidationError("scan", "jam ke-%d di luar batas 1..%d", n, recordModel.MaxPeriodNum)
		}
		if n >= 1 {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return newValidationError("scan", "hasil scan tidak memuat jam pelajaran")
	}
	sort.Ints(nums)

	s.periods = make([]PeriodSlot, 0, len(nums))
	s.absentees = map[int][]string{}
	s.bulkText = map[int]string{}
	for i, n := range nums {
		s.periods = append(s.periods, PeriodSlot{Period: n})
		s.setAbsentLocked(i, rollno.NormalizeSet(res.Pages[n], s.allowed))
	}
	s.mutatedLocked()
	return nil
}

/* ===================== SUBMIT ===================== */

// ValidateAndSave memvalidasi lalu menyimpan seluruh hari.
// Validasi gagal → state tidak berubah. Store gagal → tetap Editing,
// HasModifications tidak berubah. Sukses → Locked.
func (s *Session) ValidateAndSave(ctx context.Context, updatedBy uuid.UUID) error {
	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if len(s.allowed) == 0 {
		s.mu.Unlock()
		return newValidationError("roster", "kelas belum punya daftar siswa")
	}
	if len(s.periods) == 0 {
		s.mu.Unlock()
		return newValidationError("periods", "tambahkan minimal satu jam pelajaran")
	}
	for _, p := range s.periods {
		if !p.HasSubject() {
			s.mu.Unlock()
			ve := newValidationError("periods", "jam ke-%d belum punya mapel", p.Period)
			ve.PeriodNum = p.Period
			return ve
		}
	}

	payload := make([]SavedPeriod, 0, len(s.periods))
	for i, p := range s.periods {
		payload = append(payload, SavedPeriod{
			PeriodSlot:        p,
			AbsentRollNumbers: rollno.NormalizeSet(s.absentees[i], s.allowed),
		})
	}
	classID, date := s.classID, s.date
	s.saving = true
	s.pendingRemoval = nil
	s.mu.Unlock()

	err := s.store.SaveDay(ctx, classID, date, updatedBy, payload)

	var dates []string
	if err == nil {
		var lerr error
		if dates, lerr = s.store.ListDates(ctx, classID); lerr != nil {
			log.Printf("[WARN] attendance session: gagal refresh tanggal %s: %v", classID, lerr)
			dates = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		return &StoreError{Op: "save day", Err: err}
	}

	s.locked = true
	s.modified = false
	s.autoRelocked = false
	s.stopRelockLocked()
	for i, p := range payload {
		s.setAbsentLocked(i, p.AbsentRollNumbers)
	}
	if dates != nil {
		s.dates = dates
	} else {
		s.dates = insertDate(s.dates, date)
	}
	return nil
}

func insertDate(dates []string, date string) []string {
	i := sort.SearchStrings(dates, date)
	if i < len(dates) && dates[i] == date {
		return dates
	}
	out := make([]string, 0, len(dates)+1)
	out = append(out, dates[:i]...)
	out = append(out, date)
	return append(out, dates[i:]...)
}

/* ===================== READ ===================== */

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Loaded:              s.loaded,
		ClassID:             s.classID,
		ClassName:           s.class.Name,
		Date:                s.date,
		Roster:              s.allowed.Sorted(),
		Subjects:            append([]Subject(nil), s.class.Subjects...),
		MinPercentage:       s.class.MinPercentage,
		Periods:             append([]PeriodSlot(nil), s.periods...),
		Absentees:           make([][]string, len(s.periods)),
		BulkText:            make([]string, len(s.periods)),
		IsDateLocked:        s.locked,
		HasModifications:    s.modified,
		IsSaving:            s.saving,
		RelockArmed:         s.relockArmed,
		AutoRelocked:        s.autoRelocked,
		LoadWarning:         s.loadWarning,
		DatesWithAttendance: append([]string(nil), s.dates...),
	}
	for i := range s.periods {
		snap.Absentees[i] = append([]string{}, s.absentees[i]...)
		snap.BulkText[i] = s.bulkText[i]
	}
	if s.pendingRemoval != nil {
		p := *s.pendingRemoval
		snap.PendingRemoval = &p
	}
	if s.relockArmed {
		t := s.relockAt
		snap.RelockAt = &t
	}
	return snap
}

func (s *Session) IsSaving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Key (kelas, tanggal) yang sedang dimuat
func (s *Session) Key() (uuid.UUID, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classID, s.date
}
