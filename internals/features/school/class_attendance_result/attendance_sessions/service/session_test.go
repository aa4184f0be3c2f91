package service

import (
	"context"
	"errors"
	"testing"
	"time"

	recordModel "presensiku_backend/internals/features/school/class_attendance_result/attendance_records/model"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"
	"presensiku_backend/internals/helpers/rollno"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testClassID = uuid.MustParse("6f1c1d7e-9f55-4d55-9a0c-5a4a0b6e2c01")
	testAdminID = uuid.MustParse("0b5f3e2a-1d8c-4c3e-8a55-2f7a9d1e4b02")
	subMath     = Subject{ID: uuid.MustParse("a1000000-0000-0000-0000-000000000001"), Name: "Matematika"}
	subBio      = Subject{ID: uuid.MustParse("a1000000-0000-0000-0000-000000000002"), Name: "Biologi"}
)

const (
	day1 = "2026-01-05"
	day2 = "2026-01-06"
)

func newFixture(t *testing.T, relockAfter time.Duration) (*MemoryStore, *Session) {
	t.Helper()
	st := NewMemoryStore()
	st.PutClass(ClassSnapshot{
		ClassID:       testClassID,
		Name:          "X IPA 1",
		Roster:        rollno.SequentialRoster(30),
		Subjects:      []Subject{subMath, subBio},
		MinPercentage: 75,
	})
	s := NewSession(st, relockAfter)
	t.Cleanup(s.Close)
	return st, s
}

func load(t *testing.T, s *Session, date string) Snapshot {
	t.Helper()
	require.NoError(t, s.Load(context.Background(), testClassID, date))
	return s.Snapshot()
}

// tiga jam, mapel terisi semua, absen {0:[1],1:[2],2:[3]}
func seedThreePeriods(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 3; i++ {
		slot, err := s.AddPeriod()
		require.NoError(t, err)
		require.NoError(t, s.UpdatePeriodSubject(slot.Period, subMath.ID))
	}
	require.NoError(t, s.ToggleAbsent(0, "1"))
	require.NoError(t, s.ToggleAbsent(1, "2"))
	require.NoError(t, s.ToggleAbsent(2, "3"))
}

/* ===================== LOAD ===================== */

func TestLoad_EmptyDayIsUnlocked(t *testing.T) {
	_, s := newFixture(t, 0)

	snap := load(t, s, day1)
	assert.True(t, snap.Loaded)
	assert.False(t, snap.IsDateLocked)
	assert.False(t, snap.HasModifications)
	assert.Empty(t, snap.Periods)
	assert.Empty(t, snap.Absentees)
	assert.Equal(t, "X IPA 1", snap.ClassName)
	assert.Len(t, snap.Roster, 30)
}

func TestLoad_SavedDayIsLockedSortedAndNormalized(t *testing.T) {
	st, s := newFixture(t, 0)
	st.PutDay(testClassID, day1, []SavedPeriod{
		{PeriodSlot: PeriodSlot{Period: 3, SubjectID: subBio.ID, SubjectName: subBio.Name}, AbsentRollNumbers: []string{"7"}},
		{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subMath.ID, SubjectName: subMath.Name}, AbsentRollNumbers: []string{"10", " 5", "'2'", "2", "99"}},
	})

	snap := load(t, s, day1)
	assert.True(t, snap.IsDateLocked)
	assert.False(t, snap.HasModifications)
	require.Len(t, snap.Periods, 2)
	assert.Equal(t, 1, snap.Periods[0].Period)
	assert.Equal(t, 3, snap.Periods[1].Period)
	assert.Equal(t, []string{"2", "5", "10"}, snap.Absentees[0])
	assert.Equal(t, "2, 5, 10", snap.BulkText[0])
	assert.Equal(t, []string{"7"}, snap.Absentees[1])
	assert.Equal(t, []string{day1}, snap.DatesWithAttendance)
}

func TestLoad_FetchErrorFailsOpen(t *testing.T) {
	st, s := newFixture(t, 0)
	st.PutDay(testClassID, day1, []SavedPeriod{{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subMath.ID}}})
	st.GetDayErr = errors.New("timeout")

	snap := load(t, s, day1)
	assert.False(t, snap.IsDateLocked)
	assert.Empty(t, snap.Periods)
	assert.NotEmpty(t, snap.LoadWarning)

	_, err := s.AddPeriod()
	assert.NoError(t, err)
}

func TestLoad_UnknownClassReturnsStoreError(t *testing.T) {
	_, s := newFixture(t, 0)

	err := s.Load(context.Background(), uuid.New(), day1)
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, classRepo.ErrClassNotFound)
	assert.False(t, s.Snapshot().Loaded)
}

func TestLoad_InvalidDate(t *testing.T) {
	_, s := newFixture(t, 0)
	err := s.Load(context.Background(), testClassID, "05-01-2026")
	assert.True(t, IsValidation(err))
}

func TestLoad_NeverCarriesOverPreviousDate(t *testing.T) {
	st, s := newFixture(t, 0)
	st.PutDay(testClassID, day1, []SavedPeriod{
		{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subMath.ID, SubjectName: subMath.Name}, AbsentRollNumbers: []string{"4"}},
	})

	load(t, s, day1)
	require.NoError(t, s.Unlock(true))
	_, err := s.AddPeriod()
	require.NoError(t, err)

	snap := load(t, s, day2)
	assert.Empty(t, snap.Periods)
	assert.Empty(t, snap.Absentees)
	assert.False(t, snap.IsDateLocked)
	assert.False(t, snap.HasModifications)
	assert.Equal(t, day2, snap.Date)
}

/* ===================== GUARDS ===================== */

func TestMutations_RequireLoadedAndUnlocked(t *testing.T) {
	st, s := newFixture(t, 0)

	_, err := s.AddPeriod()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, s.Touch(), ErrNotLoaded)

	st.PutDay(testClassID, day1, []SavedPeriod{{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subMath.ID}}})
	load(t, s, day1)

	_, err = s.AddPeriod()
	assert.ErrorIs(t, err, ErrDateLocked)
	assert.ErrorIs(t, s.ToggleAbsent(0, "1"), ErrDateLocked)
	assert.ErrorIs(t, s.SetBulkAbsentText(0, "1"), ErrDateLocked)
	assert.ErrorIs(t, s.MarkAllPresent(0), ErrDateLocked)
	assert.ErrorIs(t, s.RemovePeriod(1, true), ErrDateLocked)
	assert.ErrorIs(t, s.ValidateAndSave(context.Background(), testAdminID), ErrDateLocked)
}

func TestUnlock_RequiresConfirmation(t *testing.T) {
	st, s := newFixture(t, 0)
	st.PutDay(testClassID, day1, []SavedPeriod{{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subMath.ID}}})
	load(t, s, day1)

	assert.ErrorIs(t, s.Unlock(false), ErrConfirmationRequired)
	assert.True(t, s.Snapshot().IsDateLocked)

	require.NoError(t, s.Unlock(true))
	assert.False(t, s.Snapshot().IsDateLocked)
	// sudah terbuka → no-op
	assert.NoError(t, s.Unlock(false))
}

func TestIndexOutOfRange(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)

	assert.ErrorIs(t, s.ToggleAbsent(0, "1"), ErrPeriodIndexOutOfRange)
	_, err := s.AddPeriod()
	require.NoError(t, err)
	assert.ErrorIs(t, s.ToggleAbsent(1, "1"), ErrPeriodIndexOutOfRange)
	assert.ErrorIs(t, s.CopyFromPrevious(-1), ErrPeriodIndexOutOfRange)
}

/* ===================== PERIODS ===================== */

func TestAddPeriod_UsesMaxPlusOne(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)

	p1, err := s.AddPeriod()
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Period)
	assert.False(t, p1.HasSubject())

	_, _ = s.AddPeriod()
	_, _ = s.AddPeriod()
	require.ErrorIs(t, s.RemovePeriod(2, false), ErrConfirmationRequired)
	require.NoError(t, s.RemovePeriod(2, true))

	p4, err := s.AddPeriod()
	require.NoError(t, err)
	assert.Equal(t, 4, p4.Period)
	assert.True(t, s.Snapshot().HasModifications)
}

func TestRemovePeriod_ShiftsAbsenteesByIndex(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	// langkah 1: hanya ditandai
	require.ErrorIs(t, s.RemovePeriod(2, false), ErrConfirmationRequired)
	snap := s.Snapshot()
	require.Len(t, snap.Periods, 3)
	require.NotNil(t, snap.PendingRemoval)
	assert.Equal(t, 2, *snap.PendingRemoval)

	// langkah 2: konfirmasi
	require.NoError(t, s.RemovePeriod(2, true))
	snap = s.Snapshot()
	require.Len(t, snap.Periods, 2)
	assert.Equal(t, 1, snap.Periods[0].Period)
	assert.Equal(t, 3, snap.Periods[1].Period)
	assert.Equal(t, [][]string{{"1"}, {"3"}}, snap.Absentees)
	assert.Equal(t, []string{"1", "3"}, snap.BulkText)
	assert.Nil(t, snap.PendingRemoval)
}

func TestRemovePeriod_ConfirmedWithoutStagingStagesFirst(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	assert.ErrorIs(t, s.RemovePeriod(1, true), ErrConfirmationRequired)
	assert.Len(t, s.Snapshot().Periods, 3)

	// staging jam lain → jam 1 tidak ikut terhapus
	assert.ErrorIs(t, s.RemovePeriod(3, false), ErrConfirmationRequired)
	assert.ErrorIs(t, s.RemovePeriod(1, true), ErrConfirmationRequired)
	assert.Len(t, s.Snapshot().Periods, 3)

	assert.ErrorIs(t, s.RemovePeriod(9, true), ErrPeriodNotFound)
}

func TestRemovePeriod_OtherMutationCancelsStaging(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	require.ErrorIs(t, s.RemovePeriod(1, false), ErrConfirmationRequired)
	require.NoError(t, s.ToggleAbsent(1, "9"))
	assert.Nil(t, s.Snapshot().PendingRemoval)
	assert.ErrorIs(t, s.RemovePeriod(1, true), ErrConfirmationRequired)
}

func TestUpdatePeriodSubject(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	_, _ = s.AddPeriod()
	require.NoError(t, s.ToggleAbsent(0, "4"))

	err := s.UpdatePeriodSubject(1, uuid.New())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "subject_id", ve.Field)

	require.NoError(t, s.UpdatePeriodSubject(1, subBio.ID))
	snap := s.Snapshot()
	assert.Equal(t, subBio.ID, snap.Periods[0].SubjectID)
	assert.Equal(t, "Biologi", snap.Periods[0].SubjectName)
	assert.Equal(t, []string{"4"}, snap.Absentees[0])

	require.NoError(t, s.UpdatePeriodSubject(1, uuid.Nil))
	assert.False(t, s.Snapshot().Periods[0].HasSubject())

	assert.ErrorIs(t, s.UpdatePeriodSubject(7, subBio.ID), ErrPeriodNotFound)
}

/* ===================== ABSENTEES ===================== */

func TestToggleAbsent(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	_, _ = s.AddPeriod()

	require.NoError(t, s.ToggleAbsent(0, "10"))
	require.NoError(t, s.ToggleAbsent(0, "2"))
	snap := s.Snapshot()
	assert.Equal(t, []string{"2", "10"}, snap.Absentees[0])
	assert.Equal(t, "2, 10", snap.BulkText[0])

	// quote/spasi tetap dikenali, roll di luar roster diabaikan
	require.NoError(t, s.ToggleAbsent(0, " '2' "))
	require.NoError(t, s.ToggleAbsent(0, "99"))
	snap = s.Snapshot()
	assert.Equal(t, []string{"10"}, snap.Absentees[0])
	assert.Equal(t, "10", snap.BulkText[0])
}

func TestSetBulkAbsentText(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	_, _ = s.AddPeriod()

	raw := "3, 1\n'10', 99, 1,,"
	require.NoError(t, s.SetBulkAbsentText(0, raw))
	snap := s.Snapshot()
	assert.Equal(t, []string{"1", "3", "10"}, snap.Absentees[0])
	assert.Equal(t, raw, snap.BulkText[0])

	require.NoError(t, s.SetBulkAbsentText(0, "  "))
	assert.Empty(t, s.Snapshot().Absentees[0])
}

func TestMarkAllPresent(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	require.NoError(t, s.MarkAllPresent(1))
	snap := s.Snapshot()
	assert.Equal(t, [][]string{{"1"}, {}, {"3"}}, snap.Absentees)
	assert.Equal(t, "", snap.BulkText[1])
}

func TestCopyFromPrevious(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	require.NoError(t, s.CopyFromPrevious(0))
	assert.Equal(t, []string{"1"}, s.Snapshot().Absentees[0])

	require.NoError(t, s.CopyFromPrevious(2))
	snap := s.Snapshot()
	assert.Equal(t, []string{"2"}, snap.Absentees[2])
	assert.Equal(t, "2", snap.BulkText[2])

	// salinan, bukan alias
	require.NoError(t, s.ToggleAbsent(2, "8"))
	assert.Equal(t, []string{"2"}, s.Snapshot().Absentees[1])
}

func TestApplyScanResult_SinglePeriod(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	require.NoError(t, s.ApplyScanResult(1, ScanResult{Rolls: []string{"12", " 4", "\"4\"", "abc", "40"}}))
	snap := s.Snapshot()
	assert.Equal(t, []string{"4", "12"}, snap.Absentees[1])
	assert.Len(t, snap.Periods, 3)

	assert.ErrorIs(t, s.ApplyScanResult(5, ScanResult{Rolls: []string{"1"}}), ErrPeriodIndexOutOfRange)
}

func TestApplyScanResult_FullPageReplacesPeriods(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	err := s.ApplyScanResult(0, ScanResult{Pages: map[int][]string{
		4: {"2", "x"},
		1: {"5", " 4 "},
		0: {"1"},
	}})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Periods, 2)
	assert.Equal(t, PeriodSlot{Period: 1}, snap.Periods[0])
	assert.Equal(t, PeriodSlot{Period: 4}, snap.Periods[1])
	assert.Equal(t, [][]string{{"4", "5"}, {"2"}}, snap.Absentees)
	assert.True(t, snap.HasModifications)

	err = s.ApplyScanResult(0, ScanResult{Pages: map[int][]string{}})
	assert.True(t, IsValidation(err))
	assert.Len(t, s.Snapshot().Periods, 2)
}

func TestApplyScanResult_PeriodAboveLimit(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	err := s.ApplyScanResult(0, ScanResult{Pages: map[int][]string{
		1:   {"2"},
		999: {"3"},
	}})
	assert.True(t, IsValidation(err))

	snap := s.Snapshot()
	require.Len(t, snap.Periods, 3)
	assert.Equal(t, []string{"1"}, snap.Absentees[0])

	require.NoError(t, s.ApplyScanResult(0, ScanResult{Pages: map[int][]string{recordModel.MaxPeriodNum: {"2"}}}))
	assert.Equal(t, recordModel.MaxPeriodNum, s.Snapshot().Periods[0].Period)
}

func TestAddPeriod_StopsAtLimit(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)

	for i := 1; i <= recordModel.MaxPeriodNum; i++ {
		slot, err := s.AddPeriod()
		require.NoError(t, err)
		require.Equal(t, i, slot.Period)
	}
	_, err := s.AddPeriod()
	assert.True(t, IsValidation(err))
	assert.Len(t, s.Snapshot().Periods, recordModel.MaxPeriodNum)
}

/* ===================== SUBMIT ===================== */

func TestValidateAndSave_UnassignedSubjectLeavesStateUnchanged(t *testing.T) {
	st, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)
	require.NoError(t, s.UpdatePeriodSubject(2, uuid.Nil))

	before := s.Snapshot()
	err := s.ValidateAndSave(context.Background(), testAdminID)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 2, ve.PeriodNum)
	assert.Contains(t, ve.Message, "jam ke-2")

	after := s.Snapshot()
	assert.Equal(t, before.Periods, after.Periods)
	assert.Equal(t, before.Absentees, after.Absentees)
	assert.Equal(t, before.HasModifications, after.HasModifications)
	assert.False(t, after.IsDateLocked)
	assert.Equal(t, 0, st.SaveCalls())
}

func TestValidateAndSave_RequiresPeriods(t *testing.T) {
	_, s := newFixture(t, 0)
	load(t, s, day1)

	err := s.ValidateAndSave(context.Background(), testAdminID)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "periods", ve.Field)
}

func TestValidateAndSave_RequiresRoster(t *testing.T) {
	st, s := newFixture(t, 0)
	st.PutClass(ClassSnapshot{ClassID: testClassID, Name: "Kosong", Subjects: []Subject{subMath}})
	load(t, s, day1)
	slot, _ := s.AddPeriod()
	require.NoError(t, s.UpdatePeriodSubject(slot.Period, subMath.ID))

	err := s.ValidateAndSave(context.Background(), testAdminID)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "roster", ve.Field)
}

func TestValidateAndSave_PersistsAndLocks(t *testing.T) {
	st, s := newFixture(t, 0)
	st.PutDay(testClassID, day2, []SavedPeriod{{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subBio.ID}}})
	load(t, s, day1)
	seedThreePeriods(t, s)
	require.NoError(t, s.SetBulkAbsentText(0, "12, 3, 21"))

	require.NoError(t, s.ValidateAndSave(context.Background(), testAdminID))

	snap := s.Snapshot()
	assert.True(t, snap.IsDateLocked)
	assert.False(t, snap.HasModifications)
	assert.False(t, snap.IsSaving)
	assert.Equal(t, []string{day1, day2}, snap.DatesWithAttendance)
	assert.Equal(t, "3, 12, 21", snap.BulkText[0])

	saved := st.Day(testClassID, day1)
	require.Len(t, saved, 3)
	assert.Equal(t, 1, saved[0].Period)
	assert.Equal(t, subMath.ID, saved[0].SubjectID)
	assert.Equal(t, "Matematika", saved[0].SubjectName)
	assert.Equal(t, []string{"3", "12", "21"}, saved[0].AbsentRollNumbers)
	assert.Equal(t, []string{"2"}, saved[1].AbsentRollNumbers)

	// reload: terkunci & sama persis
	again := load(t, s, day1)
	assert.True(t, again.IsDateLocked)
	assert.Equal(t, snap.Absentees, again.Absentees)
}

func TestValidateAndSave_StoreFailureKeepsEditing(t *testing.T) {
	st, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)
	st.SaveErr = errors.New("connection reset")

	err := s.ValidateAndSave(context.Background(), testAdminID)
	var se *StoreError
	require.ErrorAs(t, err, &se)

	snap := s.Snapshot()
	assert.False(t, snap.IsDateLocked)
	assert.True(t, snap.HasModifications)
	assert.False(t, snap.IsSaving)
	assert.Len(t, snap.Periods, 3)
	assert.Empty(t, snap.DatesWithAttendance)

	// masih bisa diedit & disimpan ulang
	st.SaveErr = nil
	require.NoError(t, s.ValidateAndSave(context.Background(), testAdminID))
	assert.True(t, s.Snapshot().IsDateLocked)
}

func TestValidateAndSave_ListDatesFailureStillAddsDate(t *testing.T) {
	st, s := newFixture(t, 0)
	load(t, s, day2)
	seedThreePeriods(t, s)
	st.ListDatesErr = errors.New("boom")

	require.NoError(t, s.ValidateAndSave(context.Background(), testAdminID))
	assert.Equal(t, []string{day2}, s.Snapshot().DatesWithAttendance)
}

func TestValidateAndSave_RejectsMutationsWhileSaving(t *testing.T) {
	st, s := newFixture(t, 0)
	load(t, s, day1)
	seedThreePeriods(t, s)

	release := make(chan struct{})
	st.BeforeSave = func() { <-release }

	done := make(chan error, 1)
	go func() { done <- s.ValidateAndSave(context.Background(), testAdminID) }()

	require.Eventually(t, s.IsSaving, time.Second, 5*time.Millisecond)
	_, err := s.AddPeriod()
	assert.ErrorIs(t, err, ErrSaveInProgress)
	assert.ErrorIs(t, s.Load(context.Background(), testClassID, day2), ErrSaveInProgress)
	assert.ErrorIs(t, s.ValidateAndSave(context.Background(), testAdminID), ErrSaveInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.True(t, s.Snapshot().IsDateLocked)
}

/* ===================== AUTO RELOCK ===================== */

func TestRelock_FiresAfterInactivity(t *testing.T) {
	st, s := newFixture(t, 100*time.Millisecond)
	st.PutDay(testClassID, day1, []SavedPeriod{
		{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subMath.ID, SubjectName: subMath.Name}},
	})
	load(t, s, day1)
	require.NoError(t, s.Unlock(true))

	snap := s.Snapshot()
	assert.True(t, snap.RelockArmed)
	require.NotNil(t, snap.RelockAt)

	_, err := s.AddPeriod()
	require.NoError(t, err)

	require.Eventually(t, func() bool { return s.Snapshot().IsDateLocked }, time.Second, 5*time.Millisecond)
	snap = s.Snapshot()
	assert.True(t, snap.AutoRelocked)
	assert.False(t, snap.RelockArmed)
	// tidak disimpan, tapi perubahan lokal tetap ada
	assert.Len(t, snap.Periods, 2)
	assert.True(t, snap.HasModifications)
	assert.Equal(t, 0, st.SaveCalls())
}

func TestRelock_TouchPostponesRelock(t *testing.T) {
	st, s := newFixture(t, 200*time.Millisecond)
	st.PutDay(testClassID, day1, []SavedPeriod{{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subMath.ID}}})
	load(t, s, day1)
	require.NoError(t, s.Unlock(true))

	for i := 0; i < 6; i++ {
		time.Sleep(50 * time.Millisecond)
		require.NoError(t, s.Touch())
	}
	assert.False(t, s.Snapshot().IsDateLocked)

	require.Eventually(t, func() bool { return s.Snapshot().IsDateLocked }, 2*time.Second, 10*time.Millisecond)
}

func TestRelock_NotArmedForFreshEmptyDay(t *testing.T) {
	_, s := newFixture(t, 20*time.Millisecond)
	load(t, s, day1)
	_, _ = s.AddPeriod()

	time.Sleep(60 * time.Millisecond)
	snap := s.Snapshot()
	assert.False(t, snap.IsDateLocked)
	assert.False(t, snap.RelockArmed)
}

func TestRelock_CancelledBySaveAndLoad(t *testing.T) {
	st, s := newFixture(t, 50*time.Millisecond)
	st.PutDay(testClassID, day1, []SavedPeriod{
		{PeriodSlot: PeriodSlot{Period: 1, SubjectID: subMath.ID, SubjectName: subMath.Name}},
	})

	// save menghentikan timer
	load(t, s, day1)
	require.NoError(t, s.Unlock(true))
	require.NoError(t, s.ValidateAndSave(context.Background(), testAdminID))
	assert.False(t, s.Snapshot().RelockArmed)
	time.Sleep(100 * time.Millisecond)
	assert.False(t, s.Snapshot().AutoRelocked)

	// load tanggal lain menghentikan timer lama
	require.NoError(t, s.Unlock(true))
	load(t, s, day2)
	time.Sleep(100 * time.Millisecond)
	snap := s.Snapshot()
	assert.False(t, snap.IsDateLocked)
	assert.False(t, snap.AutoRelocked)
}
