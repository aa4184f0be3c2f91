package controller

import (
	"context"
	"sort"
	"sync"

	"presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/service"
	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"

	"github.com/google/uuid"
)

type fakeStore struct {
	mu        sync.Mutex
	classes   map[uuid.UUID]service.ClassSnapshot
	days      map[uuid.UUID]map[string][]service.SavedPeriod
	saveCalls int

	SaveErr error
}

var _ service.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		classes: map[uuid.UUID]service.ClassSnapshot{},
		days:    map[uuid.UUID]map[string][]service.SavedPeriod{},
	}
}

func (f *fakeStore) PutClass(c service.ClassSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classes[c.ClassID] = c
}

func (f *fakeStore) PutDay(classID uuid.UUID, date string, periods []service.SavedPeriod) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.days[classID] == nil {
		f.days[classID] = map[string][]service.SavedPeriod{}
	}
	f.days[classID][date] = copyPeriods(periods)
}

func (f *fakeStore) Day(classID uuid.UUID, date string) []service.SavedPeriod {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyPeriods(f.days[classID][date])
}

func (f *fakeStore) SaveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveCalls
}

func (f *fakeStore) LoadClass(_ context.Context, classID uuid.UUID) (service.ClassSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[classID]
	if !ok {
		return service.ClassSnapshot{}, classRepo.ErrClassNotFound
	}
	return c, nil
}

func (f *fakeStore) GetDay(_ context.Context, classID uuid.UUID, date string) ([]service.SavedPeriod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyPeriods(f.days[classID][date]), nil
}

func (f *fakeStore) SaveDay(_ context.Context, classID uuid.UUID, date string, _ uuid.UUID, periods []service.SavedPeriod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if f.days[classID] == nil {
		f.days[classID] = map[string][]service.SavedPeriod{}
	}
	f.days[classID][date] = copyPeriods(periods)
	return nil
}

func (f *fakeStore) ListDates(_ context.Context, classID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.days[classID]))
	for d, periods := range f.days[classID] {
		if len(periods) > 0 {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out, nil
}

func copyPeriods(in []service.SavedPeriod) []service.SavedPeriod {
	if in == nil {
		return nil
	}
	out := make([]service.SavedPeriod, len(in))
	for i, p := range in {
		out[i] = service.SavedPeriod{
			PeriodSlot:        p.PeriodSlot,
			AbsentRollNumbers: append([]string(nil), p.AbsentRollNumbers...),
		}
	}
	return out
}
