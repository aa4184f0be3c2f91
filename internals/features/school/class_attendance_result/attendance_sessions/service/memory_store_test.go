package service

import (
	"context"
	"sort"
	"sync"

	classRepo "presensiku_backend/internals/features/school/classes/classes/repository"

	"github.com/google/uuid"
)

// MemoryStore: Store in-memory untuk pengujian.
// Field *Err dipakai untuk mensimulasikan kegagalan backend.
type MemoryStore struct {
	mu      sync.Mutex
	classes map[uuid.UUID]ClassSnapshot
	days    map[uuid.UUID]map[string][]SavedPeriod

	GetDayErr    error
	SaveErr      error
	ListDatesErr error
	// BeforeSave dipanggil di awal SaveDay (di luar lock store)
	BeforeSave func()

	saveCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		classes: map[uuid.UUID]ClassSnapshot{},
		days:    map[uuid.UUID]map[string][]SavedPeriod{},
	}
}

func (m *MemoryStore) PutClass(c ClassSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes[c.ClassID] = c
}

func (m *MemoryStore) PutDay(classID uuid.UUID, date string, periods []SavedPeriod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.days[classID] == nil {
		m.days[classID] = map[string][]SavedPeriod{}
	}
	m.days[classID][date] = clonePeriods(periods)
}

func (m *MemoryStore) Day(classID uuid.UUID, date string) []SavedPeriod {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clonePeriods(m.days[classID][date])
}

func (m *MemoryStore) SaveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

func (m *MemoryStore) LoadClass(_ context.Context, classID uuid.UUID) (ClassSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[classID]
	if !ok {
		return ClassSnapshot{}, classRepo.ErrClassNotFound
	}
	return c, nil
}

func (m *MemoryStore) GetDay(_ context.Context, classID uuid.UUID, date string) ([]SavedPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetDayErr != nil {
		return nil, m.GetDayErr
	}
	return clonePeriods(m.days[classID][date]), nil
}

func (m *MemoryStore) SaveDay(ctx context.Context, classID uuid.UUID, date string, _ uuid.UUID, periods []SavedPeriod) error {
	m.mu.Lock()
	hook := m.BeforeSave
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.days[classID] == nil {
		m.days[classID] = map[string][]SavedPeriod{}
	}
	m.days[classID][date] = clonePeriods(periods)
	return nil
}

func (m *MemoryStore) ListDates(_ context.Context, classID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListDatesErr != nil {
		return nil, m.ListDatesErr
	}
	out := make([]string, 0, len(m.days[classID]))
	for d, periods := range m.days[classID] {
		if len(periods) > 0 {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out, nil
}

func clonePeriods(in []SavedPeriod) []SavedPeriod {
	if in == nil {
		return nil
	}
	out := make([]SavedPeriod, len(in))
	for i, p := range in {
		out[i] = SavedPeriod{
			PeriodSlot:        p.PeriodSlot,
			AbsentRollNumbers: append([]string(nil), p.AbsentRollNumbers...),
		}
	}
	return out
}
