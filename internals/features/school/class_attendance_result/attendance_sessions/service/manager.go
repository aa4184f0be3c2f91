package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

type sessionKey struct {
	AdminID uuid.UUID
	ClassID uuid.UUID
}

type managedSession struct {
	session  *Session
	lastUsed time.Time
}

// Manager: satu Session per (admin, kelas). Admin lain di kelas yang sama
// punya sesi sendiri; penyimpanan terakhir yang menang.
type Manager struct {
	mu          sync.Mutex
	store       Store
	relockAfter time.Duration
	now         func() time.Time
	sessions    map[sessionKey]*managedSession
}

func NewManager(store Store, relockAfter time.Duration) *Manager {
	return &Manager{
		store:       store,
		relockAfter: relockAfter,
		now:         time.Now,
		sessions:    map[sessionKey]*managedSession{},
	}
}

// Get mengembalikan sesi yang ada atau membuat baru (Unloaded)
func (m *Manager) Get(adminID, classID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := sessionKey{AdminID: adminID, ClassID: classID}
	ms, ok := m.sessions[k]
	if !ok {
		ms = &managedSession{session: NewSession(m.store, m.relockAfter)}
		m.sessions[k] = ms
	}
	ms.lastUsed = m.now()
	return ms.session
}

// Lookup tanpa membuat sesi baru
func (m *Manager) Lookup(adminID, classID uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms, ok := m.sessions[sessionKey{AdminID: adminID, ClassID: classID}]
	if !ok {
		return nil, false
	}
	ms.lastUsed = m.now()
	return ms.session, true
}

func (m *Manager) Drop(adminID, classID uuid.UUID) {
	m.mu.Lock()
	ms, ok := m.sessions[sessionKey{AdminID: adminID, ClassID: classID}]
	delete(m.sessions, sessionKey{AdminID: adminID, ClassID: classID})
	m.mu.Unlock()

	if ok {
		ms.session.Close()
	}
}

// Sweep membuang sesi yang tidak dipakai lebih lama dari maxIdle.
// Sesi yang sedang menyimpan dilewati.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	var stale []*Session
	for k, ms := range m.sessions {
		if ms.lastUsed.After(cutoff) || ms.session.IsSaving() {
			continue
		}
		stale = append(stale, ms.session)
		delete(m.sessions, k)
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll dipanggil saat shutdown
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = map[sessionKey]*managedSession{}
	m.mu.Unlock()

	for _, ms := range all {
		ms.session.Close()
	}
}

// RegisterSweep menjadwalkan Sweep di cron yang sudah ada
func (m *Manager) RegisterSweep(c *cron.Cron, spec string, maxIdle time.Duration) error {
	_, err := c.AddFunc(spec, func() {
		if n := m.Sweep(maxIdle); n > 0 {
			log.Printf("[SESSION-SWEEP] %d sesi presensi idle dibuang, sisa %d", n, m.Len())
		}
	})
	return err
}
