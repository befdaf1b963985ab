package scanner

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeSingle Mode = "single" // berhenti setelah satu kode diterima
	ModeMulti  Mode = "multi"  // terus menerima, scan berulang di-dedup
)

func ValidMode(m Mode) bool {
	return m == ModeSingle || m == ModeMulti
}

// DefaultCooldown: kamera bisa membaca kode yang sama berkali-kali per detik,
// scan berulang dalam jendela ini dianggap satu scan.
const DefaultCooldown = 3 * time.Second

type Observation struct {
	Accepted  bool
	Duplicate bool
	Done      bool // sesi single sudah selesai
}

type Session struct {
	ID     string
	UserID uint
	Mode   Mode

	mu         sync.Mutex
	lastCode   string
	lastScan   time.Time
	done       bool
	lastActive time.Time
	cooldown   time.Duration
}

// Observe memproses satu kode hasil decode. Kode yang sama dalam jendela
// cooldown dilaporkan sebagai duplikat dan tidak diteruskan.
func (s *Session) Observe(code string) Observation {
	return s.observeAt(code, time.Now())
}

func (s *Session) observeAt(code string, at time.Time) Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = at

	if s.done {
		return Observation{Done: true}
	}

	if code == s.lastCode && at.Sub(s.lastScan) < s.cooldown {
		s.lastScan = at
		return Observation{Duplicate: true}
	}

	s.lastCode = code
	s.lastScan = at

	if s.Mode == ModeSingle {
		s.done = true
	}
	return Observation{Accepted: true, Done: s.done}
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive) > ttl
}

// Manager menyimpan sesi scan yang sedang berjalan. Sesi umurnya pendek dan
// terikat ke satu browser, jadi cukup di memori proses.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cooldown time.Duration
	ttl      time.Duration
}

func NewManager(cooldown, ttl time.Duration) *Manager {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		cooldown: cooldown,
		ttl:      ttl,
	}
}

func (m *Manager) Cooldown() time.Duration {
	return m.cooldown
}

func (m *Manager) Create(userID uint, mode Mode) *Session {
	s := &Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		Mode:       mode,
		lastActive: time.Now(),
		cooldown:   m.cooldown,
	}

	m.mu.Lock()
	m.purgeLocked(time.Now())
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) purgeLocked(now time.Time) {
	for id, s := range m.sessions {
		if s.expired(now, m.ttl) {
			delete(m.sessions, id)
		}
	}
}
