package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Domenick1991/flightservice/internal/ratelimit"
	"github.com/Domenick1991/flightservice/internal/service/account"
	"github.com/Domenick1991/flightservice/internal/service/reservation"
	"github.com/Domenick1991/flightservice/internal/service/search"
)

// Manager hands out sessions keyed by opaque tokens, so any number of
// concurrent user streams can share one backing store.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	accounts     account.AccountUseCase
	search       search.SearchUseCase
	reservations reservation.ReservationUseCase
	limiter      *ratelimit.SessionLimiter
}

func NewManager(
	accounts account.AccountUseCase,
	searchSvc search.SearchUseCase,
	reservations reservation.ReservationUseCase,
	limiter *ratelimit.SessionLimiter,
) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		accounts:     accounts,
		search:       searchSvc,
		reservations: reservations,
		limiter:      limiter,
	}
}

func (m *Manager) Open() *Session {
	s := &Session{
		id:           uuid.NewString(),
		accounts:     m.accounts,
		search:       m.search,
		reservations: m.reservations,
		limiter:      m.limiter,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

func (m *Manager) Close(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	if m.limiter != nil {
		m.limiter.Forget(token)
	}
}
