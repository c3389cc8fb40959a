package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/pkg/config"
)

// Store owns one Session per user id. Eviction is passive: every Get sweeps
// all expired sessions, whoever they belong to; there is no background
// timer and no maximum session count.
type Store struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	ttl        time.Duration
	historyCap int
	logger     *zap.Logger
}

// NewStore constructs the session store.
func NewStore(cfg *config.SessionConfig, logger *zap.Logger) *Store {
	return &Store{
		sessions:   make(map[string]*Session),
		ttl:        cfg.TTL,
		historyCap: cfg.HistoryCap,
		logger:     logger,
	}
}

// Get returns the session for id, creating it on first access. The returned
// session is touched; expired sessions (any id) are removed as a side
// effect.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked()

	s, ok := st.sessions[id]
	if !ok {
		s = newSession(id, st.historyCap)
		st.sessions[id] = s
		st.logger.Info("new session", zap.String("session_id", id))
		return s
	}
	s.Touch()
	return s
}

// Reset destroys the session for id and returns a fresh one.
func (st *Store) Reset(id string) *Session {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
	return st.Get(id)
}

// Active returns the number of live sessions.
func (st *Store) Active() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) sweepLocked() {
	now := time.Now()
	for id, s := range st.sessions {
		if s.expired(st.ttl, now) {
			delete(st.sessions, id)
			st.logger.Info("session expired", zap.String("session_id", id))
		}
	}
}
