package session

import (
	"sync"
	"time"

	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
	"github.com/video-assistant-team/video-assistant/internal/usecase/qa"
)

// DefaultLanguage is the answer language for fresh sessions.
const DefaultLanguage = "English"

// Session is the isolated per-user state: the loaded video, its private
// vector index, bounded conversation history, and language preference.
// All mutable fields are guarded by the session's own mutex, so different
// sessions proceed fully in parallel.
type Session struct {
	ID string

	mu         sync.Mutex
	language   string
	video      *entities.Video
	index      *qa.VectorIndex
	history    []entities.Message
	historyCap int
	lastActive time.Time
}

func newSession(id string, historyCap int) *Session {
	return &Session{
		ID:         id,
		language:   DefaultLanguage,
		historyCap: historyCap,
		lastActive: time.Now(),
	}
}

// Language returns the current answer language.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage updates the answer language.
func (s *Session) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
	s.lastActive = time.Now()
}

// HasVideo reports whether a video and its index are both present; they are
// only ever set together.
func (s *Session) HasVideo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.video != nil && s.index != nil
}

// Current returns the loaded video and index, or nils when none is loaded.
func (s *Session) Current() (*entities.Video, *qa.VectorIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.video, s.index
}

// SetVideo installs a video and its freshly built index atomically and
// starts a new conversation. Callers build the index before taking this
// lock; no network wait ever happens under it.
func (s *Session) SetVideo(video *entities.Video, index *qa.VectorIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.video = video
	s.index = index
	s.history = nil
	s.lastActive = time.Now()
}

// AddHistory appends one turn and trims to capacity, oldest first, as a
// single operation under the session lock.
func (s *Session) AddHistory(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, entities.Message{Role: role, Content: content})
	if len(s.history) > s.historyCap {
		s.history = s.history[len(s.history)-s.historyCap:]
	}
}

// History returns a copy of the conversation so callers never observe
// concurrent trimming.
func (s *Session) History() []entities.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Touch refreshes the idle timer.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive) > ttl
}
