package session

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
	"github.com/video-assistant-team/video-assistant/pkg/config"
)

func newTestStore(ttl time.Duration, historyCap int) *Store {
	return NewStore(&config.SessionConfig{TTL: ttl, HistoryCap: historyCap}, zap.NewNop())
}

func TestGet_FreshSessionDefaults(t *testing.T) {
	st := newTestStore(time.Hour, 20)

	s := st.Get("user-a")
	if s.Language() != DefaultLanguage {
		t.Errorf("language = %q, want %q", s.Language(), DefaultLanguage)
	}
	if s.HasVideo() {
		t.Error("fresh session must have no video")
	}
	if len(s.History()) != 0 {
		t.Error("fresh session must have empty history")
	}
}

func TestGet_SameIDSameSession(t *testing.T) {
	st := newTestStore(time.Hour, 20)
	if st.Get("user-a") != st.Get("user-a") {
		t.Error("repeated Get must return the same session")
	}
	if st.Get("user-a") == st.Get("user-b") {
		t.Error("different ids must get different sessions")
	}
	if st.Active() != 2 {
		t.Errorf("active = %d, want 2", st.Active())
	}
}

func TestGet_SweepsOtherExpiredSessions(t *testing.T) {
	st := newTestStore(10*time.Millisecond, 20)

	idle := st.Get("idle-user")
	idle.SetLanguage("Hindi")
	time.Sleep(20 * time.Millisecond)

	// A lookup for a different id evicts the idle one.
	st.Get("other-user")
	if st.Active() != 1 {
		t.Fatalf("active = %d, want 1 after sweep", st.Active())
	}

	// The idle user comes back with a fresh session.
	if lang := st.Get("idle-user").Language(); lang != DefaultLanguage {
		t.Errorf("post-expiry language = %q, want %q", lang, DefaultLanguage)
	}
}

func TestGet_TouchKeepsSessionAlive(t *testing.T) {
	st := newTestStore(30*time.Millisecond, 20)

	s := st.Get("user-a")
	s.SetLanguage("Tamil")
	for i := 0; i < 3; i++ {
		time.Sleep(15 * time.Millisecond)
		st.Get("user-a")
	}
	if lang := st.Get("user-a").Language(); lang != "Tamil" {
		t.Errorf("language = %q, want Tamil preserved across touched gets", lang)
	}
}

func TestReset_ClearsState(t *testing.T) {
	st := newTestStore(time.Hour, 20)

	s := st.Get("user-a")
	s.SetLanguage("Kannada")
	s.AddHistory(entities.RoleUser, "a question")

	fresh := st.Reset("user-a")
	if fresh.Language() != DefaultLanguage {
		t.Errorf("language after reset = %q, want %q", fresh.Language(), DefaultLanguage)
	}
	if len(fresh.History()) != 0 {
		t.Error("history must be empty after reset")
	}
}

func TestAddHistory_CapTrimsOldest(t *testing.T) {
	st := newTestStore(time.Hour, 4)
	s := st.Get("user-a")

	for i := 0; i < 6; i++ {
		s.AddHistory(entities.RoleUser, string(rune('a'+i)))
	}
	h := s.History()
	if len(h) != 4 {
		t.Fatalf("history length = %d, want 4", len(h))
	}
	if h[0].Content != "c" || h[3].Content != "f" {
		t.Errorf("trim kept wrong turns: first %q last %q", h[0].Content, h[3].Content)
	}
}

func TestSetVideo_ClearsHistory(t *testing.T) {
	st := newTestStore(time.Hour, 20)
	s := st.Get("user-a")

	s.AddHistory(entities.RoleUser, "about the old video")
	s.SetVideo(&entities.Video{VideoID: "newvideo123", Title: "New"}, nil)

	if len(s.History()) != 0 {
		t.Error("loading a video must start a new conversation")
	}
	video, _ := s.Current()
	if video == nil || video.VideoID != "newvideo123" {
		t.Errorf("current video = %+v", video)
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	st := newTestStore(time.Hour, 20)
	s := st.Get("user-a")
	s.AddHistory(entities.RoleUser, "original")

	h := s.History()
	h[0].Content = "mutated"
	if s.History()[0].Content != "original" {
		t.Error("History must return an independent copy")
	}
}
