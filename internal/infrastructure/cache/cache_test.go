package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := store.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != "v" {
		t.Errorf("value = %q, want v", got)
	}
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get(context.Background(), "absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "k", []byte("v"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "k", []byte("old"), time.Minute)
	store.Set(ctx, "k", []byte("new"), time.Minute)
	got, _ := store.Get(ctx, "k")
	if string(got) != "new" {
		t.Errorf("value = %q, want new", got)
	}
}

func TestVideoCache_VideoRoundTrip(t *testing.T) {
	ctx := context.Background()
	vc := NewVideoCache(NewMemoryStore(), time.Minute, zap.NewNop())

	video := &entities.Video{
		VideoID: "abc123def45",
		Title:   "A Lecture",
		Entries: []entities.TranscriptEntry{{Timestamp: "0:00", Text: "hello world"}},
		Chunks:  []entities.Chunk{{Timestamp: "0:00", Text: "hello world"}},
	}
	vc.SetVideo(ctx, video)

	got, ok := vc.GetVideo(ctx, "abc123def45")
	if !ok {
		t.Fatal("expected cached video")
	}
	if got.Title != video.Title || len(got.Chunks) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestVideoCache_SummaryKeyedByLanguage(t *testing.T) {
	ctx := context.Background()
	vc := NewVideoCache(NewMemoryStore(), time.Minute, zap.NewNop())

	vc.SetSummary(ctx, "vid", "English", "english summary")
	vc.SetSummary(ctx, "vid", "Hindi", "hindi summary")

	en, ok := vc.GetSummary(ctx, "vid", "English")
	if !ok || en != "english summary" {
		t.Errorf("English summary = %q, %v", en, ok)
	}
	hi, ok := vc.GetSummary(ctx, "vid", "Hindi")
	if !ok || hi != "hindi summary" {
		t.Errorf("Hindi summary = %q, %v", hi, ok)
	}
	if _, ok := vc.GetSummary(ctx, "vid", "Tamil"); ok {
		t.Error("expected miss for never-cached language")
	}
}

func TestVideoCache_KindsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	vc := NewVideoCache(store, time.Minute, zap.NewNop())

	vc.SetSummary(ctx, "vid", "English", "a summary")
	if _, ok := vc.GetVideo(ctx, "vid"); ok {
		t.Error("summary entry must not satisfy a video lookup")
	}
}

func TestVideoCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	vc := NewVideoCache(store, time.Minute, zap.NewNop())

	store.Set(ctx, "transcript:vid", []byte("{not json"), time.Minute)
	if _, ok := vc.GetVideo(ctx, "vid"); ok {
		t.Error("corrupt cache entry must degrade to a miss")
	}
}
