package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/errors"
	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
	"github.com/video-assistant-team/video-assistant/internal/infrastructure/cache"
	"github.com/video-assistant-team/video-assistant/pkg/ai"
	"github.com/video-assistant-team/video-assistant/pkg/config"
	"github.com/video-assistant-team/video-assistant/pkg/youtube"
)

// Generator is the slice of the chat client the transcript service needs.
type Generator interface {
	Complete(ctx context.Context, req ai.ChatRequest) (string, error)
}

// Service acquires structured transcripts through the generation provider
// and turns them into chunked Video entities, caching the result per video.
type Service struct {
	chat   Generator
	cache  *cache.VideoCache
	cfg    *config.Config
	logger *zap.Logger
}

// NewService constructs the transcript service.
func NewService(chat Generator, videoCache *cache.VideoCache, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{chat: chat, cache: videoCache, cfg: cfg, logger: logger}
}

const transcribePrompt = `You are a professional transcriptionist.
Watch the YouTube video at the provided URL and return a COMPLETE spoken transcript in JSON format.

JSON Structure:
{
  "title": "Video Title",
  "duration": "MM:SS",
  "description": "Short summary",
  "language_original": "Language",
  "transcript": [
    {"timestamp": "0:00", "start_seconds": 0, "text": "Verbatim speech..."},
    {"timestamp": "0:30", "start_seconds": 30, "text": "More speech..."}
  ]
}

Rules:
- Entry every 25-40 seconds.
- Verbatim speech only.
- Return ONLY raw JSON. No markdown backticks.`

// Fetch returns the chunked transcript for a video, from cache when
// available. Transient provider failures retry on the escalating ingest
// schedule before surfacing.
func (s *Service) Fetch(ctx context.Context, videoID string) (*entities.Video, error) {
	if video, ok := s.cache.GetVideo(ctx, videoID); ok {
		s.logger.Info("transcript cache hit", zap.String("video_id", videoID))
		return video, nil
	}

	url := youtube.WatchURL(videoID)
	s.logger.Info("fetching transcript",
		zap.String("video_id", videoID),
		zap.String("model", s.cfg.OpenRouter.TranscribeModel),
	)

	raw, err := ai.RetryTransient(ctx, s.logger, ai.IngestRetryPolicy(s.cfg.OpenRouter.IngestRetryBase), func() (string, error) {
		return s.chat.Complete(ctx, ai.ChatRequest{
			Model: s.cfg.OpenRouter.TranscribeModel,
			Messages: []ai.Message{
				{Role: "user", Content: transcribePrompt + "\n\nURL: " + url},
			},
			Temperature: 0.1,
		})
	})
	if err != nil {
		return nil, errors.FromProvider(err)
	}

	video, err := s.parse(videoID, url, raw)
	if err != nil {
		return nil, err
	}

	video.Chunks = ChunkEntries(video.Entries, s.cfg.Chunking.Size, s.cfg.Chunking.Overlap)
	if len(video.Chunks) == 0 {
		return nil, errors.ErrEmptyTranscript()
	}

	s.cache.SetVideo(ctx, video)
	s.logger.Info("transcript ready",
		zap.String("video_id", videoID),
		zap.String("title", video.Title),
		zap.Int("entries", len(video.Entries)),
		zap.Int("chunks", len(video.Chunks)),
	)
	return video, nil
}

type transcriptPayload struct {
	Title            string `json:"title"`
	Duration         string `json:"duration"`
	Description      string `json:"description"`
	LanguageOriginal string `json:"language_original"`
	Transcript       []struct {
		Timestamp    string  `json:"timestamp"`
		StartSeconds float64 `json:"start_seconds"`
		Text         string  `json:"text"`
	} `json:"transcript"`
}

var fencePattern = regexp.MustCompile("(?m)^```(?:json)?\\s*|\\s*```$")

func (s *Service) parse(videoID, url, raw string) (*entities.Video, error) {
	clean := fencePattern.ReplaceAllString(raw, "")

	var payload transcriptPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, errors.ErrProviderFailed(fmt.Errorf("transcript decode: %w", err))
	}

	entries := make([]entities.TranscriptEntry, 0, len(payload.Transcript))
	for _, item := range payload.Transcript {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		ts := item.Timestamp
		if ts == "" {
			ts = entities.FormatSeconds(item.StartSeconds)
		}
		entries = append(entries, entities.TranscriptEntry{
			Timestamp:    ts,
			StartSeconds: item.StartSeconds,
			Text:         text,
		})
	}
	if len(entries) == 0 {
		return nil, errors.ErrEmptyTranscript()
	}

	title := payload.Title
	if title == "" {
		title = "YouTube Video"
	}
	return &entities.Video{
		VideoID:          videoID,
		URL:              url,
		Title:            title,
		Duration:         payload.Duration,
		Description:      payload.Description,
		LanguageOriginal: payload.LanguageOriginal,
		Entries:          entries,
	}, nil
}
