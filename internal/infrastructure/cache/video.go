package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
)

// Key kinds. Namespacing by semantic kind keeps unrelated artifacts for the
// same video id from colliding.
const (
	kindTranscript = "transcript:"
	kindSummary    = "summary:"
)

// VideoCache wraps a Store with the application's key scheme and
// serialization. Transcripts are keyed by video id, summaries by video id
// and language.
type VideoCache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewVideoCache creates a VideoCache over the selected backend.
func NewVideoCache(store Store, ttl time.Duration, logger *zap.Logger) *VideoCache {
	return &VideoCache{store: store, ttl: ttl, logger: logger}
}

// GetVideo returns a previously cached video, or a miss.
func (c *VideoCache) GetVideo(ctx context.Context, videoID string) (*entities.Video, bool) {
	data, ok := c.store.Get(ctx, kindTranscript+videoID)
	if !ok {
		return nil, false
	}
	var video entities.Video
	if err := json.Unmarshal(data, &video); err != nil {
		c.logger.Warn("cached video is unreadable", zap.String("video_id", videoID), zap.Error(err))
		return nil, false
	}
	return &video, true
}

// SetVideo caches a fetched video.
func (c *VideoCache) SetVideo(ctx context.Context, video *entities.Video) {
	data, err := json.Marshal(video)
	if err != nil {
		c.logger.Warn("failed to serialize video for cache", zap.String("video_id", video.VideoID), zap.Error(err))
		return
	}
	c.store.Set(ctx, kindTranscript+video.VideoID, data, c.ttl)
	c.logger.Info("cached video", zap.String("video_id", video.VideoID))
}

// GetSummary returns a previously generated summary for a video+language.
func (c *VideoCache) GetSummary(ctx context.Context, videoID, language string) (string, bool) {
	data, ok := c.store.Get(ctx, kindSummary+videoID+":"+language)
	if !ok {
		return "", false
	}
	return string(data), true
}

// SetSummary caches a generated summary for a video+language.
func (c *VideoCache) SetSummary(ctx context.Context, videoID, language, text string) {
	c.store.Set(ctx, kindSummary+videoID+":"+language, []byte(text), c.ttl)
}
