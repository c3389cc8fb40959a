package summary

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/errors"
	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
	"github.com/video-assistant-team/video-assistant/internal/infrastructure/cache"
	"github.com/video-assistant-team/video-assistant/pkg/ai"
	"github.com/video-assistant-team/video-assistant/pkg/config"
)

const (
	summaryMaxTokens      = 1500
	deepDiveMaxTokens     = 2000
	actionPointsMaxTokens = 1500
	simplifyMaxTokens     = 1000

	generateTemperature = 0.3

	// Long transcripts are trimmed to head and tail halves before prompting.
	maxTranscriptChars = 40000
)

// Generator is the slice of the chat client the summarizer needs.
type Generator interface {
	Complete(ctx context.Context, req ai.ChatRequest) (string, error)
}

// Service generates long-form artifacts from the full transcript. The
// standard summary is cached per video and language.
type Service struct {
	chat   Generator
	cache  *cache.VideoCache
	cfg    *config.Config
	logger *zap.Logger
}

// NewService constructs the summarizer.
func NewService(chat Generator, videoCache *cache.VideoCache, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{chat: chat, cache: videoCache, cfg: cfg, logger: logger}
}

// Summary generates the structured summary, serving from cache when the
// same video+language pair was summarized before.
func (s *Service) Summary(ctx context.Context, video *entities.Video, language string) (string, error) {
	if cached, ok := s.cache.GetSummary(ctx, video.VideoID, language); ok {
		s.logger.Info("summary cache hit", zap.String("video_id", video.VideoID), zap.String("language", language))
		return cached, nil
	}

	duration := video.Duration
	if duration == "" {
		duration = "N/A"
	}
	prompt := fmt.Sprintf(`You are an expert video analyst. Analyze this transcript and generate a structured summary.
Respond ENTIRELY in %s.

VIDEO: %s
TRANSCRIPT:
%s

FORMAT:
*%s*
Duration: %s

*5 Key Points*
1. [Point 1]
2. [Point 2]
3. [Point 3]
4. [Point 4]
5. [Point 5]

*Important Timestamps*
- [MM:SS] - [Description]
- [MM:SS] - [Description]
- [MM:SS] - [Description]

*Core Takeaway*
[One powerful sentence]

*Who Should Watch This*
[1-2 sentences]`, language, video.Title, prepareTranscript(video), video.Title, duration)

	text, err := s.generate(ctx, prompt, summaryMaxTokens)
	if err != nil {
		return "", err
	}
	s.cache.SetSummary(ctx, video.VideoID, language, text)
	return text, nil
}

// DeepDive generates a thematic analysis of the transcript.
func (s *Service) DeepDive(ctx context.Context, video *entities.Video, language string) (string, error) {
	prompt := fmt.Sprintf("Perform a deep analytical dive on this video transcript in %s. Video: %s\n\nTranscript:\n%s",
		language, video.Title, prepareTranscript(video))
	return s.generate(ctx, prompt, deepDiveMaxTokens)
}

// ActionPoints extracts concrete action items from the transcript.
func (s *Service) ActionPoints(ctx context.Context, video *entities.Video, language string) (string, error) {
	prompt := fmt.Sprintf("Extract concrete action points from this video in %s. Video: %s\n\nTranscript:\n%s",
		language, video.Title, prepareTranscript(video))
	return s.generate(ctx, prompt, actionPointsMaxTokens)
}

// Simplify explains the video, or a specific topic in it, in simple terms.
func (s *Service) Simplify(ctx context.Context, video *entities.Video, language, topic string) (string, error) {
	about := ""
	if topic != "" {
		about = fmt.Sprintf(" specifically about %q", topic)
	}
	prompt := fmt.Sprintf(`Explain this video content%s in very simple terms. Respond ENTIRELY in %s.
VIDEO: %s
TRANSCRIPT:
%s

FORMAT:
*Simple Explanation*
[Explain like I'm 10 years old]

*Key Terms*
- [Term] -> [Simple meaning]

*Metaphor*
[One metaphor to make it click]`, about, language, video.Title, prepareTranscript(video))
	return s.generate(ctx, prompt, simplifyMaxTokens)
}

func (s *Service) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	text, err := ai.RetryTransient(ctx, s.logger, ai.IngestRetryPolicy(s.cfg.OpenRouter.IngestRetryBase), func() (string, error) {
		return s.chat.Complete(ctx, ai.ChatRequest{
			Model:       s.cfg.OpenRouter.ChatModel,
			Messages:    []ai.Message{{Role: "user", Content: prompt}},
			Temperature: generateTemperature,
			MaxTokens:   maxTokens,
		})
	})
	if err != nil {
		return "", errors.FromProvider(err)
	}
	return text, nil
}

func prepareTranscript(video *entities.Video) string {
	text := video.TextBlock()
	if len(text) > maxTranscriptChars {
		half := maxTranscriptChars / 2
		text = text[:half] + "\n[...]\n" + text[len(text)-half:]
	}
	return text
}
