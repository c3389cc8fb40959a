package assistant

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/video-assistant-team/video-assistant/errors"
	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
	"github.com/video-assistant-team/video-assistant/internal/usecase/qa"
	"github.com/video-assistant-team/video-assistant/internal/usecase/session"
	"github.com/video-assistant-team/video-assistant/internal/usecase/summary"
	"github.com/video-assistant-team/video-assistant/internal/usecase/transcript"
	"github.com/video-assistant-team/video-assistant/pkg/config"
)

// Service orchestrates sessions, transcript acquisition, retrieval Q&A and
// long-form generation for any transport. Every error it returns is an
// AppError carrying a sanitized user message.
type Service struct {
	sessions    *session.Store
	transcripts *transcript.Service
	engine      *qa.Engine
	summaries   *summary.Service
	embedder    qa.Embedder
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService constructs the orchestrator.
func NewService(
	sessions *session.Store,
	transcripts *transcript.Service,
	engine *qa.Engine,
	summaries *summary.Service,
	embedder qa.Embedder,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessions:    sessions,
		transcripts: transcripts,
		engine:      engine,
		summaries:   summaries,
		embedder:    embedder,
		cfg:         cfg,
		logger:      logger,
	}
}

// LoadVideo fetches and indexes a video for the user's session. The fetch
// and the index build, including any retry waits, happen outside the
// session lock; the result is installed atomically.
func (s *Service) LoadVideo(ctx context.Context, userID, videoID string) (*entities.Video, error) {
	sess := s.sessions.Get(userID)

	video, err := s.transcripts.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}

	index, err := qa.BuildIndex(ctx, s.embedder, video.Chunks, s.logger)
	if err != nil {
		return nil, err
	}

	sess.SetVideo(video, index)
	s.logger.Info("video loaded",
		zap.String("session_id", userID),
		zap.String("video_id", videoID),
		zap.Int("chunks", index.Len()),
	)
	return video, nil
}

// Ask answers a question from the session's loaded video and records both
// turns in the conversation history.
func (s *Service) Ask(ctx context.Context, userID, question string) (string, error) {
	sess := s.sessions.Get(userID)
	video, index := sess.Current()
	if video == nil || index == nil {
		return "", apperrors.ErrNoVideo()
	}

	answer, err := s.engine.Answer(ctx, index, video.Title, question, sess.Language(), sess.History())
	if err != nil {
		return "", err
	}

	sess.AddHistory(entities.RoleUser, question)
	sess.AddHistory(entities.RoleAssistant, answer)
	return answer, nil
}

// SummaryKind selects a long-form artifact.
type SummaryKind string

const (
	KindSummary      SummaryKind = "summary"
	KindDeepDive     SummaryKind = "deep_dive"
	KindActionPoints SummaryKind = "action_points"
	KindSimplify     SummaryKind = "simplify"
)

// Summarize generates a long-form artifact for the session's loaded video.
// Topic applies to the simplify kind only.
func (s *Service) Summarize(ctx context.Context, userID string, kind SummaryKind, topic string) (string, error) {
	sess := s.sessions.Get(userID)
	video, _ := sess.Current()
	if video == nil {
		return "", apperrors.ErrNoVideo()
	}

	language := sess.Language()
	switch kind {
	case KindDeepDive:
		return s.summaries.DeepDive(ctx, video, language)
	case KindActionPoints:
		return s.summaries.ActionPoints(ctx, video, language)
	case KindSimplify:
		return s.summaries.Simplify(ctx, video, language, topic)
	default:
		return s.summaries.Summary(ctx, video, language)
	}
}

// SetLanguage updates the session's answer language.
func (s *Service) SetLanguage(userID, language string) {
	s.sessions.Get(userID).SetLanguage(language)
}

// Language returns the session's current answer language.
func (s *Service) Language(userID string) string {
	return s.sessions.Get(userID).Language()
}

// Reset destroys the user's session state and starts fresh.
func (s *Service) Reset(userID string) {
	s.sessions.Reset(userID)
	s.logger.Info("session reset", zap.String("session_id", userID))
}
