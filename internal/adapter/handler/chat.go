package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/video-assistant-team/video-assistant/errors"
	"github.com/video-assistant-team/video-assistant/internal/usecase/assistant"
	"github.com/video-assistant-team/video-assistant/pkg/youtube"
)

// ChatHandler is a thin HTTP front for the assistant. A richer chat
// transport (Telegram, Slack) would call the same assistant methods.
type ChatHandler struct {
	assistant *assistant.Service
	logger    *zap.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(svc *assistant.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{assistant: svc, logger: logger}
}

// RegisterRoutes attaches the handler's routes to the server.
func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/v1")
	v1.POST("/chat", h.Chat)
	v1.POST("/reset", h.Reset)
	e.GET("/healthz", h.Health)
}

// ChatRequest is one inbound user message.
type ChatRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse carries a sanitized user-facing message. Raw error text
// never leaves the process.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Chat handles one user message: a video link loads a video, a slash
// command selects a long-form artifact, anything else is a question.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "user_id and message are required"})
	}

	logger := h.logger.With(
		zap.String("request_id", uuid.New().String()),
		zap.String("user_id", req.UserID),
	)

	reply, err := h.dispatch(c, logger, req.UserID, strings.TrimSpace(req.Message))
	if err != nil {
		app := apperrors.AsAppError(err)
		logger.Error("chat request failed", zap.Error(err))
		return c.JSON(statusFor(app), ErrorResponse{Message: app.UserMessage()})
	}
	return c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func (h *ChatHandler) dispatch(c echo.Context, logger *zap.Logger, userID, text string) (string, error) {
	ctx := c.Request().Context()

	if videoID := youtube.ExtractVideoID(text); videoID != "" {
		video, err := h.assistant.LoadVideo(ctx, userID, videoID)
		if err != nil {
			return "", err
		}
		return "Loaded \"" + video.Title + "\". Ask me anything about it.", nil
	}

	command, arg := splitCommand(text)
	switch command {
	case "/summary":
		return h.assistant.Summarize(ctx, userID, assistant.KindSummary, "")
	case "/deepdive":
		return h.assistant.Summarize(ctx, userID, assistant.KindDeepDive, "")
	case "/actions":
		return h.assistant.Summarize(ctx, userID, assistant.KindActionPoints, "")
	case "/simplify":
		return h.assistant.Summarize(ctx, userID, assistant.KindSimplify, arg)
	case "/language":
		language := assistant.DetectLanguage(arg)
		if language == "" {
			return "I don't support that language yet. Current language: " + h.assistant.Language(userID), nil
		}
		h.assistant.SetLanguage(userID, language)
		return "Answer language set to " + language + ".", nil
	case "/reset":
		h.assistant.Reset(userID)
		return "Session cleared. Send a video link to start over.", nil
	}

	logger.Info("question received")
	return h.assistant.Ask(ctx, userID, text)
}

// ResetRequest identifies the session to destroy.
type ResetRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// Reset destroys the caller's session.
func (h *ChatHandler) Reset(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "user_id is required"})
	}
	h.assistant.Reset(req.UserID)
	return c.NoContent(http.StatusNoContent)
}

// Health reports liveness.
func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	parts := strings.SplitN(text, " ", 2)
	command := strings.ToLower(parts[0])
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return command, arg
}

func statusFor(app apperrors.AppError) int {
	switch app.Code {
	case apperrors.ErrorCode_RATE_LIMITED:
		return http.StatusTooManyRequests
	case apperrors.ErrorCode_CONTENT_TOO_LARGE:
		return http.StatusRequestEntityTooLarge
	case apperrors.ErrorCode_NO_VIDEO, apperrors.ErrorCode_EMPTY_TRANSCRIPT:
		return http.StatusBadRequest
	case apperrors.ErrorCode_PROVIDER_FAILED:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
