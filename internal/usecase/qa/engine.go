package qa

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/video-assistant-team/video-assistant/errors"
	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
	"github.com/video-assistant-team/video-assistant/pkg/ai"
	"github.com/video-assistant-team/video-assistant/pkg/config"
)

// NotCovered is the reserved sentinel meaning "the transcript does not
// answer this question". It is never produced by ordinary language output
// and needs no escaping.
const NotCovered = "NOT_COVERED"

const (
	answerTemperature = 0.1
	answerMaxTokens   = 800
	historyWindow     = 6
	minAnswerLength   = 2
	contextDelimiter  = "\n\n---\n\n"
)

// Negative phrasings from the provider are not trusted verbatim; any of
// these forces the sentinel.
var notCoveredPhrases = []string{
	"not covered", "not mentioned", "not discussed",
	"not in the video", "not found", "no information",
	"cannot find", "does not appear", "does not mention",
}

// Generator is the slice of the chat client the engine needs.
type Generator interface {
	Complete(ctx context.Context, req ai.ChatRequest) (string, error)
}

// Engine answers questions grounded in retrieved transcript chunks. It is
// pure given its inputs: history mutation is the caller's responsibility.
type Engine struct {
	chat     Generator
	embedder Embedder
	cfg      *config.Config
	logger   *zap.Logger
}

// NewEngine constructs the Q&A engine.
func NewEngine(chat Generator, embedder Embedder, cfg *config.Config, logger *zap.Logger) *Engine {
	return &Engine{chat: chat, embedder: embedder, cfg: cfg, logger: logger}
}

// Answer retrieves the top-k chunks for the question and generates a
// grounded response, or NotCovered when the transcript has no answer.
// Transient provider failures wait one fixed cooldown and retry once.
func (e *Engine) Answer(ctx context.Context, index *VectorIndex, title, question, language string, history []entities.Message) (string, error) {
	queryVec, err := e.embedder.EmbedOne(ctx, question)
	if err != nil {
		return "", apperrors.FromProvider(err)
	}

	relevant := index.Search(queryVec, e.cfg.Retrieval.TopK)
	if len(relevant) == 0 {
		return NotCovered, nil
	}

	prompt := buildPrompt(title, question, language, relevant, history)

	answer, err := ai.RetryTransient(ctx, e.logger, ai.QARetryPolicy(e.cfg.OpenRouter.QARetryCooldown), func() (string, error) {
		return e.chat.Complete(ctx, ai.ChatRequest{
			Model:       e.cfg.OpenRouter.ChatModel,
			Messages:    []ai.Message{{Role: "user", Content: prompt}},
			Temperature: answerTemperature,
			MaxTokens:   answerMaxTokens,
		})
	})
	if err != nil {
		return "", apperrors.FromProvider(err)
	}

	return normalizeAnswer(answer), nil
}

func buildPrompt(title, question, language string, relevant []entities.Chunk, history []entities.Message) string {
	contextParts := make([]string, len(relevant))
	for i, c := range relevant {
		contextParts[i] = fmt.Sprintf("[Timestamp: %s]\n%s", c.Timestamp, c.Text)
	}

	historyText := ""
	if len(history) > 0 {
		turns := history
		if len(turns) > historyWindow {
			turns = turns[len(turns)-historyWindow:]
		}
		lines := make([]string, len(turns))
		for i, m := range turns {
			speaker := "Assistant"
			if m.Role == entities.RoleUser {
				speaker = "User"
			}
			lines[i] = speaker + ": " + m.Content
		}
		historyText = "\nPrevious conversation:\n" + strings.Join(lines, "\n") + "\n"
	}

	return fmt.Sprintf(`You are a precise Q&A assistant for the YouTube video: %q.
%s
You MUST answer ONLY using the transcript context below.
If the answer is not present in the context, output exactly: %s
Never guess, infer beyond the text, or use outside knowledge.
Respond in **%s**.
When relevant, cite the timestamp (e.g. "At 3:45, the speaker says...").

TRANSCRIPT CONTEXT:
%s

USER QUESTION: %s

ANSWER:`, title, historyText, NotCovered, language, strings.Join(contextParts, contextDelimiter), question)
}

// normalizeAnswer forces the sentinel for "no information" phrasings and
// degenerate short outputs.
func normalizeAnswer(answer string) string {
	lower := strings.ToLower(answer)
	for _, phrase := range notCoveredPhrases {
		if strings.Contains(lower, phrase) {
			return NotCovered
		}
	}
	if len(answer) < minAnswerLength {
		return NotCovered
	}
	return answer
}
