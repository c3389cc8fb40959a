package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/video-assistant-team/video-assistant/pkg/ai"
)

func TestUserMessage_NeverExposesRawError(t *testing.T) {
	raw := errors.New("dial tcp 10.0.0.1:443: connection refused")
	for _, app := range []AppError{
		ErrRateLimited(raw),
		ErrContentTooLarge(raw),
		ErrProviderFailed(raw),
		ErrInternal(raw),
	} {
		if strings.Contains(app.UserMessage(), "10.0.0.1") {
			t.Errorf("[%s] raw error leaked into user message %q", app.Code, app.UserMessage())
		}
		if app.UserMessage() == "" {
			t.Errorf("[%s] empty user message", app.Code)
		}
		// The log form does carry the cause.
		if !strings.Contains(app.Error(), "connection refused") {
			t.Errorf("[%s] log form lost the cause: %q", app.Code, app.Error())
		}
	}
}

func TestAsAppError(t *testing.T) {
	app := AsAppError(ErrNoVideo())
	if app.Code != ErrorCode_NO_VIDEO {
		t.Errorf("code = %v, want NO_VIDEO", app.Code)
	}

	wrapped := fmt.Errorf("handling request: %w", ErrEmptyTranscript())
	if AsAppError(wrapped).Code != ErrorCode_EMPTY_TRANSCRIPT {
		t.Error("wrapped AppError not recovered from chain")
	}

	plain := AsAppError(errors.New("something else"))
	if plain.Code != ErrorCode_INTERNAL {
		t.Errorf("code = %v, want INTERNAL for unknown error", plain.Code)
	}
}

func TestUnwrap(t *testing.T) {
	raw := errors.New("root cause")
	if !errors.Is(ErrProviderFailed(raw), raw) {
		t.Error("AppError must unwrap to its raw cause")
	}
}

func TestFromProvider(t *testing.T) {
	cases := []struct {
		kind ai.ErrorKind
		want ErrorCode
	}{
		{ai.KindRateLimited, ErrorCode_RATE_LIMITED},
		{ai.KindOverloaded, ErrorCode_RATE_LIMITED},
		{ai.KindTooLarge, ErrorCode_CONTENT_TOO_LARGE},
		{ai.KindBadResponse, ErrorCode_PROVIDER_FAILED},
	}
	for _, tc := range cases {
		app := FromProvider(&ai.ProviderError{Kind: tc.kind, Message: "x"})
		if app.Code != tc.want {
			t.Errorf("kind %s mapped to %s, want %s", tc.kind, app.Code, tc.want)
		}
	}

	if FromProvider(errors.New("not a provider error")).Code != ErrorCode_INTERNAL {
		t.Error("non-provider error must map to INTERNAL")
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrorCode_RATE_LIMITED.String() != "RATE_LIMITED" {
		t.Errorf("got %q", ErrorCode_RATE_LIMITED.String())
	}
	if ErrorCode(99).String() != "INTERNAL" {
		t.Errorf("unknown code renders %q, want INTERNAL", ErrorCode(99).String())
	}
}
