package errors

import (
	"errors"

	"github.com/video-assistant-team/video-assistant/pkg/ai"
)

// FromProvider maps an already-classified provider failure onto the
// application taxonomy. Exhausted retries on a transient failure surface
// here as RATE_LIMITED; permanent failures as CONTENT_TOO_LARGE or
// PROVIDER_FAILED.
func FromProvider(err error) AppError {
	var perr *ai.ProviderError
	if !errors.As(err, &perr) {
		return ErrInternal(err)
	}
	switch perr.Kind {
	case ai.KindRateLimited, ai.KindOverloaded:
		return ErrRateLimited(err)
	case ai.KindTooLarge:
		return ErrContentTooLarge(err)
	default:
		return ErrProviderFailed(err)
	}
}
