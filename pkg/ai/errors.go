package ai

import "fmt"

// ErrorKind classifies a provider failure. Classification happens exactly
// once, at the HTTP boundary; downstream code switches on Kind and never
// re-parses error text.
type ErrorKind int

const (
	// KindBadResponse covers malformed or empty provider responses.
	KindBadResponse ErrorKind = iota
	// KindRateLimited covers 429 and quota signals.
	KindRateLimited
	// KindOverloaded covers 5xx overload signals.
	KindOverloaded
	// KindTooLarge covers context-length rejections.
	KindTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindOverloaded:
		return "overloaded"
	case KindTooLarge:
		return "too_large"
	default:
		return "bad_response"
	}
}

// ProviderError is a classified failure from an external AI provider.
type ProviderError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%s, status %d): %s", e.Kind, e.Status, e.Message)
}

// Transient reports whether the failure is worth retrying.
func (e *ProviderError) Transient() bool {
	return e.Kind == KindRateLimited || e.Kind == KindOverloaded
}

// classifyHTTPFailure maps a non-2xx provider response to a ProviderError.
func classifyHTTPFailure(status int, body string) *ProviderError {
	kind := KindBadResponse
	switch {
	case status == 429:
		kind = KindRateLimited
	case status == 500 || status == 502 || status == 503 || status == 529:
		kind = KindOverloaded
	case containsAny(body, "context_length", "context length", "too many tokens", "maximum context"):
		kind = KindTooLarge
	case containsAny(body, "quota", "rate limit"):
		kind = KindRateLimited
	}
	return &ProviderError{Kind: kind, Status: status, Message: truncate(body, 200)}
}
