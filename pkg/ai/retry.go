package ai

import (
	"context"
	"errors"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// The Q&A path and the transcript/summary paths deliberately use different
// cooldown schedules; keep them as two separate policies.

// QARetryPolicy waits a fixed cooldown and retries exactly once.
func QARetryPolicy(cooldown time.Duration) backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(cooldown), 1)
}

// IngestRetryPolicy escalates linearly (base, 2*base) across two retries,
// three attempts total.
func IngestRetryPolicy(base time.Duration) backoff.BackOff {
	return backoff.WithMaxRetries(&linearBackOff{base: base}, 2)
}

// linearBackOff waits base * attempt number.
type linearBackOff struct {
	base    time.Duration
	attempt time.Duration
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return b.base * b.attempt
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

// RetryTransient runs op under the given policy, retrying only transient
// provider failures. Policies are stateful; pass a freshly constructed one
// per call. The wait blocks only the calling goroutine.
func RetryTransient(ctx context.Context, logger *zap.Logger, policy backoff.BackOff, op func() (string, error)) (string, error) {
	var result string
	operation := func() error {
		out, err := op()
		if err != nil {
			var perr *ProviderError
			if errors.As(err, &perr) && perr.Transient() {
				return err
			}
			return backoff.Permanent(err)
		}
		result = out
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("transient provider failure, backing off",
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		return "", err
	}
	return result, nil
}
