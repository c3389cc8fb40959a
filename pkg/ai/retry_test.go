package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

func collectSchedule(policy backoff.BackOff) []time.Duration {
	var waits []time.Duration
	for {
		d := policy.NextBackOff()
		if d == backoff.Stop {
			return waits
		}
		waits = append(waits, d)
		if len(waits) > 10 {
			return waits
		}
	}
}

func TestQARetryPolicy_Schedule(t *testing.T) {
	waits := collectSchedule(QARetryPolicy(60 * time.Second))
	if len(waits) != 1 {
		t.Fatalf("got %d waits, want exactly 1", len(waits))
	}
	if waits[0] != 60*time.Second {
		t.Errorf("wait = %v, want 60s", waits[0])
	}
}

func TestIngestRetryPolicy_Schedule(t *testing.T) {
	waits := collectSchedule(IngestRetryPolicy(70 * time.Second))
	if len(waits) != 2 {
		t.Fatalf("got %d waits, want exactly 2", len(waits))
	}
	if waits[0] != 70*time.Second || waits[1] != 140*time.Second {
		t.Errorf("schedule = %v, want [70s 140s]", waits)
	}
}

func TestLinearBackOff_Reset(t *testing.T) {
	b := &linearBackOff{base: time.Second}
	b.NextBackOff()
	b.NextBackOff()
	b.Reset()
	if d := b.NextBackOff(); d != time.Second {
		t.Errorf("after reset first wait = %v, want 1s", d)
	}
}

func TestRetryTransient_RecoversAfterTransientFailure(t *testing.T) {
	calls := 0
	out, err := RetryTransient(context.Background(), zap.NewNop(), QARetryPolicy(time.Millisecond), func() (string, error) {
		calls++
		if calls == 1 {
			return "", &ProviderError{Kind: KindOverloaded, Status: 503, Message: "busy"}
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("RetryTransient: %v", err)
	}
	if out != "recovered" {
		t.Errorf("out = %q", out)
	}
	if calls != 2 {
		t.Errorf("op called %d times, want 2", calls)
	}
}

func TestRetryTransient_PermanentShortCircuits(t *testing.T) {
	calls := 0
	want := &ProviderError{Kind: KindTooLarge, Status: 400, Message: "too big"}
	_, err := RetryTransient(context.Background(), zap.NewNop(), QARetryPolicy(time.Millisecond), func() (string, error) {
		calls++
		return "", want
	})
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Kind != KindTooLarge {
		t.Errorf("got %v, want the original too_large error", err)
	}
}

func TestRetryTransient_NonProviderErrorNotRetried(t *testing.T) {
	calls := 0
	_, err := RetryTransient(context.Background(), zap.NewNop(), IngestRetryPolicy(time.Millisecond), func() (string, error) {
		calls++
		return "", errors.New("plain failure")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
}

func TestRetryTransient_ExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	_, err := RetryTransient(context.Background(), zap.NewNop(), IngestRetryPolicy(time.Millisecond), func() (string, error) {
		calls++
		return "", &ProviderError{Kind: KindRateLimited, Status: 429, Message: "still limited"}
	})
	if err == nil {
		t.Fatal("expected error after exhaustion")
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3 (two retries)", calls)
	}
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Kind != KindRateLimited {
		t.Errorf("got %v, want last rate_limited error", err)
	}
}
