package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), fastConfig(), func() error {
		callCount++
		if callCount < 3 {
			return errors.New("HTTP 503")
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected success after retries, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	callCount := 0
	wantErr := errors.New("HTTP 429 too many requests")
	err := Do(context.Background(), fastConfig(), func() error {
		callCount++
		return wantErr
	})

	if err != wantErr {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
	if callCount != 4 {
		t.Errorf("expected 4 calls (1 + 3 retries), got %d", callCount)
	}
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	callCount := 0
	wantErr := errors.New("HTTP 403 forbidden")
	err := Do(context.Background(), fastConfig(), func() error {
		callCount++
		return wantErr
	})

	if err != wantErr {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call (no retries on permanent error), got %d", callCount)
	}
}

func TestDoWithResult_StopsOnPermanentError(t *testing.T) {
	callCount := 0
	wantErr := errors.New("HTTP 403 forbidden")
	_, err := DoWithResult(context.Background(), fastConfig(), func() (int, error) {
		callCount++
		return 0, wantErr
	})

	if err != wantErr {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call (no retries on permanent error), got %d", callCount)
	}
}

func TestDo_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &Config{
		MaxRetries:   5,
		InitialDelay: time.Minute,
		MaxDelay:     time.Minute,
		Multiplier:   2.0,
	}
	err := Do(ctx, cfg, func() error {
		return errors.New("HTTP 503")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"rate limited", errors.New("HTTP 429 too many requests"), true},
		{"server error", errors.New("HTTP 503 service unavailable"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"bad token", errors.New("HTTP 403 forbidden"), false},
		{"not found", errors.New("HTTP 404 not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expected {
				t.Errorf("IsRetryable(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}
