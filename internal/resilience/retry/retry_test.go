package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   5 * time.Millisecond,
		MaxDelay:       20 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_Success(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithBackoff_SuccessAfterRetry(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		if attempts < 3 {
			return syscall.ECONNREFUSED
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithBackoff_MaxAttemptsExceeded(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return syscall.ECONNRESET
	})
	if !errors.Is(err, syscall.ECONNRESET) {
		t.Errorf("expected wrapped ECONNRESET, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithBackoff_NonRetryableError(t *testing.T) {
	attempts := 0
	syntaxErr := &pgconn.PgError{Code: pgerrcode.SyntaxError}
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return syntaxErr
	})
	if !errors.Is(err, syntaxErr) {
		t.Errorf("expected syntax error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(5)
	cfg.InitialDelay = time.Second

	attempts := 0
	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		cancel()
		return syscall.ECONNREFUSED
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline exceeded", context.DeadlineExceeded, false},
		{"ECONNREFUSED", syscall.ECONNREFUSED, true},
		{"wrapped ECONNRESET", fmt.Errorf("ping: %w", syscall.ECONNRESET), true},
		{"ETIMEDOUT", syscall.ETIMEDOUT, true},
		{"ENETUNREACH", syscall.ENETUNREACH, true},
		{"connection failure", &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, true},
		{"cannot connect now", &pgconn.PgError{Code: pgerrcode.CannotConnectNow}, true},
		{"too many connections", &pgconn.PgError{Code: pgerrcode.TooManyConnections}, true},
		{"unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, false},
		{"generic error", errors.New("some error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestConfigs(t *testing.T) {
	for name, cfg := range map[string]Config{
		"startup": StartupConfig(),
	} {
		if cfg.MaxAttempts < 1 || cfg.InitialDelay <= 0 || cfg.MaxDelay < cfg.InitialDelay || cfg.Multiplier < 1 {
			t.Errorf("%s: inconsistent config %+v", name, cfg)
		}
	}
}

func TestAddJitter(t *testing.T) {
	duration := 100 * time.Millisecond
	results := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		result := addJitter(duration, 0.2)
		if result < duration || result > time.Duration(float64(duration)*1.2) {
			t.Errorf("jitter out of range: %v", result)
		}
		results[result] = true
	}
	if len(results) < 2 {
		t.Error("expected jitter to produce varied results")
	}
}

func TestAddJitter_ZeroFraction(t *testing.T) {
	if got := addJitter(time.Second, 0); got != time.Second {
		t.Errorf("expected no jitter with fraction=0, got %v", got)
	}
}
