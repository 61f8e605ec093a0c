package retry

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	errs "thscraper/pkg/errors"
	"thscraper/pkg/logger"
)

// Operation is a function that performs an operation that might need retrying
type Operation func() error

// Config holds retry configuration
type Config struct {
	// MaxAttempts is the maximum number of attempts
	MaxAttempts int
	// Backoff strategy to use
	Backoff BackoffStrategy
	// RetryIf determines if an error should be retried
	RetryIf func(error) bool
	// Context for cancellation
	Context context.Context
	// Logger for retry attempts
	Logger logger.Logger
}

// DefaultConfig returns a retry configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		Backoff:     DefaultExponentialBackoff(),
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
		Logger:      logger.GetLogger(),
	}
}

// DefaultRetryIf retries transient fetch failures: timeouts and retryable
// HTTP statuses. Parse and exhaustion failures never retry.
func DefaultRetryIf(err error) bool {
	if err == nil {
		return false
	}

	var scrapeErr *errs.Error
	if stderrors.As(err, &scrapeErr) {
		if !errs.IsRetryable(scrapeErr.Type) {
			return false
		}
		if scrapeErr.Type == errs.ErrorTypeHTTP {
			return errs.IsRetryableStatusCode(scrapeErr.Code)
		}
		return true
	}

	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return true
}

// Do executes an operation with retry logic. The last failure is returned
// once attempts are exhausted; the caller decides whether it is fatal.
func Do(op Operation, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var lastErr error

	for attempt := 1; ; attempt++ {
		if cfg.MaxAttempts > 0 && attempt > cfg.MaxAttempts {
			if cfg.Logger != nil {
				cfg.Logger.WarnWithFields("max retry attempts exceeded", map[string]interface{}{
					"attempts":   attempt - 1,
					"last_error": lastErr.Error(),
				})
			}
			return lastErr
		}

		err := op()
		if err == nil {
			if attempt > 1 && cfg.Logger != nil {
				cfg.Logger.DebugWithFields("operation succeeded after retry", map[string]interface{}{
					"attempt": attempt,
				})
			}
			return nil
		}

		lastErr = err

		if !cfg.RetryIf(err) {
			return err
		}

		delay := cfg.Backoff.NextDelay(attempt)

		if cfg.Logger != nil {
			cfg.Logger.WarnWithFields("retrying operation", map[string]interface{}{
				"attempt":      attempt,
				"error":        err.Error(),
				"delay_ms":     delay.Milliseconds(),
				"max_attempts": cfg.MaxAttempts,
			})
		}

		if err := Wait(cfg.Context, delay); err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}
	}
}

// Wait sleeps for the given delay, aborting early if the context is done
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
