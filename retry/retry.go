// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package retry provides a reusable retry policy with exponential backoff,
// applied uniformly to all network-bound collaborator calls.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrInvalidMaxAttempts indicates a policy with a non-positive attempt count.
var ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

// Policy describes a bounded retry strategy: up to MaxAttempts attempts,
// sleeping BaseDelay * 2^(attempt-1) between them. Retryable decides
// whether an error is worth another attempt; nil retries everything.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Retryable   func(error) bool

	// Logger receives per-attempt debug logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultPolicy returns the policy applied to collaborator calls:
// 3 attempts, 2 second base delay, all errors retryable.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
	}
}

// Do runs the operation under the policy.
// Returns the error from the last attempt if all attempts fail, or the
// context error if the context is cancelled while waiting.
func (p Policy) Do(ctx context.Context, operation func() error) error {
	if p.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				logger.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil // Success
		}

		if p.Retryable != nil && !p.Retryable(lastErr) {
			logger.Debug("operation failed with non-retryable error", "error", lastErr)
			return lastErr
		}

		logger.Debug("operation failed, will retry", "attempt", attempt, "maxAttempts", p.MaxAttempts, "error", lastErr)

		// Don't sleep after the last attempt
		if attempt == p.MaxAttempts {
			break
		}

		// Exponential backoff: BaseDelay * 2^(attempt-1)
		delay := p.BaseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		// Sleep with context awareness
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// Continue to next attempt
		}
	}

	return lastErr
}
