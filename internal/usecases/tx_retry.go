package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"tripcover.backend/internal/domain/repositories"

	domainerrors "tripcover.backend/internal/domain/errors"
)

const (
	maxTxAttempts  = 3
	txRetryBackoff = 25 * time.Millisecond
)

// withTxRetry runs fn inside a unit of work, retrying a bounded number of
// times with backoff when the database reports a serialization conflict or
// deadlock. Domain errors pass through untouched; exhausted retries
// surface as ErrTxConflict so the caller can decide its own retry policy.
func withTxRetry(ctx context.Context, uow repositories.UnitOfWork, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(txRetryBackoff << attempt):
			}
		}

		err = uow.Do(ctx, fn)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return errors.Join(domainerrors.ErrTxConflict, err)
}

// isRetryableTxError matches postgres serialization failures (40001) and
// deadlocks (40P01), plus sqlite's busy error seen in tests
func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "database is locked")
}
