package store

import (
	"context"
	"time"

	perr "lotgate/internal/platform/errors"
)

// RunTxRetry executes fn inside a transaction, retrying on transient
// contention (serialization failures, deadlocks). Non-retryable errors and
// context cancellation return immediately
func RunTxRetry(ctx context.Context, tx TxRunner, attempts int, fn func(ctx context.Context, q RowQuerier) error) error {
	if attempts < 1 {
		attempts = 1
	}

	backoff := 50 * time.Millisecond
	var err error
	for i := 0; i < attempts; i++ {
		err = tx.Tx(ctx, func(q RowQuerier) error {
			return fn(ctx, q)
		})
		if err == nil || !perr.IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return err
}
