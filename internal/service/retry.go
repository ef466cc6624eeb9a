package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
)

const maxReadAttempts = 3

// errors that a retry cannot fix
var permanentErrs = []error{
	ErrGemstoneNotFound,
	ErrSaleNotFound,
	ErrAdminNotFound,
	domain.ErrInvalidInput,
	context.Canceled,
	context.DeadlineExceeded,
}

// withReadRetry runs a read-only store call up to three times with
// exponential backoff. Writes must never go through here.
func withReadRetry[T any](ctx context.Context, op func(ctx context.Context) (T, error)) (T, error) {
	var out T

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxInterval = 500 * time.Millisecond

	err := backoff.Retry(func() error {
		v, err := op(ctx)
		if err != nil {
			for _, p := range permanentErrs {
				if errors.Is(err, p) {
					return backoff.Permanent(err)
				}
			}

			return err
		}
		out = v

		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(policy, maxReadAttempts-1), ctx))

	return out, err
}
